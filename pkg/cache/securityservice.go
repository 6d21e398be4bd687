package cache

import "sync"

// SecurityService holds the cache's security state. Each cache owns
// exactly one; it is created disabled and switched to integrated
// security by the activation adapter once a security manager has been
// registered.
//
// SecurityService satisfies security.IntegratedSecurityEnabler so that
// activation never has to reach into its fields.
type SecurityService struct {
	mu                 sync.RWMutex
	integratedSecurity bool
}

// NewSecurityService creates a security service with integrated
// security disabled.
func NewSecurityService() *SecurityService {
	return &SecurityService{}
}

// EnableIntegratedSecurity switches the service to integrated security.
// It reports whether the switch took effect (always true for this
// implementation; the return value exists for the activation contract).
func (s *SecurityService) EnableIntegratedSecurity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.integratedSecurity = true
	return true
}

// IsIntegratedSecurity reports whether integrated security is enabled.
func (s *SecurityService) IsIntegratedSecurity() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.integratedSecurity
}
