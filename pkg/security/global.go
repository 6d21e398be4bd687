package security

import "sync"

var (
	// globalManager holds the process-wide active security manager.
	globalManager *Manager

	// managerMutex protects access to globalManager.
	managerMutex sync.RWMutex
)

// SetSecurityManager installs the given manager as the process-wide
// active security manager. The slot is last-writer-wins: a later call
// replaces an earlier registration without coordination.
//
// Components that can accept an explicit *Manager handle should prefer
// it over this slot; the slot exists for process-wide consumers that
// have no injection point.
func SetSecurityManager(m *Manager) {
	managerMutex.Lock()
	defer managerMutex.Unlock()
	globalManager = m
}

// SecurityManager returns the process-wide active security manager, or
// nil if none has been registered. This function is thread-safe.
func SecurityManager() *Manager {
	managerMutex.RLock()
	defer managerMutex.RUnlock()
	return globalManager
}

// ResetSecurityManager clears the process-wide security manager slot.
// This is primarily intended for tests.
func ResetSecurityManager() {
	managerMutex.Lock()
	defer managerMutex.Unlock()
	globalManager = nil
}

// IntegratedSecurityEnabler is the capability a security service exposes
// so that security activation can enable integrated security without
// reaching into its internals. The cache's security service implements
// it; third-party services that predate the capability are handled by
// the activation adapter's legacy field shim.
type IntegratedSecurityEnabler interface {
	// EnableIntegratedSecurity switches the service to integrated
	// security and reports whether the switch took effect.
	EnableIntegratedSecurity() bool
}
