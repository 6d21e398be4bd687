package realm

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"

	"palisade-hq/palisade/pkg/security"
)

// StaticAccount is an account declared directly in configuration or code.
type StaticAccount struct {
	Principal   string
	Credentials string
	Roles       []string
	Permissions []string
	Enabled     bool
}

// StaticRealm authenticates against a fixed set of accounts held in
// memory. It is typically populated from the security.realms section of
// the configuration file.
//
// StaticRealm is thread-safe.
type StaticRealm struct {
	name     string
	priority int

	mu       sync.RWMutex
	accounts map[string]StaticAccount
}

// NewStaticRealm creates a static realm with the given accounts.
// Lower priority values are consulted first.
func NewStaticRealm(name string, priority int, accounts []StaticAccount) *StaticRealm {
	accountMap := make(map[string]StaticAccount, len(accounts))
	for _, account := range accounts {
		accountMap[account.Principal] = account
	}

	return &StaticRealm{
		name:     name,
		priority: priority,
		accounts: accountMap,
	}
}

// Name returns the realm's name.
func (r *StaticRealm) Name() string {
	return r.name
}

// Priority returns the realm's consultation priority.
func (r *StaticRealm) Priority() int {
	return r.priority
}

// Supports reports whether the token's principal is declared in this realm.
func (r *StaticRealm) Supports(token security.AuthenticationToken) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[token.Principal]
	return ok
}

// Authenticate checks the token's credentials against the declared account.
func (r *StaticRealm) Authenticate(ctx context.Context, token security.AuthenticationToken) (*security.Account, error) {
	r.mu.RLock()
	account, ok := r.accounts[token.Principal]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown principal %q", token.Principal)
	}

	if !account.Enabled {
		return nil, fmt.Errorf("account %q is disabled", token.Principal)
	}

	if subtle.ConstantTimeCompare([]byte(account.Credentials), []byte(token.Credentials)) != 1 {
		return nil, fmt.Errorf("invalid credentials for principal %q", token.Principal)
	}

	return &security.Account{
		Principal:   account.Principal,
		Realm:       r.name,
		Roles:       append([]string(nil), account.Roles...),
		Permissions: append([]string(nil), account.Permissions...),
	}, nil
}

// Authorize grants the permission if the account's grants imply it.
func (r *StaticRealm) Authorize(ctx context.Context, account *security.Account, permission string) bool {
	return account.HasPermission(permission)
}

// Add adds or replaces an account in the realm.
func (r *StaticRealm) Add(account StaticAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.Principal] = account
}

// Remove removes an account from the realm.
func (r *StaticRealm) Remove(principal string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, principal)
}
