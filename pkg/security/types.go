package security

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthenticationToken carries a principal and the credentials submitted
// to prove it. Tokens are consumed by realms during authentication and
// are never stored.
type AuthenticationToken struct {
	// Principal is the identity being claimed (e.g., a username).
	Principal string

	// Credentials is the proof of identity (e.g., a password or API key).
	Credentials string
}

// Account represents an authenticated identity as resolved by a realm.
// It is immutable once returned from Realm.Authenticate.
type Account struct {
	// Principal is the canonical identity the realm resolved.
	Principal string

	// Realm is the name of the realm that resolved this account.
	Realm string

	// Roles are the role names granted to this account.
	Roles []string

	// Permissions are the permission strings granted to this account.
	// Permissions use colon-delimited parts with wildcard support,
	// e.g. "region:orders:read" or "region:*".
	Permissions []string
}

// HasPermission reports whether any of the account's granted permissions
// implies the required permission.
func (a *Account) HasPermission(required string) bool {
	if a == nil {
		return false
	}
	for _, granted := range a.Permissions {
		if PermissionImplies(granted, required) {
			return true
		}
	}
	return false
}

// HasRole reports whether the account holds the given role.
func (a *Account) HasRole(role string) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Subject is an authenticated session bound to an account. A new subject
// is created for every successful authentication.
type Subject struct {
	// SessionID uniquely identifies this authenticated session.
	SessionID string

	// Account is the identity resolved during authentication.
	Account *Account

	// AuthenticatedAt is when the session was established.
	AuthenticatedAt time.Time
}

// NewSubject creates a subject for the given account with a fresh session ID.
func NewSubject(account *Account) *Subject {
	return &Subject{
		SessionID:       uuid.NewString(),
		Account:         account,
		AuthenticatedAt: time.Now(),
	}
}

// PermissionImplies reports whether the granted permission implies the
// required permission.
//
// Permissions are colon-delimited parts. A "*" part matches any value in
// the same position, and a granted permission with fewer parts than the
// required one implies everything beneath it:
//
//	PermissionImplies("region:*", "region:orders")       // true
//	PermissionImplies("region", "region:orders:read")    // true
//	PermissionImplies("region:orders", "region:users")   // false
func PermissionImplies(granted, required string) bool {
	if granted == "" {
		return false
	}
	if granted == "*" || granted == required {
		return true
	}

	grantedParts := strings.Split(granted, ":")
	requiredParts := strings.Split(required, ":")

	for i, part := range grantedParts {
		if i >= len(requiredParts) {
			// Granted is more specific than required; only an all-wildcard
			// remainder still implies it.
			for _, rest := range grantedParts[i:] {
				if rest != "*" {
					return false
				}
			}
			return true
		}
		if part != "*" && part != requiredParts[i] {
			return false
		}
	}

	// Granted is a prefix of required: the broader grant implies it.
	return true
}
