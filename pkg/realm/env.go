package realm

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	"palisade-hq/palisade/pkg/security"
)

// EnvRealm authenticates against credentials held in environment
// variables. Principal names are converted to uppercase variable names
// with hyphens replaced by underscores, prefixed by the configured
// prefix.
//
// Example with prefix "PALISADE_USER_":
//   - Principal "data-loader"
//   - Credentials read from "PALISADE_USER_DATA_LOADER"
//   - Permissions read from "PALISADE_USER_DATA_LOADER_PERMISSIONS"
//     (comma-separated, optional)
type EnvRealm struct {
	name     string
	priority int
	prefix   string
}

// NewEnvRealm creates an environment-backed realm. The prefix is
// prepended to all variable names.
func NewEnvRealm(name string, priority int, prefix string) *EnvRealm {
	return &EnvRealm{
		name:     name,
		priority: priority,
		prefix:   prefix,
	}
}

// Name returns the realm's name.
func (r *EnvRealm) Name() string {
	return r.name
}

// Priority returns the realm's consultation priority.
func (r *EnvRealm) Priority() int {
	return r.priority
}

// Supports reports whether a credentials variable exists for the
// token's principal.
func (r *EnvRealm) Supports(token security.AuthenticationToken) bool {
	_, ok := os.LookupEnv(r.principalToEnvVar(token.Principal))
	return ok
}

// Authenticate compares the token's credentials with the environment
// variable for the principal.
func (r *EnvRealm) Authenticate(ctx context.Context, token security.AuthenticationToken) (*security.Account, error) {
	envVar := r.principalToEnvVar(token.Principal)

	expected, ok := os.LookupEnv(envVar)
	if !ok || expected == "" {
		return nil, fmt.Errorf("principal not found in environment: %s (env var: %s)", token.Principal, envVar)
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(token.Credentials)) != 1 {
		return nil, fmt.Errorf("invalid credentials for principal %q", token.Principal)
	}

	return &security.Account{
		Principal:   token.Principal,
		Realm:       r.name,
		Permissions: r.permissionsFor(envVar),
	}, nil
}

// Authorize grants the permission if the account's grants imply it.
func (r *EnvRealm) Authorize(ctx context.Context, account *security.Account, permission string) bool {
	return account.HasPermission(permission)
}

// principalToEnvVar converts a principal name to its credentials
// environment variable name.
//
// Example: "data-loader" -> "PALISADE_USER_DATA_LOADER"
func (r *EnvRealm) principalToEnvVar(principal string) string {
	return r.prefix + strings.ToUpper(strings.ReplaceAll(principal, "-", "_"))
}

// permissionsFor reads the optional comma-separated permissions
// variable for a principal's credentials variable.
func (r *EnvRealm) permissionsFor(envVar string) []string {
	raw := os.Getenv(envVar + "_PERMISSIONS")
	if raw == "" {
		return nil
	}

	var permissions []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			permissions = append(permissions, p)
		}
	}
	return permissions
}
