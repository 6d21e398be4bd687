/*
Package security provides realm-based authentication and authorization
for Palisade caches.

# Realms

A Realm is an authentication/authorization provider. Realms are supplied
by the embedding application (or built from configuration by the
realmfactory package) and consulted in priority order:

	realms := []security.Realm{ldapRealm, localRealm}
	manager := security.NewManager(realms)

	subject, err := manager.Authenticate(ctx, security.AuthenticationToken{
		Principal:   "alice",
		Credentials: "s3cret",
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := manager.Authorize(ctx, subject, "region:orders:read"); err != nil {
		log.Fatal(err)
	}

# The global manager slot

Activation registers the composite manager process-wide:

	security.SetSecurityManager(manager)
	current := security.SecurityManager()

The slot is last-writer-wins and intended for consumers with no
injection point; prefer passing around the *Manager returned by
activation.

# Permissions

Permissions are colon-delimited with wildcard parts:

	security.PermissionImplies("region:*", "region:orders") // true
	security.PermissionImplies("region", "region:orders")   // true
*/
package security
