/*
Package activation wires realm-based security into a Palisade cache at
startup.

The adapter is the single integration point between the component
registry, the security manager, and the cache's security service:

	reg := registry.New()
	reg.Register("local", localRealm)

	if activation.Present() {
		adapter := activation.New(reg)
		manager, err := adapter.Activate(ctx, c)
		if err != nil {
			log.Fatal(err)
		}
		if manager == nil {
			// no realms declared; security stays disabled
		}
	}

Activation follows a fixed sequence: discover realms (any discovery
failure counts as zero realms), sort by ascending priority with stable
ties, and stop successfully if none were found. Otherwise it builds a
composite manager, registers it as the process-wide security manager,
and enables integrated security on the cache's security service. If the
service cannot be enabled, Activate fails with IllegalState and the
manager stays registered; there is no rollback.

The presence gate decides before any of this whether the realm
integration is linked into the process at all; bootstrap code skips
constructing the adapter when the gate reports absent.
*/
package activation
