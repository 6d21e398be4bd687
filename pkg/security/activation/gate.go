package activation

import "sync"

// RealmIntegrationName is the well-known component name the realm
// integration registers. The presence gate reports whether it (or a
// name supplied by the embedding application) is resolvable.
const RealmIntegrationName = "palisade-hq/palisade/pkg/realmfactory"

// Resolver reports whether a named integration component can be
// resolved. It is the hook for embedding applications with their own
// feature-detection scheme.
type Resolver func(name string) bool

var (
	integrationsMu sync.RWMutex
	integrations   = make(map[string]struct{})
)

// RegisterIntegration marks a named integration as present in this
// process. Integration packages call it from init, so importing the
// package is what makes the gate pass.
func RegisterIntegration(name string) {
	integrationsMu.Lock()
	defer integrationsMu.Unlock()
	integrations[name] = struct{}{}
}

// defaultResolver resolves against the process-wide integration set.
func defaultResolver(name string) bool {
	integrationsMu.RLock()
	defer integrationsMu.RUnlock()

	_, ok := integrations[name]
	return ok
}

// GatePresent reports whether the named integration is resolvable. It
// is evaluated once at bootstrap, before the activation adapter is
// constructed: a false gate means the adapter is never wired at all.
//
// A nil resolver uses the process-wide integration set. A panicking
// resolver reports absent rather than raising.
func GatePresent(resolver Resolver, name string) (present bool) {
	defer func() {
		if recover() != nil {
			present = false
		}
	}()

	if resolver == nil {
		resolver = defaultResolver
	}
	return resolver(name)
}

// Present reports whether the standard realm integration is linked into
// this process.
func Present() bool {
	return GatePresent(nil, RealmIntegrationName)
}
