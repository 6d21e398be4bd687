// Package registry provides the component registry that Palisade
// bootstrap code populates and security activation queries.
//
// Components are registered under unique names, either as ready
// instances or as factories constructed lazily on first lookup. The
// registry is the discovery surface for realms: activation asks it for
// every registered component satisfying security.Realm.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"palisade-hq/palisade/pkg/security"
)

// Factory constructs a component on first lookup. Factories let
// expensive components (file realms over git checkouts, for example)
// defer their construction until something asks for them.
type Factory func() (any, error)

// Registry is a named component registry. It is thread-safe.
type Registry struct {
	mu         sync.RWMutex
	components map[string]any
	factories  map[string]Factory
	order      []string
	logger     *slog.Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]any),
		factories:  make(map[string]Factory),
		logger:     slog.Default().With("component", "registry"),
	}
}

// Register adds a ready component under the given name. If the name is
// already taken, the existing component is replaced.
func (r *Registry) Register(name string, component any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.components[name]; ok {
		r.logger.Warn("replacing existing component", "name", name)
	} else if _, ok := r.factories[name]; ok {
		r.logger.Warn("replacing existing component factory", "name", name)
		delete(r.factories, name)
	} else {
		r.order = append(r.order, name)
	}

	r.components[name] = component
}

// RegisterFactory adds a lazily-constructed component under the given
// name. The factory runs on first lookup; its result is memoized.
func (r *Registry) RegisterFactory(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.components[name]; ok {
		r.logger.Warn("replacing existing component", "name", name)
		delete(r.components, name)
	} else if _, ok := r.factories[name]; ok {
		r.logger.Warn("replacing existing component factory", "name", name)
	} else {
		r.order = append(r.order, name)
	}

	r.factories[name] = factory
}

// Lookup returns the component registered under the given name,
// constructing it first if it was registered as a factory.
func (r *Registry) Lookup(name string) (any, error) {
	r.mu.RLock()
	component, ok := r.components[name]
	r.mu.RUnlock()
	if ok {
		return component, nil
	}

	return r.construct(name)
}

// Names returns all registered component names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Realms returns every registered component satisfying security.Realm,
// in registration order. Lazily-registered components are constructed;
// a failing factory fails the whole lookup so that callers see the
// registry as misconfigured rather than partially populated.
func (r *Registry) Realms() ([]security.Realm, error) {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	r.mu.RUnlock()

	var realms []security.Realm
	for _, name := range names {
		component, err := r.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve component %q: %w", name, err)
		}
		if realm, ok := component.(security.Realm); ok {
			realms = append(realms, realm)
		}
	}

	return realms, nil
}

// construct runs the factory for name, memoizes the result, and returns
// it. The factory runs outside the registry lock; concurrent first
// lookups may race to construct, with one winner recorded.
func (r *Registry) construct(name string) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("component %q not found", name)
	}

	component, err := factory()
	if err != nil {
		return nil, fmt.Errorf("factory for component %q failed: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.components[name]; ok {
		return existing, nil
	}
	r.components[name] = component
	delete(r.factories, name)

	r.logger.Debug("component constructed", "name", name)
	return component, nil
}
