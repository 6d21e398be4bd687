package activation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"palisade-hq/palisade/internal/fieldset"
	"palisade-hq/palisade/pkg/cache"
	"palisade-hq/palisade/pkg/security"
	"palisade-hq/palisade/pkg/telemetry/metrics"
)

// integratedSecurityField is the flag field the legacy shim probes on
// security services that do not expose the enabler capability.
const integratedSecurityField = "integratedSecurity"

// RealmSource exposes read-only discovery of realm components. It is
// satisfied by *registry.Registry; embedding applications with their
// own component wiring can supply anything that lists realms.
type RealmSource interface {
	// Realms returns every registered realm component, including
	// lazily-constructed ones.
	Realms() ([]security.Realm, error)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSecurityService overrides the security service the adapter
// enables. By default the adapter enables the cache's own service; an
// embedding application that guards the cache with a third-party
// service supplies it here, and the adapter falls back to the legacy
// field shim if the service lacks the enabler capability.
func WithSecurityService(service any) Option {
	return func(a *Adapter) {
		a.service = service
	}
}

// Adapter wires realm-based security into a cache at startup. It
// discovers realm components from a RealmSource, builds a composite
// security manager over them in priority order, registers the manager
// process-wide, and enables integrated security on the cache's security
// service.
//
// Activation is a one-shot startup operation: the embedding application
// calls Activate once, after the cache has been constructed.
type Adapter struct {
	source  RealmSource
	service any
	logger  *slog.Logger
}

// New creates an activation adapter over the given realm source.
func New(source RealmSource, opts ...Option) *Adapter {
	a := &Adapter{
		source: source,
		logger: slog.Default().With("component", "security.activation"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Activate performs security activation against the given cache.
//
// The cache argument establishes an ordering dependency: it must be
// constructed and open, guaranteeing that the cache's own security
// setup has completed before activation runs.
//
// If no realms are discovered (including when realm discovery fails),
// activation is a successful no-op: no manager is built, nothing is
// registered, and integrated security stays disabled. The returned
// manager is nil in that case.
//
// If realms are discovered, the composite manager is registered
// process-wide and integrated security is enabled on the security
// service. A service whose flag cannot be enabled fails activation with
// a security.IllegalStateError; the already-registered manager is left
// in place (no rollback).
func (a *Adapter) Activate(ctx context.Context, c *cache.Cache) (*security.Manager, error) {
	if c == nil || c.Closed() {
		return nil, &security.InvalidArgumentError{
			Argument: "cache",
			Message:  "cache must be constructed and open before security activation",
		}
	}

	realms := a.resolveRealms()
	if len(realms) == 0 {
		a.logger.Info("no realms declared, integrated security stays disabled")
		metrics.SetActivationState(false, 0)
		return nil, nil
	}

	manager := security.NewManager(realms)
	if err := registerSecurityManager(manager); err != nil {
		return nil, err
	}

	if !a.enableIntegratedSecurity(c) {
		return nil, &security.IllegalStateError{
			Message: "Failed to enable security services",
		}
	}

	metrics.SetActivationState(true, len(realms))

	names := make([]string, len(realms))
	for i, r := range realms {
		names[i] = r.Name()
	}
	a.logger.Info("integrated security activated", "realms", names)

	return manager, nil
}

// resolveRealms discovers realm components and sorts them by ascending
// priority, preserving registration order for equal priorities.
//
// Any discovery failure, including a panicking source, degrades to zero
// realms: a misconfigured or unreachable registry means security stays
// disabled, it never aborts startup.
func (a *Adapter) resolveRealms() []security.Realm {
	realms, err := func() (realms []security.Realm, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("realm source panicked: %v", r)
			}
		}()
		return a.source.Realms()
	}()
	if err != nil {
		a.logger.Debug("realm discovery failed, treating as zero realms", "error", err)
		return nil
	}

	sort.SliceStable(realms, func(i, j int) bool {
		return security.PriorityOf(realms[i]) < security.PriorityOf(realms[j])
	})

	return realms
}

// registerSecurityManager installs the manager in the process-wide slot.
func registerSecurityManager(manager *security.Manager) error {
	if manager == nil {
		return &security.InvalidArgumentError{
			Argument: "manager",
			Message:  "the security manager to register must not be nil",
		}
	}

	security.SetSecurityManager(manager)
	return nil
}

// enableIntegratedSecurity switches the security service to integrated
// security, preferring the enabler capability and falling back to the
// legacy field shim for services that predate it.
func (a *Adapter) enableIntegratedSecurity(c *cache.Cache) bool {
	service := a.service
	if service == nil {
		service = c.SecurityService()
	}
	if service == nil {
		return false
	}

	if enabler, ok := service.(security.IntegratedSecurityEnabler); ok {
		return enabler.EnableIntegratedSecurity()
	}

	return fieldset.SetBool(service, integratedSecurityField, true)
}
