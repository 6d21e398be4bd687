package security

import (
	"context"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"palisade-hq/palisade/pkg/telemetry/metrics"
)

// Realm is an authentication and authorization provider. Realms are
// supplied by the embedding application, registered as components, and
// consulted by the security manager in priority order.
type Realm interface {
	// Name returns the realm's unique name.
	Name() string

	// Supports reports whether this realm can attempt to authenticate
	// the given token. Unsupported tokens are skipped without error.
	Supports(token AuthenticationToken) bool

	// Authenticate resolves the token to an account, or returns an
	// error if the credentials are rejected.
	Authenticate(ctx context.Context, token AuthenticationToken) (*Account, error)

	// Authorize reports whether the account is granted the permission.
	Authorize(ctx context.Context, account *Account, permission string) bool
}

// Ordered is implemented by realms that declare an explicit consultation
// priority. Lower values are consulted first. Realms that do not
// implement Ordered sort last.
type Ordered interface {
	Priority() int
}

// DefaultPriority is the priority assigned to realms that do not
// implement Ordered.
const DefaultPriority = math.MaxInt

// PriorityOf returns the realm's declared priority, or DefaultPriority
// if the realm does not implement Ordered.
func PriorityOf(r Realm) int {
	if ordered, ok := r.(Ordered); ok {
		return ordered.Priority()
	}
	return DefaultPriority
}

var tracer = otel.Tracer("palisade-hq/palisade/pkg/security")

// Manager is a composite security manager over an ordered collection of
// realms. Authentication consults realms in order and the first realm to
// accept a token wins; authorization grants when any realm grants.
//
// Manager is immutable after construction and safe for concurrent use.
type Manager struct {
	realms []Realm
	logger *slog.Logger
}

// NewManager creates a security manager over the given realms. The slice
// order is the consultation order; callers sort by priority beforehand.
func NewManager(realms []Realm) *Manager {
	return &Manager{
		realms: append([]Realm(nil), realms...),
		logger: slog.Default().With("component", "security.manager"),
	}
}

// Realms returns the manager's realms in consultation order.
// The returned slice is a copy and safe to modify.
func (m *Manager) Realms() []Realm {
	return append([]Realm(nil), m.realms...)
}

// Authenticate resolves the token against each realm in order and
// returns a subject for the first realm that accepts it.
//
// Realms that do not support the token are skipped. Realm failures are
// recorded and the next realm is tried; if no realm accepts the token an
// AuthenticationError carrying the last failure is returned.
func (m *Manager) Authenticate(ctx context.Context, token AuthenticationToken) (*Subject, error) {
	ctx, span := tracer.Start(ctx, "security.authenticate")
	defer span.End()
	span.SetAttributes(attribute.String("principal", token.Principal))

	var lastErr error
	for _, realm := range m.realms {
		if !realm.Supports(token) {
			continue
		}

		account, err := realm.Authenticate(ctx, token)
		if err != nil {
			lastErr = err
			metrics.RecordAuthentication(realm.Name(), "failure")
			m.logger.Debug("realm rejected token",
				"realm", realm.Name(),
				"principal", token.Principal,
				"error", err,
			)
			continue
		}

		metrics.RecordAuthentication(realm.Name(), "success")
		span.SetAttributes(attribute.String("realm", realm.Name()))

		m.logger.Debug("authentication succeeded",
			"realm", realm.Name(),
			"principal", account.Principal,
		)

		return NewSubject(account), nil
	}

	span.SetStatus(codes.Error, "authentication failed")

	return nil, &AuthenticationError{
		Principal: token.Principal,
		Cause:     lastErr,
	}
}

// Authorize checks the subject's account against each realm and returns
// nil if any realm grants the permission.
func (m *Manager) Authorize(ctx context.Context, subject *Subject, permission string) error {
	if subject == nil || subject.Account == nil {
		return &AuthorizationError{Permission: permission}
	}

	for _, realm := range m.realms {
		if realm.Authorize(ctx, subject.Account, permission) {
			return nil
		}
	}

	return &AuthorizationError{
		Principal:  subject.Account.Principal,
		Permission: permission,
	}
}
