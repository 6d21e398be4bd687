package security

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeRealm is a scripted realm for manager tests.
type fakeRealm struct {
	name     string
	priority int
	supports bool
	account  *Account
	err      error
	grants   map[string]bool

	authenticateCalls int
}

func (r *fakeRealm) Name() string { return r.name }

func (r *fakeRealm) Priority() int { return r.priority }

func (r *fakeRealm) Supports(token AuthenticationToken) bool { return r.supports }

func (r *fakeRealm) Authenticate(ctx context.Context, token AuthenticationToken) (*Account, error) {
	r.authenticateCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.account, nil
}

func (r *fakeRealm) Authorize(ctx context.Context, account *Account, permission string) bool {
	return r.grants[permission]
}

func TestManagerAuthenticate_FirstRealmWins(t *testing.T) {
	first := &fakeRealm{name: "first", supports: true, account: &Account{Principal: "alice", Realm: "first"}}
	second := &fakeRealm{name: "second", supports: true, account: &Account{Principal: "alice", Realm: "second"}}

	manager := NewManager([]Realm{first, second})

	subject, err := manager.Authenticate(context.Background(), AuthenticationToken{Principal: "alice"})
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}

	if subject.Account.Realm != "first" {
		t.Errorf("expected first realm to win, got %q", subject.Account.Realm)
	}
	if second.authenticateCalls != 0 {
		t.Errorf("expected second realm untouched, got %d calls", second.authenticateCalls)
	}
}

func TestManagerAuthenticate_SkipsUnsupported(t *testing.T) {
	skipped := &fakeRealm{name: "skipped", supports: false}
	accepting := &fakeRealm{name: "accepting", supports: true, account: &Account{Principal: "bob", Realm: "accepting"}}

	manager := NewManager([]Realm{skipped, accepting})

	subject, err := manager.Authenticate(context.Background(), AuthenticationToken{Principal: "bob"})
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}

	if subject.Account.Realm != "accepting" {
		t.Errorf("expected accepting realm, got %q", subject.Account.Realm)
	}
	if skipped.authenticateCalls != 0 {
		t.Error("unsupported realm must not be consulted")
	}
}

func TestManagerAuthenticate_ContinuesPastFailures(t *testing.T) {
	failing := &fakeRealm{name: "failing", supports: true, err: errors.New("bad credentials")}
	accepting := &fakeRealm{name: "accepting", supports: true, account: &Account{Principal: "carol", Realm: "accepting"}}

	manager := NewManager([]Realm{failing, accepting})

	subject, err := manager.Authenticate(context.Background(), AuthenticationToken{Principal: "carol"})
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if subject.Account.Realm != "accepting" {
		t.Errorf("expected accepting realm, got %q", subject.Account.Realm)
	}
}

func TestManagerAuthenticate_AllFail(t *testing.T) {
	cause := errors.New("bad credentials")
	failing := &fakeRealm{name: "failing", supports: true, err: cause}

	manager := NewManager([]Realm{failing})

	_, err := manager.Authenticate(context.Background(), AuthenticationToken{Principal: "dave"})
	if err == nil {
		t.Fatal("expected authentication to fail")
	}

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the last realm failure as the cause")
	}
}

func TestManagerAuthenticate_NoRealmSupports(t *testing.T) {
	manager := NewManager([]Realm{&fakeRealm{name: "closed", supports: false}})

	_, err := manager.Authenticate(context.Background(), AuthenticationToken{Principal: "eve"})

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %T", err)
	}
	if authErr.Cause != nil {
		t.Errorf("expected no cause when no realm supported the token, got %v", authErr.Cause)
	}
}

func TestManagerAuthorize(t *testing.T) {
	denying := &fakeRealm{name: "denying", grants: map[string]bool{}}
	granting := &fakeRealm{name: "granting", grants: map[string]bool{"region:orders:read": true}}

	manager := NewManager([]Realm{denying, granting})
	subject := NewSubject(&Account{Principal: "alice"})

	if err := manager.Authorize(context.Background(), subject, "region:orders:read"); err != nil {
		t.Errorf("expected grant, got %v", err)
	}

	err := manager.Authorize(context.Background(), subject, "region:orders:write")
	var authzErr *AuthorizationError
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected AuthorizationError, got %T", err)
	}
	if authzErr.Principal != "alice" || authzErr.Permission != "region:orders:write" {
		t.Errorf("unexpected error details: %v", authzErr)
	}
}

func TestManagerAuthorize_NilSubject(t *testing.T) {
	manager := NewManager(nil)

	if err := manager.Authorize(context.Background(), nil, "anything"); err == nil {
		t.Error("expected nil subject to be denied")
	}
	if err := manager.Authorize(context.Background(), &Subject{}, "anything"); err == nil {
		t.Error("expected subject without account to be denied")
	}
}

func TestManagerRealms_ReturnsCopy(t *testing.T) {
	realm := &fakeRealm{name: "only"}
	manager := NewManager([]Realm{realm})

	realms := manager.Realms()
	realms[0] = &fakeRealm{name: "other"}

	if manager.Realms()[0].Name() != "only" {
		t.Error("mutating the returned slice must not affect the manager")
	}
}

func TestPriorityOf(t *testing.T) {
	ordered := &fakeRealm{name: "ordered", priority: 3}
	if got := PriorityOf(ordered); got != 3 {
		t.Errorf("PriorityOf(ordered) = %d, want 3", got)
	}

	unordered := unorderedRealm{}
	if got := PriorityOf(unordered); got != DefaultPriority {
		t.Errorf("PriorityOf(unordered) = %d, want DefaultPriority", got)
	}
}

// unorderedRealm implements Realm without Ordered.
type unorderedRealm struct{}

func (unorderedRealm) Name() string                          { return "unordered" }
func (unorderedRealm) Supports(AuthenticationToken) bool     { return false }
func (unorderedRealm) Authorize(context.Context, *Account, string) bool { return false }
func (unorderedRealm) Authenticate(context.Context, AuthenticationToken) (*Account, error) {
	return nil, fmt.Errorf("not supported")
}
