package realm

import (
	"context"
	"testing"

	"palisade-hq/palisade/pkg/security"
)

func TestEnvRealmAuthenticate(t *testing.T) {
	t.Setenv("PALISADE_TEST_DATA_LOADER", "loader-secret")
	t.Setenv("PALISADE_TEST_DATA_LOADER_PERMISSIONS", "region:orders:read, region:orders:write")

	r := NewEnvRealm("env", 2, "PALISADE_TEST_")

	account, err := r.Authenticate(context.Background(), security.AuthenticationToken{
		Principal:   "data-loader",
		Credentials: "loader-secret",
	})
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}

	if account.Principal != "data-loader" {
		t.Errorf("expected principal data-loader, got %q", account.Principal)
	}
	if len(account.Permissions) != 2 {
		t.Fatalf("expected 2 permissions, got %v", account.Permissions)
	}
	if account.Permissions[0] != "region:orders:read" || account.Permissions[1] != "region:orders:write" {
		t.Errorf("unexpected permissions: %v", account.Permissions)
	}
}

func TestEnvRealmAuthenticate_WrongCredentials(t *testing.T) {
	t.Setenv("PALISADE_TEST_DATA_LOADER", "loader-secret")

	r := NewEnvRealm("env", 2, "PALISADE_TEST_")

	_, err := r.Authenticate(context.Background(), security.AuthenticationToken{
		Principal:   "data-loader",
		Credentials: "wrong",
	})
	if err == nil {
		t.Error("expected authentication to fail")
	}
}

func TestEnvRealmAuthenticate_MissingPrincipal(t *testing.T) {
	r := NewEnvRealm("env", 2, "PALISADE_TEST_MISSING_")

	if r.Supports(security.AuthenticationToken{Principal: "ghost"}) {
		t.Error("expected missing principal to be unsupported")
	}

	_, err := r.Authenticate(context.Background(), security.AuthenticationToken{
		Principal:   "ghost",
		Credentials: "anything",
	})
	if err == nil {
		t.Error("expected authentication to fail")
	}
}

func TestEnvRealmAuthorize(t *testing.T) {
	r := NewEnvRealm("env", 2, "PALISADE_TEST_")
	account := &security.Account{Permissions: []string{"region:*"}}

	if !r.Authorize(context.Background(), account, "region:orders") {
		t.Error("expected grant")
	}
	if r.Authorize(context.Background(), account, "cluster:manage") {
		t.Error("expected denial")
	}
}
