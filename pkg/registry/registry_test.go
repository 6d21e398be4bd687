package registry

import (
	"errors"
	"testing"

	"palisade-hq/palisade/pkg/realm"
	"palisade-hq/palisade/pkg/security"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := New()
	reg.Register("widget", 42)

	got, err := reg.Lookup("widget")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Lookup() = %v, want 42", got)
	}
}

func TestRegistryLookup_NotFound(t *testing.T) {
	reg := New()
	if _, err := reg.Lookup("missing"); err == nil {
		t.Error("expected error for unknown component")
	}
}

func TestRegistryFactory_LazyAndMemoized(t *testing.T) {
	reg := New()

	constructions := 0
	reg.RegisterFactory("lazy", func() (any, error) {
		constructions++
		return "built", nil
	})

	if constructions != 0 {
		t.Fatal("factory ran before first lookup")
	}

	for i := 0; i < 3; i++ {
		got, err := reg.Lookup("lazy")
		if err != nil {
			t.Fatalf("Lookup() failed: %v", err)
		}
		if got != "built" {
			t.Errorf("Lookup() = %v, want %q", got, "built")
		}
	}

	if constructions != 1 {
		t.Errorf("factory ran %d times, want 1", constructions)
	}
}

func TestRegistryFactory_Error(t *testing.T) {
	reg := New()

	sentinel := errors.New("construction failed")
	reg.RegisterFactory("broken", func() (any, error) {
		return nil, sentinel
	})

	_, err := reg.Lookup("broken")
	if err == nil {
		t.Fatal("expected factory error")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped factory error, got %v", err)
	}
}

func TestRegistryRegister_Replaces(t *testing.T) {
	reg := New()
	reg.Register("widget", "old")
	reg.Register("widget", "new")

	got, err := reg.Lookup("widget")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if got != "new" {
		t.Errorf("Lookup() = %v, want %q", got, "new")
	}

	if names := reg.Names(); len(names) != 1 {
		t.Errorf("Names() = %v, want a single entry", names)
	}
}

func TestRegistryRegister_ReplacesFactory(t *testing.T) {
	reg := New()
	reg.RegisterFactory("widget", func() (any, error) {
		t.Error("replaced factory should never run")
		return nil, nil
	})
	reg.Register("widget", "eager")

	got, err := reg.Lookup("widget")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if got != "eager" {
		t.Errorf("Lookup() = %v, want %q", got, "eager")
	}
}

func TestRegistryNames_RegistrationOrder(t *testing.T) {
	reg := New()
	reg.Register("c", 1)
	reg.RegisterFactory("a", func() (any, error) { return 2, nil })
	reg.Register("b", 3)

	names := reg.Names()
	want := []string{"c", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRegistryRealms_FiltersAndOrders(t *testing.T) {
	reg := New()
	reg.Register("first", realm.NewStaticRealm("first", 2, nil))
	reg.Register("not-a-realm", "just a string")
	reg.RegisterFactory("second", func() (any, error) {
		return realm.NewStaticRealm("second", 1, nil), nil
	})

	realms, err := reg.Realms()
	if err != nil {
		t.Fatalf("Realms() failed: %v", err)
	}

	if len(realms) != 2 {
		t.Fatalf("Realms() returned %d realms, want 2", len(realms))
	}
	if realms[0].Name() != "first" || realms[1].Name() != "second" {
		t.Errorf("Realms() order = [%s, %s], want registration order",
			realms[0].Name(), realms[1].Name())
	}
}

func TestRegistryRealms_FactoryFailureFailsLookup(t *testing.T) {
	reg := New()
	reg.Register("good", realm.NewStaticRealm("good", 1, nil))
	reg.RegisterFactory("bad", func() (any, error) {
		return nil, errors.New("cannot construct")
	})

	if _, err := reg.Realms(); err == nil {
		t.Error("expected error when a registered factory fails")
	}
}

func TestRegistryRealms_Empty(t *testing.T) {
	reg := New()
	realms, err := reg.Realms()
	if err != nil {
		t.Fatalf("Realms() failed: %v", err)
	}
	if len(realms) != 0 {
		t.Errorf("Realms() = %v, want empty", realms)
	}
}

var _ security.Realm = (*realm.StaticRealm)(nil)
