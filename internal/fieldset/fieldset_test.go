package fieldset

import "testing"

type exportedFlag struct {
	IntegratedSecurity bool
}

type unexportedFlag struct {
	integratedSecurity bool
}

type pointerFlag struct {
	IntegratedSecurity *bool
}

type bothFlags struct {
	// Same name modulo case as the pointer field below; the pointer
	// representation wins.
	integratedsecurity bool
	IntegratedSecurity *bool
}

type noFlag struct {
	Name string
}

func TestSetBool_ExportedField(t *testing.T) {
	target := &exportedFlag{}
	if !SetBool(target, "integratedSecurity", true) {
		t.Fatal("SetBool() = false, want true")
	}
	if !target.IntegratedSecurity {
		t.Error("field was not set")
	}
}

func TestSetBool_UnexportedField(t *testing.T) {
	target := &unexportedFlag{}
	if !SetBool(target, "integratedSecurity", true) {
		t.Fatal("SetBool() = false, want true")
	}
	if !target.integratedSecurity {
		t.Error("unexported field was not set")
	}
}

func TestSetBool_PointerField(t *testing.T) {
	target := &pointerFlag{}
	if !SetBool(target, "integratedSecurity", true) {
		t.Fatal("SetBool() = false, want true")
	}
	if target.IntegratedSecurity == nil || !*target.IntegratedSecurity {
		t.Error("*bool field was not set")
	}
}

func TestSetBool_PointerFieldProbedFirst(t *testing.T) {
	target := &bothFlags{}
	if !SetBool(target, "integratedSecurity", true) {
		t.Fatal("SetBool() = false, want true")
	}

	if target.IntegratedSecurity == nil || !*target.IntegratedSecurity {
		t.Error("pointer field should have been set")
	}
	if target.integratedsecurity {
		t.Error("plain bool field should have been left alone")
	}
}

func TestSetBool_CaseInsensitive(t *testing.T) {
	target := &exportedFlag{}
	if !SetBool(target, "INTEGRATEDSECURITY", true) {
		t.Fatal("SetBool() = false, want true")
	}
	if !target.IntegratedSecurity {
		t.Error("field was not set")
	}
}

func TestSetBool_SetFalse(t *testing.T) {
	target := &exportedFlag{IntegratedSecurity: true}
	if !SetBool(target, "integratedSecurity", false) {
		t.Fatal("SetBool() = false, want true")
	}
	if target.IntegratedSecurity {
		t.Error("field was not cleared")
	}
}

func TestSetBool_MissingField(t *testing.T) {
	if SetBool(&noFlag{}, "integratedSecurity", true) {
		t.Error("SetBool() = true for a struct without the field")
	}
}

func TestSetBool_InvalidTargets(t *testing.T) {
	tests := []struct {
		name   string
		target any
	}{
		{"nil", nil},
		{"nil pointer", (*exportedFlag)(nil)},
		{"non-struct", "a string"},
		{"int", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if SetBool(tt.target, "integratedSecurity", true) {
				t.Errorf("SetBool(%v) = true, want false", tt.target)
			}
		})
	}
}
