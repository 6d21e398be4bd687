// Package fieldset sets boolean struct fields by name through
// reflection, bypassing visibility. It exists solely as a compatibility
// shim for third-party security services that predate the
// security.IntegratedSecurityEnabler capability; new code should expose
// the capability instead.
package fieldset

import (
	"reflect"
	"strings"
	"unsafe"
)

// SetBool locates a boolean-typed field with the given name on target's
// struct type and sets it to value, reporting whether a field was found
// and set.
//
// The name match is case-insensitive. Fields of type *bool are probed
// before plain bool, tolerating either representation of the flag.
// Unexported fields are made settable through their address, so target
// must be a pointer to a struct.
func SetBool(target any, name string, value bool) bool {
	if target == nil {
		return false
	}

	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}

	field, ok := findBoolField(v.Type(), name)
	if !ok {
		return false
	}

	fv := v.FieldByIndex(field.Index)
	if !fv.CanSet() {
		if !fv.CanAddr() {
			return false
		}
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}

	if fv.Kind() == reflect.Pointer {
		fv.Set(reflect.ValueOf(&value))
	} else {
		fv.SetBool(value)
	}
	return true
}

// findBoolField returns the struct field matching name, probing *bool
// fields before bool fields.
func findBoolField(t reflect.Type, name string) (reflect.StructField, bool) {
	boolType := reflect.TypeOf(false)
	boolPtrType := reflect.PointerTo(boolType)

	for _, fieldType := range []reflect.Type{boolPtrType, boolType} {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Type == fieldType && strings.EqualFold(field.Name, name) {
				return field, true
			}
		}
	}

	return reflect.StructField{}, false
}
