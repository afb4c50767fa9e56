package runtime

import (
	"testing"

	"github.com/cwbudde/go-es5/internal/value"
)

func TestDeclarativeEnvironmentRecordBindingLifecycle(t *testing.T) {
	vm := NewVM()
	rec := NewDeclarativeEnvironmentRecord()

	if rec.HasBinding("x") {
		t.Fatalf("a fresh record must not already have a binding")
	}

	rec.CreateMutableBinding("x", true)
	if !rec.HasBinding("x") {
		t.Fatalf("CreateMutableBinding did not register the binding")
	}

	rec.SetMutableBinding(vm, "x", value.FromInt32(42), false)
	if got := rec.GetBindingValue(vm, "x", false); got != value.FromInt32(42) {
		t.Fatalf("GetBindingValue = %v, want 42", got)
	}

	if !rec.DeleteBinding("x") {
		t.Fatalf("expected a deletable binding to delete successfully")
	}
	if rec.HasBinding("x") {
		t.Fatalf("binding should be gone after DeleteBinding")
	}
}

func TestDeclarativeEnvironmentRecordUninitializedBindingThrows(t *testing.T) {
	vm := NewVM()
	rec := NewDeclarativeEnvironmentRecord()
	rec.CreateMutableBinding("x", true)

	rec.GetBindingValue(vm, "x", false)
	if !vm.HasException() {
		t.Fatalf("reading an uninitialized binding must raise a ReferenceError")
	}
}

func TestDeclarativeEnvironmentRecordImmutableBindingRejectsReassignment(t *testing.T) {
	vm := NewVM()
	rec := NewDeclarativeEnvironmentRecord()
	rec.CreateImmutableBinding("self")
	rec.InitializeImmutableBinding("self", value.FromInt32(1))

	rec.SetMutableBinding(vm, "self", value.FromInt32(2), true)
	if !vm.HasException() {
		t.Fatalf("a strict-mode assignment to an immutable binding must throw")
	}

	vm.ClearException()
	rec.SetMutableBinding(vm, "self", value.FromInt32(2), false)
	if vm.HasException() {
		t.Fatalf("a non-strict assignment to an immutable binding must be silently ignored")
	}
	if got := rec.GetBindingValue(vm, "self", false); got != value.FromInt32(1) {
		t.Fatalf("the immutable binding's value should be unchanged, got %v", got)
	}
}

func TestDeclarativeEnvironmentRecordNonDeletableBindingSurvives(t *testing.T) {
	rec := NewDeclarativeEnvironmentRecord()
	rec.CreateMutableBinding("x", false)
	if rec.DeleteBinding("x") {
		t.Fatalf("a non-deletable binding must not be removable")
	}
	if !rec.HasBinding("x") {
		t.Fatalf("a rejected delete must leave the binding in place")
	}
}

func TestGetIdentifierReferenceWalksOuterChain(t *testing.T) {
	inner := NewDeclarativeEnvironment(nil)
	outer := NewDeclarativeEnvironmentRecord()
	outer.CreateMutableBinding("y", true)
	inner.Outer = NewLexicalEnvironment(outer, nil)

	ref := GetIdentifierReference(nil, inner, "y", false)
	if ref.Unresolved {
		t.Fatalf("expected y to resolve via the outer environment")
	}
	if ref.BaseEnv != outer {
		t.Fatalf("expected the reference's base environment to be the outer record")
	}
}

func TestGetIdentifierReferenceUnresolved(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	ref := GetIdentifierReference(nil, env, "missing", false)
	if !ref.Unresolved {
		t.Fatalf("expected an unresolved reference for a name bound nowhere in the chain")
	}
}
