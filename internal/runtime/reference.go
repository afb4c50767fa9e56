// The Reference specification type, §3.8 / §4.4.
package runtime

import (
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// Reference is ES5.1's unresolved-lvalue type. Exactly one of three
// shapes holds:
//   - HasEnv:      an identifier bound in BaseEnv.
//   - Unresolved:  an identifier no environment in the chain bound.
//   - otherwise:   a property reference, base in BaseValue.
type Reference struct {
	BaseValue  value.Value
	BaseEnv    EnvironmentRecord
	HasEnv     bool
	Unresolved bool
	Name       string
	Strict     bool
}

// IsPropertyReference reports whether the base is a Value (object or
// primitive) rather than an environment record.
func (r Reference) IsPropertyReference() bool { return !r.HasEnv && !r.Unresolved }

// IsUnresolvableReference reports whether no environment in the chain
// bound the name, §4.4 IsUnresolvableReference.
func (r Reference) IsUnresolvableReference() bool { return r.Unresolved }

// NewPropertyReference builds a property Reference with base as an
// object or primitive value.
func NewPropertyReference(base value.Value, name string, strict bool) Reference {
	return Reference{BaseValue: base, Name: name, Strict: strict}
}

// GetValue implements ES5.1 §8.7.1: resolve a Reference to its
// underlying Value. Throws ReferenceError for an unresolvable
// reference, per §4.4.
func GetValue(vm *VM, ref Reference) value.Value {
	if ref.HasEnv {
		return ref.BaseEnv.GetBindingValue(vm, ref.Name, ref.Strict)
	}
	if ref.Unresolved {
		vm.ThrowReferenceError(ref.Name + " is not defined")
		return value.Undefined
	}
	base := ref.BaseValue
	name := vm.Strings.Intern(ref.Name)
	if value.IsUndefined(base) || value.IsNull(base) {
		vm.ThrowTypeError("Cannot read property '" + ref.Name + "' of " + vm.ToDisplayString(base))
		return value.Undefined
	}
	if !types.IsObject(vm.Heap, base) {
		// Primitive base: materialise a transient wrapper so [[Get]] can
		// consult its prototype, per §4.4 HasPrimitiveBase.
		base = vm.ToObject(base)
	}
	return types.Get(vm.Heap, vm.Strings, base, name, vm.accessorGetter())
}

// PutValue implements ES5.1 §8.7.2.
func PutValue(vm *VM, ref Reference, v value.Value) {
	if ref.HasEnv {
		ref.BaseEnv.SetMutableBinding(vm, ref.Name, v, ref.Strict)
		return
	}
	name := vm.Strings.Intern(ref.Name)
	if ref.Unresolved {
		if ref.Strict {
			vm.ThrowReferenceError(ref.Name + " is not defined")
			return
		}
		types.Put(vm.Heap, vm.Strings, vm.GlobalObject, name, v, false, vm.accessorGetter(), vm.accessorSetter())
		return
	}
	base := ref.BaseValue
	if !types.IsObject(vm.Heap, base) {
		base = vm.ToObject(base)
	}
	if ok := types.Put(vm.Heap, vm.Strings, base, name, v, ref.Strict, vm.accessorGetter(), vm.accessorSetter()); !ok && ref.Strict {
		vm.ThrowTypeError("Cannot assign to read only property '" + ref.Name + "' of " + vm.ToDisplayString(base))
	}
}
