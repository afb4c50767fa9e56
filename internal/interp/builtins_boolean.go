// The Boolean constructor and Boolean.prototype, ES5.1 §15.6.
package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinBooleanCall implements ES5.1 §15.6.1/§15.6.2, using the same
// this-is-object discriminator established in builtinStringCall to tell
// a plain call from construction via `new`.
func builtinBooleanCall(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	b := types.ToBoolean(vm.Heap, arg(args, 0))
	if types.IsObject(vm.Heap, this) {
		return types.NewWrapperObject(vm.Heap, types.ClassBoolean, types.NewHashMap(vm.Heap, 4), vm.Protos.Boolean, value.FromBool(b))
	}
	return value.FromBool(b)
}

// thisBooleanValue implements the this-value extraction shared by every
// Boolean.prototype method (ES5.1 §15.6.4).
func thisBooleanValue(vm *runtime.VM, this value.Value) bool {
	h := vm.Heap
	switch {
	case value.IsBoolean(this):
		return value.ToBool(this)
	case types.IsObject(h, this) && types.Class(h, this) == types.ClassBoolean:
		return value.ToBool(types.PrimitiveValue(h, this))
	default:
		vm.ThrowTypeError("Boolean.prototype method called on incompatible receiver")
		return false
	}
}

func installBooleanPrototype(vm *runtime.VM, proto value.Value) {
	method(vm, proto, "toString", 0, builtinBooleanToString)
	method(vm, proto, "valueOf", 0, builtinBooleanValueOf)
}

// builtinBooleanToString implements ES5.1 §15.6.4.2.
func builtinBooleanToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	b := thisBooleanValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	if b {
		return types.NewString(vm.Heap, "true")
	}
	return types.NewString(vm.Heap, "false")
}

// builtinBooleanValueOf implements ES5.1 §15.6.4.3.
func builtinBooleanValueOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	b := thisBooleanValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return value.FromBool(b)
}
