// The Error constructor, its six native subtype constructors, and
// Error.prototype, ES5.1 §15.11.
package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinErrorCallFor returns a native [[Call]]/[[Construct]] body for the
// given subtype (ES5.1 §15.11.1, §15.11.6's NativeError constructors):
// both forms build a fresh Error object of that subtype and, when a
// message argument is given, set its own "message" property.
func builtinErrorCallFor(subtype types.ErrorSubtype, proto value.Value) runtime.NativeFunc {
	return func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		obj := types.NewErrorObject(vm.Heap, subtype, types.NewHashMap(vm.Heap, 4), proto)
		if len(args) > 0 && !value.IsUndefined(args[0]) {
			msg := toStr(vm, args[0])
			if vm.HasException() {
				return value.Undefined
			}
			vm.DefineOwnProp(obj, "message", types.DataDescriptor(msg, true, false, true), false)
		}
		return obj
	}
}

// installErrorPrototype implements ES5.1 §15.11.4: the "name" data
// property identifying the subtype and a toString that renders
// "name: message" (or just "name" when message is empty).
func installErrorPrototype(vm *runtime.VM, proto value.Value, name string) {
	vm.DefineOwnProp(proto, "name", types.DataDescriptor(types.NewString(vm.Heap, name), true, false, true), false)
	vm.DefineOwnProp(proto, "message", types.DataDescriptor(types.NewString(vm.Heap, ""), true, false, true), false)
	method(vm, proto, "toString", 0, builtinErrorToString)
}

// builtinErrorToString implements ES5.1 §15.11.4.4.
func builtinErrorToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	if !types.IsObject(vm.Heap, this) {
		vm.ThrowTypeError("Error.prototype.toString called on non-object")
		return value.Undefined
	}
	name := "Error"
	if nameVal := vm.GetProp(this, "name"); !value.IsUndefined(nameVal) {
		name = toGoStr(vm, nameVal)
	}
	msg := toGoStr(vm, vm.GetProp(this, "message"))
	if msg == "" {
		return types.NewString(vm.Heap, name)
	}
	return types.NewString(vm.Heap, name+": "+msg)
}
