// The Function constructor and Function.prototype, ES5.1 §15.3.
package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinFunctionCall implements ES5.1 §15.3.1/§15.3.2's dynamic-source
// form (`new Function("a","b","return a+b")`). This evaluator does not
// carry a parser reference into package interp's native tables, so
// dynamic function compilation is out of scope the same way eval is
// (§4.3 Non-goals): every call raises, matching the documented
// decision not to install a global eval binding.
func builtinFunctionCall(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	vm.ThrowTypeError("Function constructor is not supported")
	return value.Undefined
}

func installFunctionPrototype(vm *runtime.VM, proto value.Value) {
	method(vm, proto, "toString", 0, builtinFunctionToString)
	method(vm, proto, "call", 1, builtinFunctionCallMethod)
	method(vm, proto, "apply", 2, builtinFunctionApply)
	method(vm, proto, "bind", 1, builtinFunctionBind)
}

// builtinFunctionToString implements ES5.1 §15.3.4.2's weaker guarantee
// (an implementation-defined string that "has the syntax of a
// FunctionDeclaration"); this evaluator renders the function's name with
// an empty parameter list and a `[native code]` body for every function,
// interpreted or native, since it does not retain the source text once
// parsed.
func builtinFunctionToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	if !types.IsCallable(vm.Heap, this) {
		vm.ThrowTypeError("Function.prototype.toString called on non-function")
		return value.Undefined
	}
	name := vm.ToDisplayString(vm.GetProp(this, "name"))
	return types.NewString(vm.Heap, "function "+name+"() { [native code] }")
}

// builtinFunctionCallMethod implements ES5.1 §15.3.4.4.
func builtinFunctionCallMethod(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	if !types.IsCallable(vm.Heap, this) {
		vm.ThrowTypeError("Function.prototype.call called on non-function")
		return value.Undefined
	}
	var rest []value.Value
	if len(args) > 1 {
		rest = args[1:]
	}
	return vm.Call(this, arg(args, 0), rest)
}

// builtinFunctionApply implements ES5.1 §15.3.4.3.
func builtinFunctionApply(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	if !types.IsCallable(vm.Heap, this) {
		vm.ThrowTypeError("Function.prototype.apply called on non-function")
		return value.Undefined
	}
	argArray := arg(args, 1)
	if value.IsUndefined(argArray) || value.IsNull(argArray) {
		return vm.Call(this, arg(args, 0), nil)
	}
	if !types.IsObject(vm.Heap, argArray) {
		vm.ThrowTypeError("CreateListFromArrayLike called on non-object")
		return value.Undefined
	}
	length := int(toUint32Arg(vm, vm.GetProp(argArray, "length")))
	callArgs := make([]value.Value, length)
	for i := 0; i < length; i++ {
		callArgs[i] = vm.GetProp(argArray, itoa(i))
	}
	return vm.Call(this, arg(args, 0), callArgs)
}

// builtinFunctionBind implements ES5.1 §15.3.4.5, returning a native
// wrapper that fixes `this` and any leading bound arguments.
func builtinFunctionBind(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	if !types.IsCallable(vm.Heap, this) {
		vm.ThrowTypeError("Function.prototype.bind called on non-function")
		return value.Undefined
	}
	target := this
	boundThis := arg(args, 0)
	var boundArgs []value.Value
	if len(args) > 1 {
		boundArgs = append(boundArgs, args[1:]...)
	}
	name := vm.ToDisplayString(vm.GetProp(target, "name"))
	fn := vm.NewNativeFunction("bound "+name, 0, func(vm *runtime.VM, callThis value.Value, callArgs []value.Value) value.Value {
		full := make([]value.Value, 0, len(boundArgs)+len(callArgs))
		full = append(full, boundArgs...)
		full = append(full, callArgs...)
		return vm.Call(target, boundThis, full)
	}, true)
	return fn
}
