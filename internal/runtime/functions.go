// Function-object construction shared by interpreted closures and native
// built-ins (both in package interp), ES5.1 §13.2 and §15's "has the
// following properties" constructor tables.
package runtime

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// NewNativeFunction allocates a Function object whose body is a Go
// closure rather than interpreted code. length is the declared
// Function.prototype.length (the arity ES5.1's internal algorithms
// expect, which may differ from len(args) at call time). When
// isConstructor is true a
// fresh .prototype object is also installed, as ES5.1 §13.2 steps 16-18
// require of every function.
func (vm *VM) NewNativeFunction(name string, length int, fn NativeFunc, isConstructor bool) value.Value {
	idx := vm.RegisterNative(fn)
	props := types.NewHashMap(vm.Heap, 4)
	f := types.NewFunctionObject(vm.Heap, props, vm.Protos.Function, idx, true, value.Undefined, isConstructor)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, f, "length", value.FromInt32(int32(length)), false, false, false)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, f, "name", types.NewString(vm.Heap, name), false, false, false)
	if isConstructor {
		proto := types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 4), vm.Protos.Object)
		types.PutOwnDataProperty(vm.Heap, vm.Strings, proto, "constructor", f, true, false, true)
		types.SetFunctionPrototypeProperty(vm.Heap, vm.Strings, f, proto)
	}
	return f
}

// NewInterpretedFunction allocates a Function object for a parsed
// function literal, closing over scope. Name-expression self-binding
// (§4.3.2) is the caller's responsibility, since it needs a fresh
// declarative environment wrapping scope before this is called.
func (vm *VM) NewInterpretedFunction(lit *ast.FunctionLiteral, scope *LexicalEnvironment) value.Value {
	idx := vm.RegisterFunctionLiteral(lit)
	scopeVal := vm.RegisterEnv(scope)
	props := types.NewHashMap(vm.Heap, 4)
	f := types.NewFunctionObject(vm.Heap, props, vm.Protos.Function, idx, false, scopeVal, true)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, f, "length", value.FromInt32(int32(len(lit.Params))), false, false, false)
	name := ""
	if lit.Name != nil {
		name = lit.Name.Name
	}
	types.PutOwnDataProperty(vm.Heap, vm.Strings, f, "name", types.NewString(vm.Heap, name), false, false, false)
	proto := types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 4), vm.Protos.Object)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, proto, "constructor", f, true, false, true)
	types.SetFunctionPrototypeProperty(vm.Heap, vm.Strings, f, proto)
	return f
}
