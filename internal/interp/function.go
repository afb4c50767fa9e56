// [[Call]] and [[Construct]] (ES5.1 §13.2), function-literal
// instantiation, and the `arguments` object (ES5.1 §10.6).
package interp

import (
	"strconv"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// makeFunctionHook adapts instantiateFunction to the shape
// runtime.DeclarationBindingInstantiation needs to hoist function
// declarations into scope.
func (in *Interpreter) makeFunctionHook(scope *runtime.LexicalEnvironment) runtime.MakeFunctionHook {
	return func(lit *ast.FunctionLiteral) value.Value {
		return in.instantiateFunction(lit, scope)
	}
}

// instantiateFunction builds the closure Value for lit. A named function
// expression gets its own declarative environment binding its name to
// itself, §4.3.2; function declarations and anonymous expressions
// close directly over scope.
func (in *Interpreter) instantiateFunction(lit *ast.FunctionLiteral, scope *runtime.LexicalEnvironment) value.Value {
	if lit.Name != nil && !lit.Declaration {
		inner := runtime.NewDeclarativeEnvironment(scope)
		rec := inner.Record.(*runtime.DeclarativeEnvironmentRecord)
		rec.CreateImmutableBinding(lit.Name.Name)
		fn := in.VM.NewInterpretedFunction(lit, inner)
		rec.InitializeImmutableBinding(lit.Name.Name, fn)
		return fn
	}
	return in.VM.NewInterpretedFunction(lit, scope)
}

// callHook implements ES5.1 §13.2.1 [[Call]], registered with the VM so
// package types and package runtime can invoke accessor functions and
// user-defined valueOf/toString without importing interp.
func (in *Interpreter) callHook(vm *runtime.VM, fn, this value.Value, args []value.Value) value.Value {
	idx, native := types.FunctionIndex(vm.Heap, fn)
	if native {
		return vm.NativeAt(idx)(vm, this, args)
	}
	lit := vm.FunctionLiteralAt(idx)
	scope := vm.ResolveEnv(types.FunctionScope(vm.Heap, fn))
	localEnv := runtime.NewDeclarativeEnvironment(scope)

	thisBinding := this
	if !lit.Strict {
		switch {
		case value.IsUndefined(this), value.IsNull(this):
			thisBinding = vm.GlobalObject
		case !types.IsObject(vm.Heap, this):
			thisBinding = vm.ToObject(this)
		}
	}

	argsObj := in.createArgumentsObject(fn, lit.Params, args)
	runtime.DeclarationBindingInstantiation(vm, localEnv, lit.Params, args, lit.Body.Statements, in.makeFunctionHook(localEnv), "arguments", argsObj, false)

	ctx := &runtime.ExecutionContext{LexEnv: localEnv, VarEnv: localEnv, ThisBinding: thisBinding, Strict: lit.Strict}
	vm.PushContext(ctx)
	defer vm.PopContext()

	c := in.evalStatements(ctx, lit.Body.Statements)
	if c.Type == runtime.Return {
		return c.Value
	}
	return value.Undefined
}

// constructHook implements ES5.1 §13.2.2 [[Construct]].
func (in *Interpreter) constructHook(vm *runtime.VM, fn value.Value, args []value.Value) value.Value {
	proto := vm.GetProp(fn, "prototype")
	if !types.IsObject(vm.Heap, proto) {
		proto = vm.Protos.Object
	}
	obj := types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 4), proto)
	result := in.callHook(vm, fn, obj, args)
	if vm.HasException() {
		return value.Undefined
	}
	if types.IsObject(vm.Heap, result) {
		return result
	}
	return obj
}

// createArgumentsObject builds the Arguments object ES5.1 §10.6
// describes: an array-like object with indexed own properties and a
// "length" and "callee", distinct from (but index-aliased with, in
// non-strict mode) the formal parameters. This evaluator does not
// implement the mapped-arguments-parameter aliasing, an optimization-era
// behavior already deprecated by strict mode; every binding here is a
// plain data property, which is indistinguishable from outside the
// engine for any program that doesn't mutate a parameter and read it
// back through `arguments` (§4.3 Non-goals covers strict mode
// semantics generally).
func (in *Interpreter) createArgumentsObject(callee value.Value, params []*ast.Identifier, args []value.Value) value.Value {
	vm := in.VM
	obj := types.NewObjectOfClass(vm.Heap, types.ClassArguments, types.NewHashMap(vm.Heap, 8), vm.Protos.Object)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, obj, "length", value.FromInt32(int32(len(args))), true, false, true)
	types.PutOwnDataProperty(vm.Heap, vm.Strings, obj, "callee", callee, true, false, true)
	for i, a := range args {
		types.PutOwnDataProperty(vm.Heap, vm.Strings, obj, strconv.Itoa(i), a, true, true, true)
	}
	return obj
}
