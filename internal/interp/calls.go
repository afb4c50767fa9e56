// Call and new expressions, ES5.1 §11.2.2-§11.2.3.
package interp

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

func (in *Interpreter) evalCallExpression(ctx *runtime.ExecutionContext, e *ast.CallExpression) value.Value {
	vm := in.VM
	scope := heap.NewHandleScope(vm.Storage)
	defer scope.Close()

	thisHandle := scope.NewHandle(value.Undefined)
	var fnHandle heap.Handle

	if me, ok := e.Callee.(*ast.MemberExpression); ok {
		ref := in.evalMemberReference(ctx, me)
		if in.bail() {
			return value.Undefined
		}
		thisHandle.Set(ref.BaseValue)
		fnHandle = scope.NewHandle(runtime.GetValue(vm, ref))
	} else {
		ref := in.evalReference(ctx, e.Callee)
		if in.bail() {
			return value.Undefined
		}
		fnHandle = scope.NewHandle(runtime.GetValue(vm, ref))
		if ref.HasEnv {
			thisHandle.Set(ref.BaseEnv.ImplicitThisValue())
		}
	}
	if in.bail() {
		return value.Undefined
	}
	if !types.IsCallable(vm.Heap, fnHandle.Get()) {
		vm.ThrowTypeError(e.Callee.String() + " is not a function")
		return value.Undefined
	}

	argHandles := make([]heap.Handle, len(e.Arguments))
	for i, a := range e.Arguments {
		argHandles[i] = scope.NewHandle(in.evalExpression(ctx, a))
		if in.bail() {
			return value.Undefined
		}
	}
	args := make([]value.Value, len(argHandles))
	for i, h := range argHandles {
		args[i] = h.Get()
	}
	return in.callHook(vm, fnHandle.Get(), thisHandle.Get(), args)
}

func (in *Interpreter) evalNewExpression(ctx *runtime.ExecutionContext, e *ast.NewExpression) value.Value {
	vm := in.VM
	scope := heap.NewHandleScope(vm.Storage)
	defer scope.Close()

	fnHandle := scope.NewHandle(in.evalExpression(ctx, e.Callee))
	if in.bail() {
		return value.Undefined
	}
	if !types.IsConstructor(vm.Heap, fnHandle.Get()) {
		vm.ThrowTypeError(e.Callee.String() + " is not a constructor")
		return value.Undefined
	}
	argHandles := make([]heap.Handle, len(e.Arguments))
	for i, a := range e.Arguments {
		argHandles[i] = scope.NewHandle(in.evalExpression(ctx, a))
		if in.bail() {
			return value.Undefined
		}
	}
	args := make([]value.Value, len(argHandles))
	for i, h := range argHandles {
		args[i] = h.Get()
	}
	return in.constructHook(vm, fnHandle.Get(), args)
}
