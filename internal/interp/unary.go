// Unary and update (++/--) operators, ES5.1 §11.3-§11.4.
package interp

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

func (in *Interpreter) evalUnaryExpression(ctx *runtime.ExecutionContext, e *ast.UnaryExpression) value.Value {
	vm, h := in.VM, in.VM.Heap

	switch e.Operator {
	case "typeof":
		if id, ok := e.Operand.(*ast.Identifier); ok {
			ref := runtime.GetIdentifierReference(vm, ctx.LexEnv, id.Name, ctx.Strict)
			if ref.IsUnresolvableReference() {
				return types.NewString(h, "undefined")
			}
		}
		v := in.evalExpression(ctx, e.Operand)
		if in.bail() {
			return value.Undefined
		}
		return types.NewString(h, types.TypeOf(h, v))

	case "void":
		in.evalExpression(ctx, e.Operand)
		return value.Undefined

	case "delete":
		ref := in.evalReference(ctx, e.Operand)
		if in.bail() {
			return value.Undefined
		}
		if ref.HasEnv {
			if ctx.Strict {
				vm.ThrowSyntaxError("Delete of an unqualified identifier in strict mode.")
				return value.Undefined
			}
			return value.FromBool(ref.BaseEnv.DeleteBinding(ref.Name))
		}
		if ref.IsUnresolvableReference() {
			return value.FromBool(true)
		}
		return value.FromBool(vm.DeleteProp(ref.BaseValue, ref.Name, false))
	}

	v := in.evalExpression(ctx, e.Operand)
	if in.bail() {
		return value.Undefined
	}
	switch e.Operator {
	case "+":
		return numberValue(in.toNumber(v))
	case "-":
		return numberValue(-in.toNumber(v))
	case "~":
		return numberValue(float64(^value.ToInt32(in.toNumber(v))))
	case "!":
		return value.FromBool(!types.ToBoolean(h, v))
	default:
		vm.ThrowSyntaxError("unsupported unary operator " + e.Operator)
		return value.Undefined
	}
}

func (in *Interpreter) evalUpdateExpression(ctx *runtime.ExecutionContext, e *ast.UpdateExpression) value.Value {
	ref := in.evalReference(ctx, e.Operand)
	if in.bail() {
		return value.Undefined
	}
	old := runtime.GetValue(in.VM, ref)
	if in.bail() {
		return value.Undefined
	}
	oldNum := in.toNumber(old)
	if in.bail() {
		return value.Undefined
	}
	newNum := oldNum + 1
	if e.Operator == "--" {
		newNum = oldNum - 1
	}
	newVal := numberValue(newNum)
	runtime.PutValue(in.VM, ref, newVal)
	if in.bail() {
		return value.Undefined
	}
	if e.Prefix {
		return newVal
	}
	return numberValue(oldNum)
}
