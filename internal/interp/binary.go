// Binary, logical, conditional, and assignment operators, ES5.1 §11.5-§11.13.
package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

func (in *Interpreter) evalBinaryExpression(ctx *runtime.ExecutionContext, e *ast.BinaryExpression) value.Value {
	scope := heap.NewHandleScope(in.VM.Storage)
	defer scope.Close()

	leftHandle := scope.NewHandle(in.evalExpression(ctx, e.Left))
	if in.bail() {
		return value.Undefined
	}
	right := in.evalExpression(ctx, e.Right)
	if in.bail() {
		return value.Undefined
	}
	return in.applyBinaryOp(e.Operator, leftHandle.Get(), right)
}

// applyBinaryOp implements every binary operator's core semantics
// (ES5.1 §11.5-§11.10), shared between BinaryExpression and compound
// assignment (`+=` and friends).
func (in *Interpreter) applyBinaryOp(op string, left, right value.Value) value.Value {
	vm, h := in.VM, in.VM.Heap

	switch op {
	case "+":
		lp := vm.ToPrimitive(left, "")
		if in.bail() {
			return value.Undefined
		}
		rp := vm.ToPrimitive(right, "")
		if in.bail() {
			return value.Undefined
		}
		if types.IsStringValue(h, lp) || types.IsStringValue(h, rp) {
			return types.NewString(h, vm.ToDisplayString(lp)+vm.ToDisplayString(rp))
		}
		return numberValue(in.toNumber(lp) + in.toNumber(rp))
	case "-":
		return numberValue(in.toNumber(left) - in.toNumber(right))
	case "*":
		return numberValue(in.toNumber(left) * in.toNumber(right))
	case "/":
		return numberValue(in.toNumber(left) / in.toNumber(right))
	case "%":
		return numberValue(math.Mod(in.toNumber(left), in.toNumber(right)))
	case "&":
		return numberValue(float64(value.ToInt32(in.toNumber(left)) & value.ToInt32(in.toNumber(right))))
	case "|":
		return numberValue(float64(value.ToInt32(in.toNumber(left)) | value.ToInt32(in.toNumber(right))))
	case "^":
		return numberValue(float64(value.ToInt32(in.toNumber(left)) ^ value.ToInt32(in.toNumber(right))))
	case "<<":
		shift := value.ToUint32(in.toNumber(right)) & 31
		return numberValue(float64(value.ToInt32(in.toNumber(left)) << shift))
	case ">>":
		shift := value.ToUint32(in.toNumber(right)) & 31
		return numberValue(float64(value.ToInt32(in.toNumber(left)) >> shift))
	case ">>>":
		shift := value.ToUint32(in.toNumber(right)) & 31
		return numberValue(float64(value.ToUint32(in.toNumber(left)) >> shift))
	case "<":
		lt, undef := in.relationalLess(left, right)
		if in.bail() || undef {
			return value.FromBool(false)
		}
		return value.FromBool(lt)
	case ">":
		gt, undef := in.relationalLess(right, left)
		if in.bail() || undef {
			return value.FromBool(false)
		}
		return value.FromBool(gt)
	case "<=":
		gt, undef := in.relationalLess(right, left)
		if in.bail() || undef {
			return value.FromBool(false)
		}
		return value.FromBool(!gt)
	case ">=":
		lt, undef := in.relationalLess(left, right)
		if in.bail() || undef {
			return value.FromBool(false)
		}
		return value.FromBool(!lt)
	case "==":
		return value.FromBool(in.abstractEquals(left, right))
	case "!=":
		return value.FromBool(!in.abstractEquals(left, right))
	case "===":
		return value.FromBool(types.StrictEquals(h, left, right))
	case "!==":
		return value.FromBool(!types.StrictEquals(h, left, right))
	case "instanceof":
		return in.evalInstanceOf(left, right)
	case "in":
		return in.evalInOperator(left, right)
	default:
		vm.ThrowSyntaxError("unsupported operator " + op)
		return value.Undefined
	}
}

// evalInstanceOf implements ES5.1 §11.8.6.
func (in *Interpreter) evalInstanceOf(left, right value.Value) value.Value {
	vm, h := in.VM, in.VM.Heap
	if !types.IsObject(h, right) || !types.IsCallable(h, right) {
		vm.ThrowTypeError("Right-hand side of 'instanceof' is not callable")
		return value.Undefined
	}
	if !types.IsObject(h, left) {
		return value.FromBool(false)
	}
	proto := vm.GetProp(right, "prototype")
	for cur := types.Prototype(h, left); types.IsObject(h, cur); cur = types.Prototype(h, cur) {
		if cur == proto {
			return value.FromBool(true)
		}
	}
	return value.FromBool(false)
}

// evalInOperator implements ES5.1 §11.8.7.
func (in *Interpreter) evalInOperator(left, right value.Value) value.Value {
	vm, h := in.VM, in.VM.Heap
	if !types.IsObject(h, right) {
		vm.ThrowTypeError("Cannot use 'in' operator on a non-object")
		return value.Undefined
	}
	name := vm.ToDisplayString(in.toJSString(left))
	return value.FromBool(vm.HasProp(right, name))
}

// evalLogicalExpression implements ES5.1 §11.11, short-circuiting without
// coercing the returned operand to boolean.
func (in *Interpreter) evalLogicalExpression(ctx *runtime.ExecutionContext, e *ast.LogicalExpression) value.Value {
	left := in.evalExpression(ctx, e.Left)
	if in.bail() {
		return value.Undefined
	}
	truthy := types.ToBoolean(in.VM.Heap, left)
	if (e.Operator == "&&" && !truthy) || (e.Operator == "||" && truthy) {
		return left
	}
	return in.evalExpression(ctx, e.Right)
}

func (in *Interpreter) evalConditionalExpression(ctx *runtime.ExecutionContext, e *ast.ConditionalExpression) value.Value {
	test := in.evalExpression(ctx, e.Test)
	if in.bail() {
		return value.Undefined
	}
	if types.ToBoolean(in.VM.Heap, test) {
		return in.evalExpression(ctx, e.Consequent)
	}
	return in.evalExpression(ctx, e.Alternate)
}

// evalAssignmentExpression implements ES5.1 §11.13.
func (in *Interpreter) evalAssignmentExpression(ctx *runtime.ExecutionContext, e *ast.AssignmentExpression) value.Value {
	scope := heap.NewHandleScope(in.VM.Storage)
	defer scope.Close()

	ref := in.evalReference(ctx, e.Left)
	if in.bail() {
		return value.Undefined
	}
	baseHandle := scope.NewHandle(ref.BaseValue)

	if e.Operator == "=" {
		v := in.evalExpression(ctx, e.Right)
		if in.bail() {
			return value.Undefined
		}
		ref.BaseValue = baseHandle.Get()
		runtime.PutValue(in.VM, ref, v)
		return v
	}

	oldHandle := scope.NewHandle(runtime.GetValue(in.VM, ref))
	if in.bail() {
		return value.Undefined
	}
	rhs := in.evalExpression(ctx, e.Right)
	if in.bail() {
		return value.Undefined
	}
	op := strings.TrimSuffix(e.Operator, "=")
	result := in.applyBinaryOp(op, oldHandle.Get(), rhs)
	if in.bail() {
		return value.Undefined
	}
	ref.BaseValue = baseHandle.Get()
	runtime.PutValue(in.VM, ref, result)
	return result
}
