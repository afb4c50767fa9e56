// Expression evaluation, ES5.1 §11.
package interp

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// bail reports whether an exception became pending during the most
// recent sub-evaluation, the signal every expression evaluator checks
// before touching its operands further.
func (in *Interpreter) bail() bool { return in.VM.HasException() }

// numberValue boxes f as the most specific Value form available,
// preferring the int32 encoding when f is an exactly representable
// 32-bit integer (matching how NumberLiteral's parser output and
// arithmetic results are normally shaped) and falling back to the
// double encoding otherwise. Negative zero always takes the double path,
// since FromInt32 has no way to distinguish it from positive zero.
func numberValue(f float64) value.Value {
	if f == 0 {
		if math.Signbit(f) {
			return value.FromFloat64(f)
		}
		return value.FromInt32(0)
	}
	if i := int32(f); float64(i) == f {
		return value.FromInt32(i)
	}
	return value.FromFloat64(f)
}

// evalExpression evaluates expr to a Value, applying GetValue where expr
// denotes a Reference. Callers must check bail() immediately afterward.
func (in *Interpreter) evalExpression(ctx *runtime.ExecutionContext, expr ast.Expression) value.Value {
	in.traceVisit("expression", expr)
	v := in.evalExpressionDispatch(ctx, expr)
	in.traceResult(v)
	return v
}

// evalExpressionDispatch is the expression-kind switch itself.
func (in *Interpreter) evalExpressionDispatch(ctx *runtime.ExecutionContext, expr ast.Expression) value.Value {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return numberValue(e.Value)
	case *ast.StringLiteral:
		return types.NewString(in.VM.Heap, e.Value)
	case *ast.BooleanLiteral:
		return value.FromBool(e.Value)
	case *ast.NullLiteral:
		return value.Null
	case *ast.ThisExpression:
		return ctx.ThisBinding
	case *ast.Identifier:
		ref := runtime.GetIdentifierReference(in.VM, ctx.LexEnv, e.Name, ctx.Strict)
		return runtime.GetValue(in.VM, ref)
	case *ast.MemberExpression:
		ref := in.evalMemberReference(ctx, e)
		if in.bail() {
			return value.Undefined
		}
		return runtime.GetValue(in.VM, ref)
	case *ast.ArrayLiteral:
		return in.evalArrayLiteral(ctx, e)
	case *ast.ObjectLiteral:
		return in.evalObjectLiteral(ctx, e)
	case *ast.FunctionLiteral:
		return in.instantiateFunction(e, ctx.LexEnv)
	case *ast.CallExpression:
		return in.evalCallExpression(ctx, e)
	case *ast.NewExpression:
		return in.evalNewExpression(ctx, e)
	case *ast.UnaryExpression:
		return in.evalUnaryExpression(ctx, e)
	case *ast.UpdateExpression:
		return in.evalUpdateExpression(ctx, e)
	case *ast.BinaryExpression:
		return in.evalBinaryExpression(ctx, e)
	case *ast.LogicalExpression:
		return in.evalLogicalExpression(ctx, e)
	case *ast.ConditionalExpression:
		return in.evalConditionalExpression(ctx, e)
	case *ast.AssignmentExpression:
		return in.evalAssignmentExpression(ctx, e)
	case *ast.SequenceExpression:
		var v value.Value = value.Undefined
		for _, sub := range e.Expressions {
			v = in.evalExpression(ctx, sub)
			if in.bail() {
				return value.Undefined
			}
		}
		return v
	default:
		in.VM.ThrowSyntaxError("unsupported expression")
		return value.Undefined
	}
}

// evalReference evaluates expr as a Reference (§4.4), used by
// assignment, delete, typeof, and ++/-- where the lvalue itself (not its
// current value) is what the operator needs.
func (in *Interpreter) evalReference(ctx *runtime.ExecutionContext, expr ast.Expression) runtime.Reference {
	switch e := expr.(type) {
	case *ast.Identifier:
		return runtime.GetIdentifierReference(in.VM, ctx.LexEnv, e.Name, ctx.Strict)
	case *ast.MemberExpression:
		return in.evalMemberReference(ctx, e)
	default:
		v := in.evalExpression(ctx, expr)
		return runtime.NewPropertyReference(v, "", ctx.Strict)
	}
}

func (in *Interpreter) evalMemberReference(ctx *runtime.ExecutionContext, e *ast.MemberExpression) runtime.Reference {
	base := in.evalExpression(ctx, e.Object)
	if in.bail() {
		return runtime.Reference{}
	}
	var name string
	if e.Computed {
		key := in.evalExpression(ctx, e.Property)
		if in.bail() {
			return runtime.Reference{}
		}
		name = in.VM.ToDisplayString(in.toJSString(key))
	} else {
		name = e.Property.(*ast.Identifier).Name
	}
	return runtime.NewPropertyReference(base, name, ctx.Strict)
}

func (in *Interpreter) evalArrayLiteral(ctx *runtime.ExecutionContext, e *ast.ArrayLiteral) value.Value {
	vm := in.VM
	scope := heap.NewHandleScope(vm.Storage)
	defer scope.Close()

	arrHandle := scope.NewHandle(types.NewArray(vm.Heap, vm.Strings, vm.Protos.Array))
	for i, elem := range e.Elements {
		if elem == nil {
			continue // elided element: a hole, no own property installed
		}
		v := in.evalExpression(ctx, elem)
		if in.bail() {
			return value.Undefined
		}
		vm.DefineOwnProp(arrHandle.Get(), itoa(i), types.DataDescriptor(v, true, true, true), false)
	}
	if len(e.Elements) > 0 {
		vm.DefineOwnProp(arrHandle.Get(), "length", types.DataDescriptor(value.FromInt32(int32(len(e.Elements))), true, false, false), false)
	}
	return arrHandle.Get()
}

func (in *Interpreter) evalObjectLiteral(ctx *runtime.ExecutionContext, e *ast.ObjectLiteral) value.Value {
	vm := in.VM
	scope := heap.NewHandleScope(vm.Storage)
	defer scope.Close()

	objHandle := scope.NewHandle(types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 8), vm.Protos.Object))
	for _, prop := range e.Properties {
		name := in.propertyKeyName(ctx, prop)
		if in.bail() {
			return value.Undefined
		}
		switch prop.Kind {
		case ast.PropertyGet:
			fn := in.instantiateFunction(prop.Value.(*ast.FunctionLiteral), ctx.LexEnv)
			vm.DefineOwnProp(objHandle.Get(), name, types.AccessorDescriptorView(fn, value.Undefined, true, true), false)
		case ast.PropertySet:
			fn := in.instantiateFunction(prop.Value.(*ast.FunctionLiteral), ctx.LexEnv)
			vm.DefineOwnProp(objHandle.Get(), name, types.AccessorDescriptorView(value.Undefined, fn, true, true), false)
		default:
			v := in.evalExpression(ctx, prop.Value)
			if in.bail() {
				return value.Undefined
			}
			vm.DefineOwnProp(objHandle.Get(), name, types.DataDescriptor(v, true, true, true), false)
		}
	}
	return objHandle.Get()
}

func (in *Interpreter) propertyKeyName(ctx *runtime.ExecutionContext, prop ast.Property) string {
	switch k := prop.Key.(type) {
	case *ast.Identifier:
		return k.Name
	case *ast.StringLiteral:
		return k.Value
	case *ast.NumberLiteral:
		return types.NumberToString(k.Value)
	default:
		v := in.evalExpression(ctx, prop.Key)
		return in.VM.ToDisplayString(v)
	}
}

func itoa(i int) string { return strconv.Itoa(i) }
