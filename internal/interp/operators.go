// Abstract operations needing the VM (ToPrimitive, and everything built
// on it), plus the evaluator's binary/unary operator implementations,
// ES5.1 §9 and §11.
package interp

import (
	"math"

	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

func (in *Interpreter) toObjectHook(vm *runtime.VM, v value.Value) value.Value {
	switch {
	case value.IsBoolean(v):
		return types.NewWrapperObject(vm.Heap, types.ClassBoolean, types.NewHashMap(vm.Heap, 2), vm.Protos.Boolean, v)
	case value.IsNumber(v):
		return types.NewWrapperObject(vm.Heap, types.ClassNumber, types.NewHashMap(vm.Heap, 2), vm.Protos.Number, v)
	case types.IsStringValue(vm.Heap, v):
		return types.NewWrapperObject(vm.Heap, types.ClassString, types.NewHashMap(vm.Heap, 2), vm.Protos.String, v)
	case value.IsUndefined(v), value.IsNull(v):
		vm.ThrowTypeError("Cannot convert undefined or null to object")
		return value.Undefined
	default:
		return v
	}
}

// toPrimitiveHook implements ES5.1 §9.1 ToPrimitive/[[DefaultValue]] for
// object values; hint is "string", "number", or "" (no preference, which
// behaves like "number" except for Date, which this evaluator doesn't
// implement).
func (in *Interpreter) toPrimitiveHook(vm *runtime.VM, v value.Value, hint string) value.Value {
	methods := [2]string{"valueOf", "toString"}
	if hint == "string" {
		methods = [2]string{"toString", "valueOf"}
	}
	for _, name := range methods {
		method := vm.GetProp(v, name)
		if !types.IsCallable(vm.Heap, method) {
			continue
		}
		result := in.callHook(vm, method, v, nil)
		if vm.HasException() {
			return value.Undefined
		}
		if !types.IsObject(vm.Heap, result) {
			return result
		}
	}
	vm.ThrowTypeError("Cannot convert object to primitive value")
	return value.Undefined
}

// toStringHook implements ES5.1 §9.8 ToString for object operands; the
// primitive fast paths live in runtime.VM.ToDisplayString.
func (in *Interpreter) toStringHook(vm *runtime.VM, v value.Value) string {
	prim := in.toPrimitiveHook(vm, v, "string")
	if vm.HasException() {
		return ""
	}
	return vm.ToDisplayString(prim)
}

// toNumber implements ES5.1 §9.3 ToNumber.
func (in *Interpreter) toNumber(v value.Value) float64 {
	h := in.VM.Heap
	switch {
	case value.IsNumber(v):
		return value.NumberToFloat64(v)
	case value.IsBoolean(v):
		if value.ToBool(v) {
			return 1
		}
		return 0
	case value.IsUndefined(v):
		return math.NaN()
	case value.IsNull(v):
		return 0
	case types.IsStringValue(h, v):
		return types.ParseNumericLiteral(types.StringValue(h, v))
	default:
		prim := in.VM.ToPrimitive(v, "number")
		if in.VM.HasException() {
			return math.NaN()
		}
		return in.toNumber(prim)
	}
}

// toJSString implements ES5.1 §9.8 ToString, returning an interned String
// Value (as opposed to runtime.VM.ToDisplayString's plain Go string,
// used only for diagnostics).
func (in *Interpreter) toJSString(v value.Value) value.Value {
	h := in.VM.Heap
	switch {
	case types.IsStringValue(h, v):
		return v
	case types.IsObject(h, v):
		prim := in.VM.ToPrimitive(v, "string")
		if in.VM.HasException() {
			return value.Undefined
		}
		return in.toJSString(prim)
	default:
		return types.NewString(h, in.VM.ToDisplayString(v))
	}
}

// typeCategory buckets v into one of the six ES5.1 §8 Types, the
// granularity the Abstract Equality Comparison Algorithm branches on.
type typeCategory int

const (
	catUndefined typeCategory = iota
	catNull
	catBoolean
	catNumber
	catString
	catObject
)

func categoryOf(h *heap.Heap, v value.Value) typeCategory {
	switch {
	case value.IsUndefined(v):
		return catUndefined
	case value.IsNull(v):
		return catNull
	case value.IsBoolean(v):
		return catBoolean
	case value.IsNumber(v):
		return catNumber
	case types.IsStringValue(h, v):
		return catString
	default:
		return catObject
	}
}

// abstractEquals implements ES5.1 §11.9.3's Abstract Equality Comparison
// Algorithm (==).
func (in *Interpreter) abstractEquals(a, b value.Value) bool {
	h := in.VM.Heap
	ta, tb := categoryOf(h, a), categoryOf(h, b)

	if ta == tb {
		return types.StrictEquals(h, a, b)
	}
	switch {
	case ta == catUndefined && tb == catNull, ta == catNull && tb == catUndefined:
		return true
	case ta == catNumber && tb == catString:
		return in.abstractEquals(a, value.FromFloat64(in.toNumber(b)))
	case ta == catString && tb == catNumber:
		return in.abstractEquals(value.FromFloat64(in.toNumber(a)), b)
	case ta == catBoolean:
		return in.abstractEquals(value.FromFloat64(in.toNumber(a)), b)
	case tb == catBoolean:
		return in.abstractEquals(a, value.FromFloat64(in.toNumber(b)))
	case (ta == catNumber || ta == catString) && tb == catObject:
		return in.abstractEquals(a, in.toPrimitive(b))
	case ta == catObject && (tb == catNumber || tb == catString):
		return in.abstractEquals(in.toPrimitive(a), b)
	default:
		return false
	}
}

func (in *Interpreter) toPrimitive(v value.Value) value.Value {
	return in.VM.ToPrimitive(v, "")
}

// relationalLess implements ES5.1 §11.8.5's Abstract Relational
// Comparison for `<` (leftFirst true) / the mirrored form `>` uses
// (leftFirst false swaps evaluation order only, which this evaluator
// already resolved before calling in). Returns (result, undefined) where
// undefined means the comparison involved NaN, ES5.1's special
// "undefined" relational result.
func (in *Interpreter) relationalLess(a, b value.Value) (bool, bool) {
	h := in.VM.Heap
	pa, pb := in.VM.ToPrimitive(a, "number"), in.VM.ToPrimitive(b, "number")
	if in.VM.HasException() {
		return false, true
	}
	if types.IsStringValue(h, pa) && types.IsStringValue(h, pb) {
		return types.StringValue(h, pa) < types.StringValue(h, pb), false
	}
	na, nb := in.toNumber(pa), in.toNumber(pb)
	if math.IsNaN(na) || math.IsNaN(nb) {
		return false, true
	}
	return na < nb, false
}
