// The Number constructor and Number.prototype, ES5.1 §15.7.
package interp

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// builtinNumberCall implements ES5.1 §15.7.1/§15.7.2, using the same
// this-is-object discriminator established in builtinStringCall to tell
// a plain call from construction via `new`.
func builtinNumberCall(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := 0.0
	if len(args) > 0 {
		n = toNum(vm, args[0])
		if vm.HasException() {
			return value.Undefined
		}
	}
	if types.IsObject(vm.Heap, this) {
		return types.NewWrapperObject(vm.Heap, types.ClassNumber, types.NewHashMap(vm.Heap, 4), vm.Protos.Number, numberValue(n))
	}
	return numberValue(n)
}

// installNumberStatics implements ES5.1 §15.7.3's constant properties.
func installNumberStatics(vm *runtime.VM, ctor value.Value) {
	dataConst(vm, ctor, "MAX_VALUE", value.FromFloat64(math.MaxFloat64))
	dataConst(vm, ctor, "MIN_VALUE", value.FromFloat64(5e-324))
	dataConst(vm, ctor, "NaN", value.FromFloat64(nan()))
	dataConst(vm, ctor, "POSITIVE_INFINITY", value.FromFloat64(posInf()))
	dataConst(vm, ctor, "NEGATIVE_INFINITY", value.FromFloat64(negInf()))
}

// thisNumberValue implements the this-value extraction shared by every
// Number.prototype method (ES5.1 §15.7.4).
func thisNumberValue(vm *runtime.VM, this value.Value) float64 {
	h := vm.Heap
	switch {
	case value.IsNumber(this):
		return value.NumberToFloat64(this)
	case types.IsObject(h, this) && types.Class(h, this) == types.ClassNumber:
		return value.NumberToFloat64(types.PrimitiveValue(h, this))
	default:
		vm.ThrowTypeError("Number.prototype method called on incompatible receiver")
		return 0
	}
}

func installNumberPrototype(vm *runtime.VM, proto value.Value) {
	method(vm, proto, "toString", 1, builtinNumberToString)
	method(vm, proto, "valueOf", 0, builtinNumberValueOf)
	method(vm, proto, "toFixed", 1, builtinNumberToFixed)
}

// builtinNumberToString implements ES5.1 §15.7.4.2, including the
// optional radix argument (base 2-36; base 10 uses the general
// NumberToString formatting, other bases format the integer part only).
func builtinNumberToString(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := thisNumberValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	radix := 10
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		radix = int(value.ToInteger(toNum(vm, args[0])))
	}
	if radix < 2 || radix > 36 {
		vm.ThrowRangeError("toString() radix must be between 2 and 36")
		return value.Undefined
	}
	if radix == 10 {
		return types.NewString(vm.Heap, types.NumberToString(n))
	}
	if math.IsNaN(n) {
		return types.NewString(vm.Heap, "NaN")
	}
	if math.IsInf(n, 0) {
		return types.NewString(vm.Heap, types.NumberToString(n))
	}
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(int64(n), radix)
	if neg {
		s = "-" + s
	}
	return types.NewString(vm.Heap, s)
}

func builtinNumberValueOf(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := thisNumberValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	return numberValue(n)
}

// builtinNumberToFixed implements a practical subset of ES5.1 §15.7.4.5:
// fixed-point notation with the requested number of fraction digits,
// falling back to NumberToString for NaN/Infinity per ES5.1 §15.7.4.5.
func builtinNumberToFixed(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
	n := thisNumberValue(vm, this)
	if vm.HasException() {
		return value.Undefined
	}
	digits := 0
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		digits = int(value.ToInteger(toNum(vm, args[0])))
	}
	if digits < 0 || digits > 20 {
		vm.ThrowRangeError("toFixed() digits argument must be between 0 and 20")
		return value.Undefined
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return types.NewString(vm.Heap, types.NumberToString(n))
	}
	return types.NewString(vm.Heap, strconv.FormatFloat(n, 'f', digits, 64))
}
