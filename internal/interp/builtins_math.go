// The Math namespace object, ES5.1 §15.8.
package interp

import (
	"math"
	"math/rand"

	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// newMathObject implements ES5.1 §15.8: a single non-constructible,
// non-callable object carrying the constants of §15.8.1 and the
// functions of §15.8.2.
func newMathObject(vm *runtime.VM, objProto value.Value) value.Value {
	m := types.NewObject(vm.Heap, types.NewHashMap(vm.Heap, 16), objProto)

	dataConst(vm, m, "E", value.FromFloat64(math.E))
	dataConst(vm, m, "LN10", value.FromFloat64(math.Ln10))
	dataConst(vm, m, "LN2", value.FromFloat64(math.Ln2))
	dataConst(vm, m, "LOG2E", value.FromFloat64(math.Log2E))
	dataConst(vm, m, "LOG10E", value.FromFloat64(math.Log10E))
	dataConst(vm, m, "PI", value.FromFloat64(math.Pi))
	dataConst(vm, m, "SQRT1_2", value.FromFloat64(math.Sqrt(0.5)))
	dataConst(vm, m, "SQRT2", value.FromFloat64(math.Sqrt2))

	unary := func(name string, f func(float64) float64) {
		method(vm, m, name, 1, func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
			return value.FromFloat64(f(toNum(vm, arg(args, 0))))
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("exp", math.Exp)
	unary("log", math.Log)

	// round implements §15.8.2.15's half-up rounding, which differs from
	// math.Round's half-away-from-zero for negative halves (Math.round(-0.5)
	// is -0, not -1).
	method(vm, m, "round", 1, func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		n := toNum(vm, arg(args, 0))
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return value.FromFloat64(n)
		}
		if math.Signbit(n) && n >= -0.5 {
			return value.FromFloat64(math.Copysign(0, -1))
		}
		return value.FromFloat64(math.Floor(n + 0.5))
	})

	method(vm, m, "max", 2, func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		if len(args) == 0 {
			return value.FromFloat64(negInf())
		}
		best := negInf()
		for _, a := range args {
			n := toNum(vm, a)
			if math.IsNaN(n) {
				return value.FromFloat64(nan())
			}
			if n > best || (n == 0 && best == 0 && !math.Signbit(n)) {
				best = n
			}
		}
		return value.FromFloat64(best)
	})

	method(vm, m, "min", 2, func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		if len(args) == 0 {
			return value.FromFloat64(posInf())
		}
		best := posInf()
		for _, a := range args {
			n := toNum(vm, a)
			if math.IsNaN(n) {
				return value.FromFloat64(nan())
			}
			if n < best || (n == 0 && best == 0 && math.Signbit(n)) {
				best = n
			}
		}
		return value.FromFloat64(best)
	})

	method(vm, m, "pow", 2, func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		base := toNum(vm, arg(args, 0))
		exp := toNum(vm, arg(args, 1))
		return value.FromFloat64(math.Pow(base, exp))
	})

	method(vm, m, "random", 0, func(vm *runtime.VM, this value.Value, args []value.Value) value.Value {
		return value.FromFloat64(rand.Float64())
	})

	return m
}
