// Value-level abstract operations that need heap access (to compare or
// render String objects) but never need to call back into interpreted
// code. Operations that might invoke a user-defined valueOf/toString
// (ToPrimitive, and therefore the ToNumber/ToString overloads that accept
// objects) live in package runtime, which owns the VM able to make that
// call; see §4.4 and §9.
package types

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// IsStringValue reports whether v is a String heap object (interned or
// not).
func IsStringValue(h *heap.Heap, v value.Value) bool {
	return value.IsObjectPointer(v) && kindOf(h, v) == TypeString
}

func kindOf(h *heap.Heap, v value.Value) JSType {
	if value.IsConstAddr(v) {
		addr := value.ConstAddr(v)
		return unpackType(h.Const.ReadWord(addr, 0))
	}
	return Kind(h, value.HeapAddr(v))
}

// SameValue implements ES5.1 §9.12 SameValue: like strict equality except
// NaN equals itself and +0/-0 are distinguished.
func SameValue(h *heap.Heap, a, b value.Value) bool {
	if value.IsNumber(a) && value.IsNumber(b) {
		af, bf := value.NumberToFloat64(a), value.NumberToFloat64(b)
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		if af == 0 && bf == 0 {
			return math.Signbit(af) == math.Signbit(bf)
		}
		return af == bf
	}
	if IsStringValue(h, a) && IsStringValue(h, b) {
		return StringsEqual(h, a, b)
	}
	return a == b
}

// StrictEquals implements ES5.1 §11.9.6 ===.
func StrictEquals(h *heap.Heap, a, b value.Value) bool {
	if value.IsNumber(a) && value.IsNumber(b) {
		af, bf := value.NumberToFloat64(a), value.NumberToFloat64(b)
		return af == bf // NaN != NaN falls out of Go's == on float64
	}
	if IsStringValue(h, a) && IsStringValue(h, b) {
		return StringsEqual(h, a, b)
	}
	return a == b
}

// ToBoolean implements ES5.1 §9.2, for primitives and objects alike
// (every object converts to true).
func ToBoolean(h *heap.Heap, v value.Value) bool {
	switch {
	case value.IsUndefined(v), value.IsNull(v):
		return false
	case value.IsBoolean(v):
		return value.ToBool(v)
	case value.IsInt(v):
		return value.Int32(v) != 0
	case value.IsDouble(v):
		f := value.Float64(v)
		return f != 0 && !math.IsNaN(f)
	case IsStringValue(h, v):
		return StringLen(h, v) > 0
	default:
		return true // every remaining case is an object
	}
}

// TypeOf implements ES5.1 §11.4.3.
func TypeOf(h *heap.Heap, v value.Value) string {
	switch {
	case value.IsUndefined(v):
		return "undefined"
	case value.IsNull(v):
		return "object"
	case value.IsBoolean(v):
		return "boolean"
	case value.IsNumber(v):
		return "number"
	case IsStringValue(h, v):
		return "string"
	case IsObject(h, v):
		if IsCallable(h, v) {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

// NumberToString implements ES5.1 §9.8.1's core formatting (the shortest
// decimal string that round-trips), used both directly and by the
// runtime's heap-aware ToString once an operand is known to be numeric.
func NumberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// Exponent form, with the exponent's leading zeros dropped ("1e-7",
	// not Go's "1e-07").
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// ParseNumericLiteral implements the numeric half of ES5.1 §9.3.1
// ToNumber Applied to the String Type: decimal, hex (0x/0X), leading and
// trailing whitespace, and the empty string (-> 0). Returns NaN for
// anything that doesn't parse, matching the abstract operation's
// contract of always returning a number.
func ParseNumericLiteral(s string) float64 {
	t := trimJSWhitespace(s)
	if t == "" {
		return 0
	}
	if len(t) > 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
		n, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	if t == "Infinity" || t == "+Infinity" {
		return math.Inf(1)
	}
	if t == "-Infinity" {
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func trimJSWhitespace(s string) string {
	start, end := 0, len(s)
	isWS := func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
	}
	for start < end && isWS(s[start]) {
		start++
	}
	for end > start && isWS(s[end-1]) {
		end--
	}
	return s[start:end]
}
