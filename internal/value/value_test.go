package value

import (
	"math"
	"testing"
)

func TestSingletonTagsAreDistinctAndSelfIdentifying(t *testing.T) {
	singletons := []struct {
		name string
		v    Value
	}{
		{"Undefined", Undefined},
		{"Null", Null},
		{"Hole", Hole},
		{"False", False},
		{"True", True},
		{"Exception", Exception},
	}
	for i, a := range singletons {
		for j, b := range singletons {
			if i != j && a.v == b.v {
				t.Fatalf("%s and %s collide: both %#x", a.name, b.name, uint64(a.v))
			}
		}
	}
	if !IsUndefined(Undefined) || !IsNull(Null) || !IsHole(Hole) || !IsException(Exception) {
		t.Fatalf("a singleton failed its own predicate")
	}
	if !IsTrue(True) || IsFalse(True) || !IsFalse(False) || IsTrue(False) {
		t.Fatalf("boolean singleton predicates disagree with their own value")
	}
	if !IsBoolean(True) || !IsBoolean(False) || IsBoolean(Null) {
		t.Fatalf("IsBoolean misclassified a value")
	}
}

func TestIntRoundTrip(t *testing.T) {
	for _, i := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 42} {
		v := FromInt32(i)
		if !IsInt(v) {
			t.Fatalf("FromInt32(%d) not recognized as an int", i)
		}
		if IsHeapObject(v) {
			t.Fatalf("FromInt32(%d) misclassified as a heap object", i)
		}
		if got := Int32(v); got != i {
			t.Fatalf("Int32(FromInt32(%d)) = %d", i, got)
		}
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	for _, f := range []float64{0.5, -0.5, math.Pi, 1e300, -1e300} {
		v := FromFloat64(f)
		if !IsDouble(v) {
			t.Fatalf("FromFloat64(%v) not recognized as a double", f)
		}
		if got := Float64(v); got != f {
			t.Fatalf("Float64(FromFloat64(%v)) = %v", f, got)
		}
	}

	nan := FromFloat64(math.NaN())
	if !IsDouble(nan) {
		t.Fatalf("a boxed NaN must still read back as a double, not collide with a singleton tag")
	}
	if !math.IsNaN(Float64(nan)) {
		t.Fatalf("boxed NaN did not round-trip as NaN")
	}
}

func TestNumberValueChoosesIntFastPathForWholeNumbers(t *testing.T) {
	v := NumberValue(42)
	if !IsInt(v) {
		t.Fatalf("NumberValue(42) should use the int32 fast path")
	}
	if Int32(v) != 42 {
		t.Fatalf("NumberValue(42) round-tripped to %d", Int32(v))
	}

	v = NumberValue(3.5)
	if !IsDouble(v) {
		t.Fatalf("NumberValue(3.5) should use the double encoding")
	}

	// Negative zero must not take the int fast path: the int32 encoding
	// cannot preserve its sign.
	negZero := NumberValue(math.Copysign(0, -1))
	if !IsDouble(negZero) {
		t.Fatalf("NumberValue(-0) should fall back to the double encoding")
	}
	if !math.Signbit(Float64(negZero)) {
		t.Fatalf("NumberValue(-0) lost its sign")
	}
}

func TestNumberToFloat64HandlesBothEncodings(t *testing.T) {
	if got := NumberToFloat64(FromInt32(7)); got != 7 {
		t.Fatalf("NumberToFloat64(int 7) = %v", got)
	}
	if got := NumberToFloat64(FromFloat64(2.5)); got != 2.5 {
		t.Fatalf("NumberToFloat64(double 2.5) = %v", got)
	}
}

func TestHeapAddrRoundTrip(t *testing.T) {
	addr := uint64(0x1234)
	v := FromHeapAddr(addr)
	if !IsHeapObject(v) {
		t.Fatalf("FromHeapAddr did not produce a heap-shaped value")
	}
	if !IsObjectPointer(v) {
		t.Fatalf("FromHeapAddr(0x1234) should be an object pointer, not a singleton")
	}
	if got := HeapAddr(v); got != addr {
		t.Fatalf("HeapAddr round-trip: expected %#x, got %#x", addr, got)
	}
	if IsConstAddr(v) {
		t.Fatalf("an ordinary heap pointer must not read back as a const-arena pointer")
	}
}

func TestConstAddrRoundTrip(t *testing.T) {
	addr := uint64(99)
	v := FromConstAddr(addr)
	if !IsConstAddr(v) {
		t.Fatalf("FromConstAddr did not set the const-arena bit")
	}
	if got := ConstAddr(v); got != addr {
		t.Fatalf("ConstAddr round-trip: expected %d, got %d", addr, got)
	}
}

func TestSameValueZero(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"equal ints", FromInt32(1), FromInt32(1), true},
		{"int vs equal double", FromInt32(1), FromFloat64(1.0), true},
		{"different numbers", FromInt32(1), FromInt32(2), false},
		{"NaN equals NaN", FromFloat64(math.NaN()), FromFloat64(math.NaN()), true},
		{"null is not undefined", Null, Undefined, false},
		{"same singleton", True, True, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameValueZero(tt.a, tt.b); got != tt.expected {
				t.Errorf("SameValueZero(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestFromBoolAndToBool(t *testing.T) {
	if FromBool(true) != True || FromBool(false) != False {
		t.Fatalf("FromBool did not map to the boolean singletons")
	}
	if !ToBool(True) || ToBool(False) {
		t.Fatalf("ToBool disagreed with its own singletons")
	}
}
