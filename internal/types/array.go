package types

import (
	"math"

	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// NewArray allocates an empty JSArray with the given prototype and an own
// "length" data property initialised to 0, writable, non-enumerable,
// non-configurable, per ES5.1 §15.4.5.2.
func NewArray(h *heap.Heap, table *heap.StringTable, prototype value.Value) value.Value {
	pm := NewHashMap(h, 4)
	arr := NewObjectOfClass(h, ClassArray, pm, prototype)
	PutOwnDataProperty(h, table, arr, "length", value.FromInt32(0), true, false, false)
	return arr
}

// ArrayLength reads the array's own "length" property as a uint32.
func ArrayLength(h *heap.Heap, table *heap.StringTable, arr value.Value) uint32 {
	key := intern(table, "length")
	d, _ := GetOwnDescriptor(h, arr, key)
	return toUint32Primitive(h, descDataValue(h, d))
}

// setArrayLengthValue overwrites the stored length value without running
// the full [[DefineOwnProperty]] negotiation; used internally once a
// length change has already been validated.
func setArrayLengthValue(h *heap.Heap, table *heap.StringTable, arr value.Value, n uint32, writable bool) {
	key := intern(table, "length")
	desc := newDataDescriptor(h, value.FromInt32(int32(n)), writable, false, false)
	putOwnDescriptor(h, arr, key, desc)
}

// toUint32Primitive converts a primitive Value (never an object) to
// uint32 per ES5.1 §9.6, used for the array-length fast path where the
// operand is already known to be a number.
func toUint32Primitive(h *heap.Heap, v value.Value) uint32 {
	return value.ToUint32(toNumberPrimitive(h, v))
}

func toNumberPrimitive(h *heap.Heap, v value.Value) float64 {
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
	case IsStringValue(h, v):
		return ParseNumericLiteral(StringValue(h, v))
	default:
		return math.NaN()
	}
}

// defineOwnPropertyArray implements the JSArray override of
// [[DefineOwnProperty]], §4.2.5 "JSArray override".
func defineOwnPropertyArray(h *heap.Heap, table *heap.StringTable, arr value.Value, name value.Value, desc PropertyDescriptor, throwFlag bool, call Getter, setCall Setter) bool {
	lengthKey := intern(table, "length")

	if StringsEqual(h, name, lengthKey) {
		if !desc.HasValue {
			return defineOwnPropertyGeneric(h, table, arr, name, desc, throwFlag)
		}
		newLen := toUint32Primitive(h, desc.Value)
		if float64(newLen) != toNumberPrimitive(h, desc.Value) {
			return reject(throwFlag) // an ordinary rejection: no RangeError is raised for it
		}
		oldLenDesc, _ := GetOwnDescriptor(h, arr, lengthKey)
		oldLen := toUint32Primitive(h, descDataValue(h, oldLenDesc))
		oldWritable := descWritable(h, oldLenDesc)

		lenDesc := desc
		if newLen >= oldLen {
			lenDesc.Value = value.FromInt32(int32(newLen))
			return defineOwnPropertyGeneric(h, table, arr, lengthKey, lenDesc, throwFlag)
		}
		if !oldWritable {
			return reject(throwFlag)
		}
		newWritable := true
		if lenDesc.HasWritable && !lenDesc.Writable {
			newWritable = false
		}
		lenDesc.HasWritable, lenDesc.Writable = true, true
		lenDesc.Value = value.FromInt32(int32(newLen))
		if !defineOwnPropertyGeneric(h, table, arr, lengthKey, lenDesc, throwFlag) {
			return false
		}
		for newLen < oldLen {
			oldLen--
			idxKey := intern(table, uintToDecimal(oldLen))
			if !DeleteProperty(h, arr, idxKey, false) {
				setArrayLengthValue(h, table, arr, oldLen+1, newWritable)
				return reject(throwFlag)
			}
		}
		if !newWritable {
			setArrayLengthValue(h, table, arr, newLen, false)
		}
		return true
	}

	if idx, ok := value.IsArrayIndex(nameToGoString(h, name)); ok {
		oldLenDesc, _ := GetOwnDescriptor(h, arr, lengthKey)
		oldLen := toUint32Primitive(h, descDataValue(h, oldLenDesc))
		if uint32(idx) >= oldLen && !descWritable(h, oldLenDesc) {
			return reject(throwFlag)
		}
		if !defineOwnPropertyGeneric(h, table, arr, name, desc, throwFlag) {
			return false
		}
		if uint32(idx) >= oldLen {
			setArrayLengthValue(h, table, arr, idx+1, descWritable(h, oldLenDesc))
		}
		return true
	}

	return defineOwnPropertyGeneric(h, table, arr, name, desc, throwFlag)
}

func uintToDecimal(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
