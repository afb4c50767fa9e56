package types

import (
	"strings"

	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// String objects are a length word followed by one Value per UTF-16 code
// unit (each code unit boxed with value.FromInt32, so the generic
// collector in package heap can scan every word uniformly without a
// String-specific case: a code unit never collides with a heap-pointer
// bit pattern because FromInt32 always sets the top 16 bits).
//
// A String may live in the collected heap (the result of concatenation,
// for example) or in the constant arena (interned property keys and
// literal text); NewString and NewConstString produce the two forms, and
// every other function in this file accepts either.
const stringLengthWord = 1

func stringWordCount(length int) int { return headerWords + 1 + length }

// NewString allocates a collected-heap string from s.
func NewString(h *heap.Heap, s string) value.Value {
	units := utf16Units(s)
	addr := h.Allocate(stringWordCount(len(units)) * 8)
	h.WriteWord(addr, 0, packHeader(TypeString, stringWordCount(len(units)), 0))
	h.WriteValue(addr, stringLengthWord, value.FromInt32(int32(len(units))))
	for i, u := range units {
		h.WriteValue(addr, headerWords+1+i, value.FromInt32(int32(u)))
	}
	return value.FromHeapAddr(addr)
}

// NewConstString allocates an interned string in the constant arena.
func NewConstString(h *heap.Heap, s string) value.Value {
	units := utf16Units(s)
	addr := h.Const.Allocate(stringWordCount(len(units)) * 8)
	h.Const.WriteWord(addr, 0, packHeader(TypeString, stringWordCount(len(units)), 0))
	h.Const.WriteWord(addr, stringLengthWord, uint64(value.FromInt32(int32(len(units)))))
	for i, u := range units {
		h.Const.WriteWord(addr, headerWords+1+i, uint64(value.FromInt32(int32(u))))
	}
	return value.FromConstAddr(addr)
}

// InstallStringInterning wires h's StringTable to allocate new entries in
// the constant arena, so that repeated occurrences of the same identifier
// or literal text share one allocation.
func InstallStringInterning(h *heap.Heap, table *heap.StringTable) {
	table.SetStringFactory(func(text string) value.Value {
		return NewConstString(h, text)
	})
}

// stringAccess abstracts over the two arenas a String may live in.
func stringReadWord(h *heap.Heap, v value.Value, index int) uint64 {
	if value.IsConstAddr(v) {
		return h.Const.ReadWord(value.ConstAddr(v), index)
	}
	return h.ReadWord(value.HeapAddr(v), index)
}

// StringLen returns the number of UTF-16 code units in the string v.
func StringLen(h *heap.Heap, v value.Value) int {
	lv := value.Value(stringReadWord(h, v, stringLengthWord))
	return int(value.Int32(lv))
}

// StringCharCodeAt returns the UTF-16 code unit at index i.
func StringCharCodeAt(h *heap.Heap, v value.Value, i int) uint16 {
	cv := value.Value(stringReadWord(h, v, headerWords+1+i))
	return uint16(value.Int32(cv))
}

// StringValue decodes a String heap object back into a Go string.
func StringValue(h *heap.Heap, v value.Value) string {
	n := StringLen(h, v)
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = StringCharCodeAt(h, v, i)
	}
	return utf16Decode(units)
}

// StringsEqual compares two String heap objects by content.
func StringsEqual(h *heap.Heap, a, b value.Value) bool {
	na, nb := StringLen(h, a), StringLen(h, b)
	if na != nb {
		return false
	}
	for i := 0; i < na; i++ {
		if StringCharCodeAt(h, a, i) != StringCharCodeAt(h, b, i) {
			return false
		}
	}
	return true
}

// utf16Units encodes a Go (UTF-8) string into UTF-16 code units, the wire
// format ES5.1 §1 defines for source text and string values.
func utf16Units(s string) []uint16 {
	var out []uint16
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		out = append(out, uint16(r))
	}
	return out
}

func utf16Decode(units []uint16) string {
	var sb strings.Builder
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) {
			u2 := units[i+1]
			if u2 >= 0xDC00 && u2 <= 0xDFFF {
				r := (rune(u-0xD800) << 10) + rune(u2-0xDC00) + 0x10000
				sb.WriteRune(r)
				i++
				continue
			}
		}
		sb.WriteRune(rune(u))
	}
	return sb.String()
}
