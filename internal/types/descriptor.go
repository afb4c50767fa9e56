package types

import (
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// Two heap-resident descriptor kinds back every property map entry.
// DataDescriptor: word1 = value, flags carry Writable/Enumerable/
// Configurable. AccessorDescriptor: word1 = getter, word2 = setter, flags
// carry Enumerable/Configurable. A generic descriptor is never stored:
// viewToStoredDescriptor turns one into a data descriptor.
const (
	descValueWord  = 1
	descGetterWord = 1
	descSetterWord = 2
)

func newDataDescriptor(h *heap.Heap, val value.Value, writable, enumerable, configurable bool) value.Value {
	flags := attrFlags(writable, enumerable, configurable)
	addr := h.Allocate((headerWords + 1) * 8)
	h.WriteWord(addr, 0, packHeader(TypeDescriptor, headerWords+1, flags))
	h.WriteValue(addr, descValueWord, val)
	return value.FromHeapAddr(addr)
}

func newAccessorDescriptor(h *heap.Heap, getter, setter value.Value, enumerable, configurable bool) value.Value {
	flags := flagIsAccessor | attrFlags(false, enumerable, configurable)
	addr := h.Allocate((headerWords + 2) * 8)
	h.WriteWord(addr, 0, packHeader(TypeDescriptor, headerWords+2, flags))
	h.WriteValue(addr, descGetterWord, getter)
	h.WriteValue(addr, descSetterWord, setter)
	return value.FromHeapAddr(addr)
}

func attrFlags(writable, enumerable, configurable bool) uint64 {
	var f uint64
	if writable {
		f |= flagWritable
	}
	if enumerable {
		f |= flagEnumerable
	}
	if configurable {
		f |= flagConfigurable
	}
	return f
}

func descIsAccessor(h *heap.Heap, d value.Value) bool {
	return flag(h, value.HeapAddr(d), flagIsAccessor)
}

func descWritable(h *heap.Heap, d value.Value) bool     { return flag(h, value.HeapAddr(d), flagWritable) }
func descEnumerable(h *heap.Heap, d value.Value) bool   { return flag(h, value.HeapAddr(d), flagEnumerable) }
func descConfigurable(h *heap.Heap, d value.Value) bool { return flag(h, value.HeapAddr(d), flagConfigurable) }

func descDataValue(h *heap.Heap, d value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(d), descValueWord)
}

func descSetDataValue(h *heap.Heap, d value.Value, v value.Value) {
	h.WriteValue(value.HeapAddr(d), descValueWord, v)
}

func descGetter(h *heap.Heap, d value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(d), descGetterWord)
}

func descSetter(h *heap.Heap, d value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(d), descSetterWord)
}

func descSetWritable(h *heap.Heap, d value.Value, w bool) {
	setFlag(h, value.HeapAddr(d), flagWritable, w)
}

func descSetEnumerable(h *heap.Heap, d value.Value, e bool) {
	setFlag(h, value.HeapAddr(d), flagEnumerable, e)
}

func descSetConfigurable(h *heap.Heap, d value.Value, c bool) {
	setFlag(h, value.HeapAddr(d), flagConfigurable, c)
}

// PropertyDescriptor is the transient, value-typed negotiation record
// §3.5 / §4.2.5 describes: a view with presence bits used only while
// reading or proposing changes to a stored descriptor. Absent fields are
// represented with the HasX booleans; the zero PropertyDescriptor has
// nothing present.
type PropertyDescriptor struct {
	HasValue bool
	Value    value.Value

	HasGetter bool
	Getter    value.Value
	HasSetter bool
	Setter    value.Value

	HasWritable bool
	Writable    bool
	HasEnumerable bool
	Enumerable    bool
	HasConfigurable bool
	Configurable    bool
}

// IsDataDescriptor reports whether Desc describes (or partially
// describes) a data property, per ES5.1 §8.10.2.
func (d PropertyDescriptor) IsDataDescriptor() bool {
	return d.HasValue || d.HasWritable
}

// IsAccessorDescriptor reports whether Desc describes (or partially
// describes) an accessor property, per ES5.1 §8.10.1.
func (d PropertyDescriptor) IsAccessorDescriptor() bool {
	return d.HasGetter || d.HasSetter
}

// IsGenericDescriptor reports whether Desc is neither a data nor an
// accessor descriptor, per ES5.1 §8.10.3.
func (d PropertyDescriptor) IsGenericDescriptor() bool {
	return !d.IsDataDescriptor() && !d.IsAccessorDescriptor()
}

// IsEmpty reports whether every field of Desc is absent (ES5.1 §8.10.5
// step "if every field ... is absent").
func (d PropertyDescriptor) IsEmpty() bool {
	return !d.HasValue && !d.HasGetter && !d.HasSetter &&
		!d.HasWritable && !d.HasEnumerable && !d.HasConfigurable
}

// DataDescriptor builds a fully present PropertyDescriptor view for a
// plain data property with the given attributes, handy for installing
// builtins.
func DataDescriptor(v value.Value, writable, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		HasValue: true, Value: v,
		HasWritable: true, Writable: writable,
		HasEnumerable: true, Enumerable: enumerable,
		HasConfigurable: true, Configurable: configurable,
	}
}

// AccessorDescriptorView builds a PropertyDescriptor view for an accessor
// property.
func AccessorDescriptorView(getter, setter value.Value, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		HasGetter: true, Getter: getter,
		HasSetter: true, Setter: setter,
		HasEnumerable: true, Enumerable: enumerable,
		HasConfigurable: true, Configurable: configurable,
	}
}

// descriptorToView materialises the stored heap descriptor d into a fully
// present PropertyDescriptor view (ES5.1 §8.10.4 FromPropertyDescriptor's
// inverse, used by [[GetOwnProperty]]).
func descriptorToView(h *heap.Heap, d value.Value) PropertyDescriptor {
	if descIsAccessor(h, d) {
		return PropertyDescriptor{
			HasGetter: true, Getter: descGetter(h, d),
			HasSetter: true, Setter: descSetter(h, d),
			HasEnumerable: true, Enumerable: descEnumerable(h, d),
			HasConfigurable: true, Configurable: descConfigurable(h, d),
		}
	}
	return PropertyDescriptor{
		HasValue: true, Value: descDataValue(h, d),
		HasWritable: true, Writable: descWritable(h, d),
		HasEnumerable: true, Enumerable: descEnumerable(h, d),
		HasConfigurable: true, Configurable: descConfigurable(h, d),
	}
}

// viewToStoredDescriptor allocates a new heap descriptor from a fully (or
// mostly) present view, defaulting absent attribute fields to false and
// absent accessor fields to Undefined, per ES5.1 §8.12.9 step 4.
func viewToStoredDescriptor(h *heap.Heap, d PropertyDescriptor) value.Value {
	enumerable := d.HasEnumerable && d.Enumerable
	configurable := d.HasConfigurable && d.Configurable
	if d.IsAccessorDescriptor() {
		getter, setter := value.Undefined, value.Undefined
		if d.HasGetter {
			getter = d.Getter
		}
		if d.HasSetter {
			setter = d.Setter
		}
		return newAccessorDescriptor(h, getter, setter, enumerable, configurable)
	}
	val := value.Undefined
	if d.HasValue {
		val = d.Value
	}
	writable := d.HasWritable && d.Writable
	return newDataDescriptor(h, val, writable, enumerable, configurable)
}
