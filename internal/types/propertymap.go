// Property map access and the object model's internal-method protocol
// ([[Get]], [[Put]], [[HasProperty]], [[Delete]], [[GetOwnProperty]],
// [[DefineOwnProperty]]), §4.2.
package types

import (
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// GetOwnDescriptor looks up name directly in o's own property map and
// returns the stored descriptor heap Value and whether it was found.
func GetOwnDescriptor(h *heap.Heap, o value.Value, name value.Value) (value.Value, bool) {
	pm := Properties(h, o)
	return HashMapFind(h, pm, name)
}

// putOwnDescriptor installs or replaces name's entry in o's own property
// map, growing (and relocating) the map if necessary.
func putOwnDescriptor(h *heap.Heap, o value.Value, name, descriptor value.Value) {
	pm := Properties(h, o)
	pm = HashMapInsert(h, pm, name, descriptor)
	setProperties(h, o, pm)
}

func deleteOwnDescriptor(h *heap.Heap, o value.Value, name value.Value) {
	pm := Properties(h, o)
	pm = HashMapDelete(h, pm, name)
	setProperties(h, o, pm)
}

// intern is a small convenience over the string table, used throughout
// this package to turn a Go string property name into the interned Value
// the property map keys on.
func intern(table *heap.StringTable, name string) value.Value {
	return table.Intern(name)
}

// PutOwnDataProperty installs a data property directly, bypassing
// [[DefineOwnProperty]] negotiation; used by bootstrap code wiring
// built-in prototypes and constructors (ES5.1 §15's "has the following
// properties" tables are exactly this operation).
func PutOwnDataProperty(h *heap.Heap, table *heap.StringTable, o value.Value, name string, val value.Value, writable, enumerable, configurable bool) {
	key := intern(table, name)
	desc := newDataDescriptor(h, val, writable, enumerable, configurable)
	putOwnDescriptor(h, o, key, desc)
}

// PutOwnAccessorProperty installs an accessor property directly.
func PutOwnAccessorProperty(h *heap.Heap, table *heap.StringTable, o value.Value, name string, getter, setter value.Value, enumerable, configurable bool) {
	key := intern(table, name)
	desc := newAccessorDescriptor(h, getter, setter, enumerable, configurable)
	putOwnDescriptor(h, o, key, desc)
}

// GetOwnProperty implements ES5.1 §8.12.1 / §4.2.2: consult o's own
// property map, with JSString's synthesized numeric-index properties as
// the only override in scope here (Array elements are ordinary
// properties, handled entirely by the generic path).
func GetOwnProperty(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value) (PropertyDescriptor, bool) {
	if d, ok := GetOwnDescriptor(h, o, name); ok {
		return descriptorToView(h, d), true
	}
	if Class(h, o) == ClassString {
		if idx, ok := value.IsArrayIndex(nameToGoString(h, name)); ok {
			s := PrimitiveValue(h, o)
			if int(idx) < StringLen(h, s) {
				ch := StringCharCodeAt(h, s, int(idx))
				charVal := table.Intern(string(rune(ch)))
				return DataDescriptor(charVal, false, true, false), true
			}
		}
	}
	return PropertyDescriptor{}, false
}

func nameToGoString(h *heap.Heap, name value.Value) string {
	return StringValue(h, name)
}

// GetProperty walks the prototype chain, returning the first non-empty
// [[GetOwnProperty]] (ES5.1 §8.12.2 / §4.2.3).
func GetProperty(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value) (PropertyDescriptor, bool) {
	for cur := o; IsObject(h, cur); cur = Prototype(h, cur) {
		if d, ok := GetOwnProperty(h, table, cur, name); ok {
			return d, true
		}
	}
	return PropertyDescriptor{}, false
}

// HasProperty implements ES5.1 §8.12.6.
func HasProperty(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value) bool {
	_, ok := GetProperty(h, table, o, name)
	return ok
}

// Getter is implemented by whatever owns [[Call]] for accessor getters;
// the evaluator registers this hook (package runtime/interp both need to
// invoke interpreted or native getter functions, which this package
// cannot do without importing them back).
type Getter func(fn value.Value, this value.Value) value.Value

// Get implements ES5.1 §8.12.3 / §4.2.4. call is used to invoke an
// accessor's getter function; pass nil if o is known to hold no accessor
// properties (e.g. internal bookkeeping reads).
func Get(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value, call Getter) value.Value {
	d, ok := GetProperty(h, table, o, name)
	if !ok {
		return value.Undefined
	}
	if d.IsAccessorDescriptor() {
		if value.IsUndefined(d.Getter) || call == nil {
			return value.Undefined
		}
		return call(d.Getter, o)
	}
	return d.Value
}

// CanPut implements ES5.1 §8.12.4.
func CanPut(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value) bool {
	if d, ok := GetOwnProperty(h, table, o, name); ok {
		if d.IsAccessorDescriptor() {
			return !value.IsUndefined(d.Setter)
		}
		return d.Writable
	}
	proto := Prototype(h, o)
	if !IsObject(h, proto) {
		return IsExtensible(h, o)
	}
	if d, ok := GetProperty(h, table, proto, name); ok {
		if d.IsAccessorDescriptor() {
			return !value.IsUndefined(d.Setter)
		}
		if !IsExtensible(h, o) {
			return false
		}
		return d.Writable
	}
	return IsExtensible(h, o)
}

// Setter is the accessor-setter counterpart of Getter.
type Setter func(fn value.Value, this value.Value, arg value.Value)

// Put implements ES5.1 §8.12.5 / §4.2.4. On failure with throwFlag
// set, ok is false and the caller is expected to raise a TypeError
// through its own exception channel (this package has none of its own,
// see §7).
func Put(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value, val value.Value, throwFlag bool, call Getter, setCall Setter) bool {
	if !CanPut(h, table, o, name) {
		return !throwFlag
	}
	if d, ok := GetOwnProperty(h, table, o, name); ok && d.IsDataDescriptor() {
		return DefineOwnProperty(h, table, o, name, DataDescriptor(val, d.Writable, d.Enumerable, d.Configurable), throwFlag, call, setCall)
	}
	if d, ok := GetProperty(h, table, o, name); ok && d.IsAccessorDescriptor() {
		if setCall != nil {
			setCall(d.Setter, o, val)
		}
		return true
	}
	return DefineOwnProperty(h, table, o, name, DataDescriptor(val, true, true, true), throwFlag, call, setCall)
}

// DeleteProperty implements ES5.1 §8.12.7 / §4.2.4.
func DeleteProperty(h *heap.Heap, o value.Value, name value.Value, throwFlag bool) bool {
	d, ok := GetOwnDescriptor(h, o, name)
	if !ok {
		return true
	}
	if descConfigurable(h, d) {
		deleteOwnDescriptor(h, o, name)
		return true
	}
	return !throwFlag
}

// sameDescValue compares two values, getters or setters per ES5.1
// §8.12.9 step 6 with SameValue; descEquivalent compares the boolean
// attribute bits with ordinary equality.
func sameDescValue(h *heap.Heap, a, b value.Value) bool {
	return SameValue(h, a, b)
}

func descEquivalent(h *heap.Heap, current, desc PropertyDescriptor) bool {
	if desc.HasValue && (!current.HasValue || !sameDescValue(h, current.Value, desc.Value)) {
		return false
	}
	if desc.HasGetter && (!current.HasGetter || !sameDescValue(h, current.Getter, desc.Getter)) {
		return false
	}
	if desc.HasSetter && (!current.HasSetter || !sameDescValue(h, current.Setter, desc.Setter)) {
		return false
	}
	if desc.HasWritable && current.Writable != desc.Writable {
		return false
	}
	if desc.HasEnumerable && current.Enumerable != desc.Enumerable {
		return false
	}
	if desc.HasConfigurable && current.Configurable != desc.Configurable {
		return false
	}
	return true
}

// DefineOwnProperty implements the negotiation algorithm of ES5.1
// §8.12.9 / §4.2.5, the heart of the object model. JSArray's
// overrides (§4.2.5 "JSArray override") live in array.go and call
// through to this generic path via defineOwnPropertyGeneric.
func DefineOwnProperty(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value, desc PropertyDescriptor, throwFlag bool, call Getter, setCall Setter) bool {
	if Class(h, o) == ClassArray {
		return defineOwnPropertyArray(h, table, o, name, desc, throwFlag, call, setCall)
	}
	return defineOwnPropertyGeneric(h, table, o, name, desc, throwFlag)
}

func defineOwnPropertyGeneric(h *heap.Heap, table *heap.StringTable, o value.Value, name value.Value, desc PropertyDescriptor, throwFlag bool) bool {
	current, exists := GetOwnProperty(h, table, o, name)
	extensible := IsExtensible(h, o)

	if !exists {
		if !extensible {
			return reject(throwFlag)
		}
		stored := viewToStoredDescriptor(h, desc)
		putOwnDescriptor(h, o, intern(table, nameToGoString(h, name)), stored)
		return true
	}

	if desc.IsEmpty() {
		return true
	}

	if descEquivalent(h, current, desc) {
		return true
	}

	if !current.Configurable {
		if desc.HasConfigurable && desc.Configurable {
			return reject(throwFlag)
		}
		if desc.HasEnumerable && desc.Enumerable != current.Enumerable {
			return reject(throwFlag)
		}
		kindChanged := desc.IsDataDescriptor() != current.IsDataDescriptor() && !desc.IsGenericDescriptor()
		if kindChanged {
			return reject(throwFlag)
		}
		if current.IsDataDescriptor() {
			if !current.Writable {
				if desc.HasWritable && desc.Writable {
					return reject(throwFlag)
				}
				if desc.HasValue && !sameDescValue(h, current.Value, desc.Value) {
					return reject(throwFlag)
				}
			}
		} else {
			if desc.HasGetter && !sameDescValue(h, current.Getter, desc.Getter) {
				return reject(throwFlag)
			}
			if desc.HasSetter && !sameDescValue(h, current.Setter, desc.Setter) {
				return reject(throwFlag)
			}
		}
	}

	merged := mergeDescriptor(current, desc)
	stored := viewToStoredDescriptor(h, merged)
	putOwnDescriptor(h, o, intern(table, nameToGoString(h, name)), stored)
	return true
}

func reject(throwFlag bool) bool { return !throwFlag }

// mergeDescriptor implements ES5.1 §8.12.9 steps 8-9: if the descriptor
// kind changed (and was permitted to, i.e. current was configurable),
// replace wholesale, preserving Enumerable/Configurable and defaulting
// the new kind's fields; otherwise merge only the present fields of desc
// into current.
func mergeDescriptor(current, desc PropertyDescriptor) PropertyDescriptor {
	if desc.IsDataDescriptor() != current.IsDataDescriptor() && !desc.IsGenericDescriptor() {
		if desc.IsAccessorDescriptor() {
			return PropertyDescriptor{
				HasGetter: true, Getter: value.Undefined,
				HasSetter: true, Setter: value.Undefined,
				HasEnumerable: true, Enumerable: current.Enumerable,
				HasConfigurable: true, Configurable: current.Configurable,
			}
		}
		return PropertyDescriptor{
			HasValue: true, Value: value.Undefined,
			HasWritable: true, Writable: false,
			HasEnumerable: true, Enumerable: current.Enumerable,
			HasConfigurable: true, Configurable: current.Configurable,
		}
	}
	merged := current
	if desc.HasValue {
		merged.HasValue, merged.Value = true, desc.Value
	}
	if desc.HasWritable {
		merged.HasWritable, merged.Writable = true, desc.Writable
	}
	if desc.HasGetter {
		merged.HasGetter, merged.Getter = true, desc.Getter
	}
	if desc.HasSetter {
		merged.HasSetter, merged.Setter = true, desc.Setter
	}
	if desc.HasEnumerable {
		merged.HasEnumerable, merged.Enumerable = true, desc.Enumerable
	}
	if desc.HasConfigurable {
		merged.HasConfigurable, merged.Configurable = true, desc.Configurable
	}
	return merged
}

// OwnEnumerablePropertyNames returns the interned-string Values of o's own
// enumerable properties, used by for-in (which additionally walks the
// prototype chain and de-duplicates, see package interp) and by
// Object.keys.
func OwnEnumerablePropertyNames(h *heap.Heap, o value.Value) []value.Value {
	pm := Properties(h, o)
	var names []value.Value
	for _, key := range HashMapKeys(h, pm) {
		if d, ok := HashMapFind(h, pm, key); ok && descEnumerable(h, d) {
			names = append(names, key)
		}
	}
	return names
}

// OwnPropertyNames returns every own property name, enumerable or not.
func OwnPropertyNames(h *heap.Heap, o value.Value) []value.Value {
	return HashMapKeys(h, Properties(h, o))
}
