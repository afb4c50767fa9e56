package types

import (
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// ObjectClass is ES5.1's internal [[Class]] string, stored as an
// 8-bit tag (ES5.1 §3.2).
type ObjectClass uint8

const (
	ClassObject ObjectClass = iota
	ClassGlobalObject
	ClassArguments
	ClassArray
	ClassBoolean
	ClassError
	ClassFunction
	ClassMath
	ClassNumber
	ClassString
)

func (c ObjectClass) String() string {
	switch c {
	case ClassGlobalObject:
		return "global"
	case ClassArguments:
		return "Arguments"
	case ClassArray:
		return "Array"
	case ClassBoolean:
		return "Boolean"
	case ClassError:
		return "Error"
	case ClassFunction:
		return "Function"
	case ClassMath:
		return "Math"
	case ClassNumber:
		return "Number"
	case ClassString:
		return "String"
	default:
		return "Object"
	}
}

// ErrorSubtype is the native Error subclass, §3.2.
type ErrorSubtype uint8

const (
	ErrorPlain ErrorSubtype = iota
	ErrorEval
	ErrorRange
	ErrorReference
	ErrorSyntax
	ErrorType
	ErrorURI
)

func (e ErrorSubtype) String() string {
	switch e {
	case ErrorEval:
		return "EvalError"
	case ErrorRange:
		return "RangeError"
	case ErrorReference:
		return "ReferenceError"
	case ErrorSyntax:
		return "SyntaxError"
	case ErrorType:
		return "TypeError"
	case ErrorURI:
		return "URIError"
	default:
		return "Error"
	}
}

// Every Object-class heap value (plain objects, arrays, wrappers,
// functions, errors, Arguments, the global object) shares one fixed
// 7-word layout (header plus six fields); [[Class]] in word1 selects which of the trailing fields
// are meaningful, matching §9's "common prefix, no virtual dispatch
// beyond a tag switch" design note.
const (
	objClassWord     = 1 // FromInt32(class<<8 | errorSubtype)
	objPropertiesWord = 2
	objPrototypeWord  = 3
	objPrimitiveWord  = 4 // [[PrimitiveValue]] for Boolean/Number/String wrappers
	objFuncIndexWord  = 5 // FromInt32(code): code>=0 -> interpreted fn table, code<0 -> ^code into native table
	objScopeWord      = 6 // captured LexicalEnvironment, for JSFunction only
	objWordCount      = headerWords + 6
)

const noFuncIndex = 0x7FFFFFFF

func packClassWord(class ObjectClass, subtype ErrorSubtype) value.Value {
	return value.FromInt32(int32(class) | int32(subtype)<<8)
}

func unpackClass(v value.Value) (ObjectClass, ErrorSubtype) {
	n := value.Int32(v)
	return ObjectClass(n & 0xFF), ErrorSubtype((n >> 8) & 0xFF)
}

// NewObject allocates a plain object with the given property map and
// prototype (Null for none).
func NewObject(h *heap.Heap, properties, prototype value.Value) value.Value {
	return newObjectWith(h, ClassObject, properties, prototype, value.Undefined, false, false, noFuncIndex, value.Undefined, ErrorPlain)
}

// NewObjectOfClass allocates an object tagged with class, everything else
// as NewObject.
func NewObjectOfClass(h *heap.Heap, class ObjectClass, properties, prototype value.Value) value.Value {
	return newObjectWith(h, class, properties, prototype, value.Undefined, false, false, noFuncIndex, value.Undefined, ErrorPlain)
}

// NewWrapperObject allocates a Boolean/Number/String wrapper object
// holding primitive as its [[PrimitiveValue]].
func NewWrapperObject(h *heap.Heap, class ObjectClass, properties, prototype, primitive value.Value) value.Value {
	return newObjectWith(h, class, properties, prototype, primitive, false, false, noFuncIndex, value.Undefined, ErrorPlain)
}

// NewErrorObject allocates an Error (or native subtype) object.
func NewErrorObject(h *heap.Heap, subtype ErrorSubtype, properties, prototype value.Value) value.Value {
	return newObjectWith(h, ClassError, properties, prototype, value.Undefined, false, false, noFuncIndex, value.Undefined, subtype)
}

// NewFunctionObject allocates a callable object. funcIndex selects an
// entry in the interpreted-function table (see package runtime) when
// native is false, or the native-function table when native is true;
// scope is the captured LexicalEnvironment (Undefined for native
// functions, which close over Go state instead).
func NewFunctionObject(h *heap.Heap, properties, prototype value.Value, funcIndex int, native bool, scope value.Value, isConstructor bool) value.Value {
	idx := int32(funcIndex)
	if native {
		idx = ^idx
	}
	v := newObjectWith(h, ClassFunction, properties, prototype, value.Undefined, true, isConstructor, int(idx), scope, ErrorPlain)
	return v
}

func newObjectWith(h *heap.Heap, class ObjectClass, properties, prototype, primitive value.Value, callable, constructor bool, funcIndex int, scope value.Value, subtype ErrorSubtype) value.Value {
	flags := flagExtensible
	if callable {
		flags |= flagCallable
	}
	if constructor {
		flags |= flagIsConstructor
	}
	addr := h.Allocate(objWordCount * 8)
	h.WriteWord(addr, 0, packHeader(TypeObject, objWordCount, flags))
	h.WriteValue(addr, objClassWord, packClassWord(class, subtype))
	h.WriteValue(addr, objPropertiesWord, properties)
	h.WriteValue(addr, objPrototypeWord, prototype)
	h.WriteValue(addr, objPrimitiveWord, primitive)
	h.WriteValue(addr, objFuncIndexWord, value.FromInt32(int32(funcIndex)))
	h.WriteValue(addr, objScopeWord, scope)
	return value.FromHeapAddr(addr)
}

// IsObject reports whether v is a heap object of TypeObject (every
// language-level object subclass).
func IsObject(h *heap.Heap, v value.Value) bool {
	return value.IsObjectPointer(v) && !value.IsConstAddr(v) && Kind(h, value.HeapAddr(v)) == TypeObject
}

// Class returns v's [[Class]].
func Class(h *heap.Heap, v value.Value) ObjectClass {
	c, _ := unpackClass(h.ReadValue(value.HeapAddr(v), objClassWord))
	return c
}

// ErrSubtype returns v's native error subtype (meaningful only when
// Class(v) == ClassError).
func ErrSubtype(h *heap.Heap, v value.Value) ErrorSubtype {
	_, s := unpackClass(h.ReadValue(value.HeapAddr(v), objClassWord))
	return s
}

// Properties returns v's property map.
func Properties(h *heap.Heap, v value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(v), objPropertiesWord)
}

func setProperties(h *heap.Heap, v value.Value, pm value.Value) {
	h.WriteValue(value.HeapAddr(v), objPropertiesWord, pm)
}

// Prototype returns v's [[Prototype]] (an Object, or value.Null).
func Prototype(h *heap.Heap, v value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(v), objPrototypeWord)
}

// SetPrototype overwrites v's [[Prototype]].
func SetPrototype(h *heap.Heap, v value.Value, proto value.Value) {
	h.WriteValue(value.HeapAddr(v), objPrototypeWord, proto)
}

// PrimitiveValue returns a wrapper object's [[PrimitiveValue]].
func PrimitiveValue(h *heap.Heap, v value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(v), objPrimitiveWord)
}

// IsExtensible reports v's [[Extensible]] internal property.
func IsExtensible(h *heap.Heap, v value.Value) bool {
	return flag(h, value.HeapAddr(v), flagExtensible)
}

// SetExtensible sets v's [[Extensible]] internal property.
func SetExtensible(h *heap.Heap, v value.Value, ext bool) {
	setFlag(h, value.HeapAddr(v), flagExtensible, ext)
}

// IsCallable reports whether v responds to [[Call]].
func IsCallable(h *heap.Heap, v value.Value) bool {
	return IsObject(h, v) && flag(h, value.HeapAddr(v), flagCallable)
}

// IsConstructor reports whether v responds to [[Construct]].
func IsConstructor(h *heap.Heap, v value.Value) bool {
	return IsObject(h, v) && flag(h, value.HeapAddr(v), flagIsConstructor)
}

// FunctionIndex decodes a callable object's function-table selector:
// idx >= 0 selects the interpreted-function table, native reports true
// and idx selects the native-function table otherwise.
func FunctionIndex(h *heap.Heap, v value.Value) (idx int, native bool) {
	raw := value.Int32(h.ReadValue(value.HeapAddr(v), objFuncIndexWord))
	if raw < 0 {
		return int(^raw), true
	}
	return int(raw), false
}

// FunctionScope returns a JSFunction's captured lexical environment.
func FunctionScope(h *heap.Heap, v value.Value) value.Value {
	return h.ReadValue(value.HeapAddr(v), objScopeWord)
}

// SetFunctionPrototypeProperty is a convenience used by declaration
// binding instantiation / the Function constructor to give a fresh
// function object its own writable, non-enumerable, non-configurable
// "prototype" property pointing at protoObj, per ES5.1 §13.2 step 16.
func SetFunctionPrototypeProperty(h *heap.Heap, table *heap.StringTable, fn, protoObj value.Value) {
	PutOwnDataProperty(h, table, fn, "prototype", protoObj, true, false, false)
}
