// Package types implements the ES5.1 object model on top of package heap:
// the HeapObject header every heap allocation starts with, open-addressed
// HashMap/PropertyMap storage, property descriptors, and the concrete
// object kinds (Object, Array, String, Boolean, Number, Function, Error,
// Arguments, the global object) together with their internal methods
// ([[Get]], [[Put]], [[DefineOwnProperty]], [[Call]], [[Construct]], ...).
//
// # Heap layout
//
// Every heap object is a flat run of 8-byte words. Word 0 is a packed
// header (see packHeader); every word after it holds a value.Value, be it
// a child pointer, an embedded primitive, or an interned string address.
// This uniform shape is what lets the collector in package heap trace and
// size every object generically: Size decodes the header's word count,
// References returns every word after the header. It trades the bit-exact
// memory layout of the engine this model was adapted from for one Go can
// express without unsafe pointer arithmetic, while keeping the same
// two-space-copying discipline.
package types

import (
	"encoding/binary"

	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

// JSType tags the kind of a heap object, occupying bits 32..39 of the
// header word.
type JSType uint8

const (
	TypeObject JSType = iota
	TypeArray
	TypeFunction
	TypeNativeFunction
	TypeString
	TypeBoolean
	TypeNumber
	TypeError
	TypeArguments
	TypePropertyMap
	TypeDescriptor
	TypeEnvironmentRecord
)

// Header flag bits, occupying bits 40..47 of the header word.
const (
	flagExtensible uint64 = 1 << (40 + iota)
	flagCallable
	flagIsConstructor
	flagStrict
	flagWritable
	flagEnumerable
	flagConfigurable
	flagIsAccessor
)

const headerWords = 1

// packHeader builds the header word for an object of the given type,
// total size in words (header included), and flag bits.
func packHeader(t JSType, wordCount int, flags uint64) uint64 {
	return uint64(uint32(wordCount)) | uint64(t)<<32 | flags
}

func unpackWordCount(h uint64) int  { return int(uint32(h)) }
func unpackType(h uint64) JSType    { return JSType(h >> 32 & 0xFF) }
func hasFlag(h uint64, f uint64) bool { return h&f != 0 }

func readHeaderRaw(data []byte, addr uint64) uint64 {
	return binary.LittleEndian.Uint64(data[addr : addr+8])
}

// Model implements heap.ObjectModel generically: every object is sized
// entirely from its header, and every non-header word is a potential child
// reference.
type objectModel struct{}

// Model is the heap.ObjectModel registered for this package's layout.
var Model heap.ObjectModel = objectModel{}

func (objectModel) Size(data []byte, addr uint64) int {
	return unpackWordCount(readHeaderRaw(data, addr)) * 8
}

func (objectModel) References(data []byte, addr uint64) []int {
	n := unpackWordCount(readHeaderRaw(data, addr))
	refs := make([]int, 0, n-headerWords)
	for i := headerWords; i < n; i++ {
		refs = append(refs, i)
	}
	return refs
}

func init() {
	heap.RegisterObjectModel(Model)
}

// header returns the raw header word for addr, read through the live heap.
func header(h *heap.Heap, addr uint64) uint64 {
	return h.ReadWord(addr, 0)
}

// Kind reports the JSType of the object at addr.
func Kind(h *heap.Heap, addr uint64) JSType {
	return unpackType(header(h, addr))
}

func setFlag(h *heap.Heap, addr uint64, flag uint64, on bool) {
	hdr := header(h, addr)
	if on {
		hdr |= flag
	} else {
		hdr &^= flag
	}
	h.WriteWord(addr, 0, hdr)
}

func flag(h *heap.Heap, addr uint64, f uint64) bool {
	return hasFlag(header(h, addr), f)
}

// allocWords allocates an object of wordCount words (header included),
// writes its header, and returns the object's Value.
func allocWords(h *heap.Heap, t JSType, wordCount int, flags uint64) value.Value {
	addr := h.Allocate(wordCount * 8)
	h.WriteWord(addr, 0, packHeader(t, wordCount, flags))
	return value.FromHeapAddr(addr)
}
