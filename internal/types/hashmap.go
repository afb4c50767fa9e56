// HashMap is the open-addressed table backing both PropertyMap (string
// key -> property descriptor) and the general-purpose key/value storage
// §3.3 describes. Probing is triangular, load factor is capped at
// 0.7, and capacity is always a power of two, per §3.3 / §8.
package types

import (
	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

const (
	hashMapCapacityWord = 1
	hashMapDefaultCap   = 8
	hashMapLoadFactor   = 0.7
)

func hashMapWordCount(capacity int) int { return headerWords + 1 + 2*capacity }

// NewHashMap allocates an empty HashMap with the given initial capacity
// (rounded up to a power of two, minimum hashMapDefaultCap).
func NewHashMap(h *heap.Heap, capacityHint int) value.Value {
	capacity := hashMapDefaultCap
	for capacity < capacityHint {
		capacity *= 2
	}
	addr := h.Allocate(hashMapWordCount(capacity) * 8)
	h.WriteWord(addr, 0, packHeader(TypePropertyMap, hashMapWordCount(capacity), 0))
	h.WriteValue(addr, hashMapCapacityWord, value.FromInt32(int32(capacity)))
	for i := 0; i < capacity; i++ {
		h.WriteValue(addr, headerWords+1+2*i, value.Hole)
	}
	return value.FromHeapAddr(addr)
}

func hashMapCapacity(h *heap.Heap, m value.Value) int {
	addr := value.HeapAddr(m)
	return int(value.Int32(h.ReadValue(addr, hashMapCapacityWord)))
}

func hashMapSlotKey(h *heap.Heap, m value.Value, i int) value.Value {
	return h.ReadValue(value.HeapAddr(m), headerWords+1+2*i)
}

func hashMapSlotValue(h *heap.Heap, m value.Value, i int) value.Value {
	return h.ReadValue(value.HeapAddr(m), headerWords+1+2*i+1)
}

func hashMapSetSlot(h *heap.Heap, m value.Value, i int, key, val value.Value) {
	addr := value.HeapAddr(m)
	h.WriteValue(addr, headerWords+1+2*i, key)
	h.WriteValue(addr, headerWords+1+2*i+1, val)
}

// hashKeyString computes an FNV-ish hash over a String's UTF-16 code
// units, per §3.3.
func hashKeyString(h *heap.Heap, key value.Value) uint32 {
	var hash uint32 = 2166136261
	n := StringLen(h, key)
	for i := 0; i < n; i++ {
		hash ^= uint32(StringCharCodeAt(h, key, i))
		hash *= 16777619
	}
	return hash
}

// probe returns the slot index for the i-th step of the triangular probe
// sequence into a table of the given capacity (a power of two).
func probe(hash uint32, i, capacity int) int {
	return int((uint64(hash) + uint64(i)*uint64(i+1)/2)) & (capacity - 1)
}

// HashMapFind returns the value stored under key, or (Hole, false) if
// absent.
func HashMapFind(h *heap.Heap, m value.Value, key value.Value) (value.Value, bool) {
	capacity := hashMapCapacity(h, m)
	hash := hashKeyString(h, key)
	for i := 0; i < capacity; i++ {
		slot := probe(hash, i, capacity)
		k := hashMapSlotKey(h, m, slot)
		if value.IsHole(k) {
			return value.Hole, false
		}
		if StringsEqual(h, k, key) {
			return hashMapSlotValue(h, m, slot), true
		}
	}
	return value.Hole, false
}

// HashMapInsert stores val under key, growing (and rehashing into a fresh
// table of double the capacity) first if the load factor would exceed
// hashMapLoadFactor. Returns the table the entry now lives in: callers
// must store this back into whatever field referenced the old table,
// since growth allocates a new HashMap object.
func HashMapInsert(h *heap.Heap, m value.Value, key, val value.Value) value.Value {
	capacity := hashMapCapacity(h, m)
	count := hashMapCount(h, m)
	if float64(count+1) > hashMapLoadFactor*float64(capacity) {
		m = hashMapGrow(h, m, capacity*2)
		capacity = hashMapCapacity(h, m)
	}
	hash := hashKeyString(h, key)
	for i := 0; i < capacity; i++ {
		slot := probe(hash, i, capacity)
		k := hashMapSlotKey(h, m, slot)
		if value.IsHole(k) || StringsEqual(h, k, key) {
			hashMapSetSlot(h, m, slot, key, val)
			return m
		}
	}
	// Capacity exhausted despite the load-factor check (a pathological
	// clustering); force a grow and retry once.
	m = hashMapGrow(h, m, capacity*2)
	return HashMapInsert(h, m, key, val)
}

// HashMapDelete removes key's entry, if present. Unlike a textbook
// open-addressed table this does not need tombstones: it rebuilds the
// whole table at the same capacity without the deleted key, which keeps
// Find's probe-until-Hole termination correct without extra per-slot
// state.
func HashMapDelete(h *heap.Heap, m value.Value, key value.Value) value.Value {
	capacity := hashMapCapacity(h, m)
	return hashMapRebuildExcluding(h, m, capacity, key)
}

func hashMapCount(h *heap.Heap, m value.Value) int {
	capacity := hashMapCapacity(h, m)
	n := 0
	for i := 0; i < capacity; i++ {
		if !value.IsHole(hashMapSlotKey(h, m, i)) {
			n++
		}
	}
	return n
}

func hashMapGrow(h *heap.Heap, m value.Value, newCapacity int) value.Value {
	return hashMapRebuildExcluding(h, m, newCapacity, value.Hole)
}

// hashMapRebuildExcluding builds a fresh table of newCapacity, copying
// every entry of m except one whose key equals exclude (when exclude is
// not Hole). Used by both growth (exclude = Hole, i.e. exclude nothing)
// and deletion (exclude = the deleted key).
func hashMapRebuildExcluding(h *heap.Heap, m value.Value, newCapacity int, exclude value.Value) value.Value {
	old := m
	oldCapacity := hashMapCapacity(h, old)
	fresh := NewHashMap(h, newCapacity)
	for i := 0; i < oldCapacity; i++ {
		k := hashMapSlotKey(h, old, i)
		if value.IsHole(k) {
			continue
		}
		if !value.IsHole(exclude) && StringsEqual(h, k, exclude) {
			continue
		}
		v := hashMapSlotValue(h, old, i)
		fresh = hashMapInsertNoGrow(h, fresh, k, v)
	}
	return fresh
}

// hashMapInsertNoGrow inserts into a table already known to have room,
// used while rebuilding so rebuild itself never recurses into growth.
func hashMapInsertNoGrow(h *heap.Heap, m value.Value, key, val value.Value) value.Value {
	capacity := hashMapCapacity(h, m)
	hash := hashKeyString(h, key)
	for i := 0; i < capacity; i++ {
		slot := probe(hash, i, capacity)
		k := hashMapSlotKey(h, m, slot)
		if value.IsHole(k) {
			hashMapSetSlot(h, m, slot, key, val)
			return m
		}
	}
	panic("types: hash map rebuild exceeded capacity")
}

// HashMapKeys returns every key currently stored, in table-slot order
// (§3.3 notes ES5.1 does not require deterministic for...in order).
func HashMapKeys(h *heap.Heap, m value.Value) []value.Value {
	capacity := hashMapCapacity(h, m)
	var keys []value.Value
	for i := 0; i < capacity; i++ {
		if k := hashMapSlotKey(h, m, i); !value.IsHole(k) {
			keys = append(keys, k)
		}
	}
	return keys
}
