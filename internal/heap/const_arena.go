package heap

import "encoding/binary"

// ConstArena is a bump-only allocator for data that lives for the whole
// run of the program and is never moved or collected: interned strings
// and literal constants baked in by the parser/evaluator. Keeping these
// out of the copying spaces avoids repeatedly re-copying immutable data
// on every collection.
type ConstArena struct {
	data  []byte
	alloc int
}

func newConstArena(size int) *ConstArena {
	return &ConstArena{data: make([]byte, size)}
}

// Allocate reserves size bytes (word-aligned) in the constant arena and
// returns their offset. When the arena is full it grows into a larger
// backing slice (earlier offsets stay valid); it never shrinks or collects.
func (c *ConstArena) Allocate(size int) uint64 {
	size = align(size)
	if c.alloc+size > len(c.data) {
		grown := make([]byte, len(c.data)*2+size)
		copy(grown, c.data[:c.alloc])
		c.data = grown
	}
	addr := c.alloc
	c.alloc += size
	return uint64(addr)
}

// Bytes returns the byte slice backing addr, of length n.
func (c *ConstArena) Bytes(addr uint64, n int) []byte {
	return c.data[addr : addr+uint64(n)]
}

// ReadWord and WriteWord mirror Heap's word accessors for const-arena
// objects (string headers, etc.).
func (c *ConstArena) ReadWord(addr uint64, index int) uint64 {
	off := addr + uint64(index*wordSize)
	return binary.LittleEndian.Uint64(c.data[off : off+wordSize])
}

func (c *ConstArena) WriteWord(addr uint64, index int, w uint64) {
	off := addr + uint64(index*wordSize)
	binary.LittleEndian.PutUint64(c.data[off:off+wordSize], w)
}
