package heap

import "github.com/cwbudde/go-es5/internal/value"

// handleBlockSize is the number of Value slots per block in the handle
// storage's block list. Blocks are allocated lazily and never shrunk;
// HandleScope only ever rewinds the storage's high-water mark.
const handleBlockSize = 256

// Handle is an indirect, GC-safe reference to a value.Value: the slot it
// points at is itself a collector root, so the collector keeps the
// pointed-to object alive and updates the slot in place when the object
// moves. Code should carry a Handle, not a bare value.Value, across any
// call that might allocate.
type Handle struct {
	slot *value.Value
}

// Get dereferences the handle.
func (h Handle) Get() value.Value { return *h.slot }

// Set overwrites the value the handle points at.
func (h Handle) Set(v value.Value) { *h.slot = v }

// Storage owns the growable block list of handle slots and hands out
// Handles and HandleScopes over it. A Heap's roots callback is typically
// storage.Roots, so that every live handle is scanned as a GC root.
type Storage struct {
	blocks [][]value.Value
	// index of the active block, and the next free slot within it.
	blockIndex int
	pos        int
}

// NewStorage creates an empty handle storage.
func NewStorage() *Storage {
	return &Storage{blocks: [][]value.Value{make([]value.Value, handleBlockSize)}}
}

// NewHandle allocates a new slot holding v and returns a Handle to it.
func (s *Storage) NewHandle(v value.Value) Handle {
	if s.pos == handleBlockSize {
		s.blockIndex++
		s.pos = 0
		if s.blockIndex == len(s.blocks) {
			s.blocks = append(s.blocks, make([]value.Value, handleBlockSize))
		}
	}
	slot := &s.blocks[s.blockIndex][s.pos]
	*slot = v
	s.pos++
	return Handle{slot: slot}
}

// mark is a saved (blockIndex, pos) position, used by HandleScope to
// rewind storage on exit.
type mark struct {
	blockIndex int
	pos        int
}

func (s *Storage) save() mark { return mark{blockIndex: s.blockIndex, pos: s.pos} }

func (s *Storage) restore(m mark) {
	s.blockIndex = m.blockIndex
	s.pos = m.pos
}

// Roots returns every live handle slot, for use as a Heap's roots
// callback. Slots beyond the current (blockIndex, pos) high-water mark
// belong to scopes that have already closed and are excluded.
func (s *Storage) Roots() []*value.Value {
	var roots []*value.Value
	for i := 0; i < s.blockIndex; i++ {
		block := s.blocks[i]
		for j := range block {
			roots = append(roots, &block[j])
		}
	}
	block := s.blocks[s.blockIndex]
	for j := 0; j < s.pos; j++ {
		roots = append(roots, &block[j])
	}
	return roots
}

// HandleScope bounds the lifetime of the handles created within it. Open a
// scope before a region of code that allocates many short-lived handles
// (a builtin call, a loop body) and Close it on return so those slots can
// be reused; a handle whose value must outlive the scope should be
// re-allocated in the parent scope before closing.
type HandleScope struct {
	storage *Storage
	mark    mark
}

// NewHandleScope opens a scope over storage.
func NewHandleScope(storage *Storage) *HandleScope {
	return &HandleScope{storage: storage, mark: storage.save()}
}

// NewHandle allocates a handle within this scope.
func (hs *HandleScope) NewHandle(v value.Value) Handle {
	return hs.storage.NewHandle(v)
}

// Close rewinds storage to this scope's opening mark, discarding every
// handle allocated since. Call via defer immediately after NewHandleScope.
func (hs *HandleScope) Close() {
	hs.storage.restore(hs.mark)
}
