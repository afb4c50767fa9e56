package heap

import (
	"testing"

	"github.com/cwbudde/go-es5/internal/value"
)

// fixedModel is a minimal ObjectModel for tests: every object is a single
// header word (identifying it) followed by a fixed number of child-pointer
// words.
type fixedModel struct {
	childWords int
}

func (m fixedModel) Size(data []byte, addr uint64) int {
	return wordSize * (1 + m.childWords)
}

func (m fixedModel) References(data []byte, addr uint64) []int {
	refs := make([]int, m.childWords)
	for i := range refs {
		refs[i] = 1 + i
	}
	return refs
}

func TestAllocateReturnsIncreasingWordAlignedOffsets(t *testing.T) {
	h := New(4096, func() []*value.Value { return nil })
	a := h.Allocate(3)
	b := h.Allocate(8)
	if a != 0 {
		t.Fatalf("expected the first allocation at offset 0, got %d", a)
	}
	if b != 8 {
		t.Fatalf("expected a 3-byte request to round up to 8, so the second allocation lands at 8; got %d", b)
	}
}

func TestWordReadWriteRoundTrip(t *testing.T) {
	h := New(4096, func() []*value.Value { return nil })
	addr := h.Allocate(16)
	h.WriteWord(addr, 0, 0xDEADBEEF)
	h.WriteValue(addr, 1, value.FromInt32(42))

	if got := h.ReadWord(addr, 0); got != 0xDEADBEEF {
		t.Fatalf("ReadWord = %#x, want 0xDEADBEEF", got)
	}
	v := h.ReadValue(addr, 1)
	if !value.IsInt(v) || value.Int32(v) != 42 {
		t.Fatalf("ReadValue round-trip failed: got %v", v)
	}
}

func TestCollectReclaimsUnreachableObjectsAndPreservesRoots(t *testing.T) {
	RegisterObjectModel(fixedModel{childWords: 1})
	h := New(4096, nil)

	live := h.Allocate(16) // header + 1 child slot, kept alive by a root
	garbage := h.Allocate(16)
	_ = garbage

	child := h.Allocate(16)
	h.WriteValue(live, 1, value.FromHeapAddr(child))

	root := value.FromHeapAddr(live)
	h.roots = func() []*value.Value { return []*value.Value{&root} }

	sizeBefore := h.Stats.LastLiveSize
	h.Collect()

	if h.Stats.Collections != 1 {
		t.Fatalf("expected Stats.Collections to be 1, got %d", h.Stats.Collections)
	}
	// Only `live` and `child` should have survived; `garbage` should not.
	wantLive := 2 * wordSize * 2
	if h.Stats.LastLiveSize != wantLive {
		t.Fatalf("expected %d live bytes after collection, got %d (was %d before)", wantLive, h.Stats.LastLiveSize, sizeBefore)
	}

	// The root must now point at the relocated copy, which must still
	// reference the relocated child.
	if !value.IsObjectPointer(root) {
		t.Fatalf("root was not rewritten to a valid object pointer")
	}
	newLive := value.HeapAddr(root)
	childRef := h.ReadValue(newLive, 1)
	if !value.IsObjectPointer(childRef) {
		t.Fatalf("the relocated object's child pointer was not preserved")
	}
}

func TestConstArenaDoesNotParticipateInCollection(t *testing.T) {
	RegisterObjectModel(fixedModel{childWords: 0})
	h := New(4096, func() []*value.Value { return nil })

	constAddr := h.Const.Allocate(8)
	h.Const.WriteWord(constAddr, 0, 123)

	constVal := value.FromConstAddr(constAddr)
	root := constVal
	h.roots = func() []*value.Value { return []*value.Value{&root} }

	h.Collect()

	if root != constVal {
		t.Fatalf("a const-arena root must never be rewritten by collection")
	}
	if got := h.Const.ReadWord(constAddr, 0); got != 123 {
		t.Fatalf("const arena data was disturbed by collection: got %d", got)
	}
}

func TestConstArenaGrowsPastInitialSize(t *testing.T) {
	c := newConstArena(8)
	a := c.Allocate(8)
	b := c.Allocate(64)
	c.WriteWord(a, 0, 1)
	c.WriteWord(b, 0, 2)
	if got := c.ReadWord(a, 0); got != 1 {
		t.Fatalf("data at the first allocation was lost when the arena grew: got %d", got)
	}
	if got := c.ReadWord(b, 0); got != 2 {
		t.Fatalf("ReadWord at grown offset = %d, want 2", got)
	}
}
