package types

import (
	"testing"

	"github.com/cwbudde/go-es5/internal/heap"
	"github.com/cwbudde/go-es5/internal/value"
)

func newTestHeap() *heap.Heap {
	return heap.New(heap.DefaultSemispaceSize, func() []*value.Value { return nil })
}

func TestPropertyDescriptorClassification(t *testing.T) {
	if got := DataDescriptor(value.FromInt32(1), true, true, true); !got.IsDataDescriptor() || got.IsAccessorDescriptor() {
		t.Fatalf("DataDescriptor should classify as a data descriptor only")
	}
	if got := AccessorDescriptorView(value.Undefined, value.Undefined, true, true); !got.IsAccessorDescriptor() || got.IsDataDescriptor() {
		t.Fatalf("AccessorDescriptorView should classify as an accessor descriptor only")
	}
	if empty := (PropertyDescriptor{}); !empty.IsEmpty() || !empty.IsGenericDescriptor() {
		t.Fatalf("the zero PropertyDescriptor must be empty and generic")
	}
	partial := PropertyDescriptor{HasEnumerable: true, Enumerable: true}
	if partial.IsEmpty() {
		t.Fatalf("a descriptor with one present field must not be empty")
	}
	if !partial.IsGenericDescriptor() {
		t.Fatalf("a descriptor with only enumerable set is generic, per 8.10.3")
	}
}

func TestDataDescriptorRoundTripsThroughTheHeap(t *testing.T) {
	h := newTestHeap()
	view := DataDescriptor(value.FromInt32(7), true, false, true)

	stored := viewToStoredDescriptor(h, view)
	got := descriptorToView(h, stored)

	if got.Value != value.FromInt32(7) {
		t.Fatalf("expected stored value 7, got %v", got.Value)
	}
	if !got.Writable || got.Enumerable || !got.Configurable {
		t.Fatalf("attribute flags did not survive the round trip: %+v", got)
	}
}

func TestAccessorDescriptorRoundTripsThroughTheHeap(t *testing.T) {
	h := newTestHeap()
	getter := value.FromInt32(1)
	setter := value.FromInt32(2)
	view := AccessorDescriptorView(getter, setter, true, false)

	stored := viewToStoredDescriptor(h, view)
	if !descIsAccessor(h, stored) {
		t.Fatalf("expected the stored descriptor to be flagged as an accessor")
	}

	got := descriptorToView(h, stored)
	if got.Getter != getter || got.Setter != setter {
		t.Fatalf("getter/setter did not survive the round trip: %+v", got)
	}
	if !got.Enumerable || got.Configurable {
		t.Fatalf("attribute flags did not survive the round trip: %+v", got)
	}
}

func TestViewToStoredDescriptorDefaultsAbsentAttributesToFalse(t *testing.T) {
	h := newTestHeap()
	// A descriptor with only HasValue set omits Writable/Enumerable/
	// Configurable, which §8.12.9 step 4 defaults to false.
	stored := viewToStoredDescriptor(h, PropertyDescriptor{HasValue: true, Value: value.FromInt32(5)})
	if descWritable(h, stored) || descEnumerable(h, stored) || descConfigurable(h, stored) {
		t.Fatalf("absent attributes should default to false")
	}
}
