package heap

import "github.com/cwbudde/go-es5/internal/value"

// StringTable interns strings so that every occurrence of the same text —
// property keys above all — shares one heap allocation and one Value, and
// so that property lookups can compare keys by address instead of byte
// content.
type StringTable struct {
	entries map[string]value.Value
	// makeString allocates a fresh string object for text and returns its
	// Value; wired up by package types at startup via SetStringFactory,
	// since heap does not know the string object's layout.
	makeString func(text string) value.Value
}

// NewStringTable creates an empty intern table.
func NewStringTable() *StringTable {
	return &StringTable{entries: make(map[string]value.Value)}
}

// SetStringFactory installs the constructor used to allocate a new interned
// string the first time its text is seen.
func (t *StringTable) SetStringFactory(f func(text string) value.Value) {
	t.makeString = f
}

// Intern returns the shared Value for text, allocating it on first use.
func (t *StringTable) Intern(text string) value.Value {
	if v, ok := t.entries[text]; ok {
		return v
	}
	v := t.makeString(text)
	t.entries[text] = v
	return v
}
