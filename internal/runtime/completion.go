// The Completion specification type, ES5.1 §8.9.
package runtime

import "github.com/cwbudde/go-es5/internal/value"

// CompletionType discriminates the five ways executing a statement (or a
// function body) can finish.
type CompletionType int

const (
	Normal CompletionType = iota
	Break
	Continue
	Return
	Throw
)

// Completion carries a completion type, an optional Value (the expression
// result for Normal/Return/Throw), and an optional label target for
// labelled Break/Continue, §4.6.
type Completion struct {
	Type   CompletionType
	Value  value.Value
	Target string // "" means an unlabelled break/continue
}

// NormalCompletion wraps a plain evaluation result.
func NormalCompletion(v value.Value) Completion { return Completion{Type: Normal, Value: v} }

// IsAbrupt reports whether control must unwind past the current
// statement, §8.9's "abrupt completion".
func (c Completion) IsAbrupt() bool { return c.Type != Normal }
