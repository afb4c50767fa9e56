package interp

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/value"
)

// traceVisit prints the node `es5 run --trace` is about to evaluate.
// Unlike a one-line "trace mode enabled" banner, each visited node gets
// its own line here, since this evaluator's dispatch points are a
// natural hook for per-node tracing.
func (in *Interpreter) traceVisit(kind string, n ast.Node) {
	if !in.Trace {
		return
	}
	pos := n.Pos()
	fmt.Fprintf(os.Stderr, "[trace] %d:%d %s %T\n", pos.Line, pos.Column, kind, n)
}

// traceResult prints a completion/expression result alongside the node
// that produced it.
func (in *Interpreter) traceResult(v value.Value) {
	if !in.Trace {
		return
	}
	fmt.Fprintf(os.Stderr, "[trace]   => %s\n", in.VM.ToDisplayString(v))
}
