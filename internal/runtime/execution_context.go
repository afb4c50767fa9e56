// Execution contexts, ES5.1 §10.3.
package runtime

import "github.com/cwbudde/go-es5/internal/value"

// ExecutionContext is the per-invocation state §10.3 describes:
// the running code's variable and lexical environments, its ThisBinding,
// and whether it is strict code.
type ExecutionContext struct {
	LexEnv      *LexicalEnvironment
	VarEnv      *LexicalEnvironment
	ThisBinding value.Value
	Strict      bool

	// LabelSet is not read or written by the evaluator: package interp
	// passes the labels wrapping a loop or switch (§12.12) to it as an
	// argument instead.
	LabelSet []string
}

// PushContext enters a new execution context (function call, eval, or at
// startup the global context) by appending to the VM's context stack.
func (vm *VM) PushContext(ctx *ExecutionContext) { vm.contexts = append(vm.contexts, ctx) }

// PopContext leaves the most recently pushed execution context.
func (vm *VM) PopContext() { vm.contexts = vm.contexts[:len(vm.contexts)-1] }

// CurrentContext returns the running execution context, §10.3's
// "the execution context that is currently on the top of the execution
// context stack" — nil before any context has been pushed.
func (vm *VM) CurrentContext() *ExecutionContext {
	if len(vm.contexts) == 0 {
		return nil
	}
	return vm.contexts[len(vm.contexts)-1]
}
