// Package interp ties together package types' object model and package
// runtime's environments/VM into a tree-walking evaluator for the AST
// package parser produces. It is the only package that depends on all of
// value, heap, types, runtime, ast, lexer, and parser, since running a
// function body requires orchestrating every one of them at once.
package interp

import (
	"fmt"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/parser"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/value"
)

// Interpreter owns one VM and its bootstrapped global environment. A
// fresh Interpreter corresponds to one ES5.1 program, §5.
type Interpreter struct {
	VM *runtime.VM

	// Trace, when set, makes evalStatement and evalExpression print the
	// AST node they are about to visit (and the resulting value) to
	// stderr. Set by `es5 run --trace`.
	Trace bool
}

// New creates an Interpreter with a freshly bootstrapped global object
// (Object/Function/Array/String/Number/Boolean/Error family/Math, plus
// the `print` extension), ready to run top-level code.
func New() *Interpreter {
	vm := runtime.NewVM()
	interp := &Interpreter{VM: vm}
	vm.SetHooks(interp.callHook, interp.constructHook, interp.toObjectHook, interp.toPrimitiveHook, interp.toStringHook)
	bootstrapGlobals(vm)
	return interp
}

// ThrownError reports an uncaught ECMAScript exception, wrapping the
// thrown Value's display form so CLI callers can print it like any other
// error without reaching into the VM themselves.
type ThrownError struct {
	Value   value.Value
	Message string
}

func (e *ThrownError) Error() string { return e.Message }

// RunSource parses and evaluates source as a Program, returning the
// completion value of its last ExpressionStatement (§4.2.6's
// notion of a program's result, used by `es5 -e` and --dump-ast's
// companion run) or an error: a *errors.CompilerError on a syntax error,
// a *ThrownError on an uncaught exception.
func (in *Interpreter) RunSource(source, file string) (value.Value, error) {
	p := parser.New(source, file)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return value.Undefined, errs[0]
	}
	return in.RunProgram(program)
}

// RunProgram evaluates an already-parsed Program in the global
// environment, §4.5's global-code declaration binding instantiation
// followed by statement-by-statement execution.
func (in *Interpreter) RunProgram(program *ast.Program) (value.Value, error) {
	vm := in.VM
	env := runtime.NewLexicalEnvironment(runtime.NewObjectEnvironmentRecord(vm, vm.GlobalObject, false), nil)
	vm.GlobalEnv = env
	runtime.DeclarationBindingInstantiation(vm, env, nil, nil, program.Statements, in.makeFunctionHook(env), "", value.Undefined, false)

	ctx := &runtime.ExecutionContext{LexEnv: env, VarEnv: env, ThisBinding: vm.GlobalObject, Strict: program.Strict}
	vm.PushContext(ctx)
	defer vm.PopContext()

	var result value.Value = value.Undefined
	for _, stmt := range program.Statements {
		c := in.evalStatement(ctx, stmt)
		if c.Type == runtime.Throw {
			return value.Undefined, in.describeThrow(c.Value)
		}
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		if c.IsAbrupt() {
			break
		}
	}
	if vm.HasException() {
		exc := vm.Exception()
		vm.ClearException()
		return value.Undefined, in.describeThrow(exc)
	}
	return result, nil
}

func (in *Interpreter) describeThrow(v value.Value) error {
	msg := in.VM.ToDisplayString(v)
	return &ThrownError{Value: v, Message: fmt.Sprintf("uncaught exception: %s", msg)}
}
