// Statement evaluation, ES5.1 §12.
package interp

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/cwbudde/go-es5/internal/types"
	"github.com/cwbudde/go-es5/internal/value"
)

// evalStatements folds a StatementList per §12.1: each statement's Normal
// completion value carries forward as the running result so the last
// non-empty value survives an intervening EmptyStatement or
// declaration, and an abrupt completion short-circuits the rest of the
// list, propagating its own value instead.
func (in *Interpreter) evalStatements(ctx *runtime.ExecutionContext, stmts []ast.Statement) runtime.Completion {
	var result value.Value = value.Undefined
	for _, stmt := range stmts {
		c := in.evalStatement(ctx, stmt)
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		if c.IsAbrupt() {
			return runtime.Completion{Type: c.Type, Value: result, Target: c.Target}
		}
		if in.bail() {
			exc := in.VM.Exception()
			in.VM.ClearException()
			return runtime.Completion{Type: runtime.Throw, Value: exc}
		}
	}
	return runtime.NormalCompletion(result)
}

// evalStatement evaluates a single statement to a Completion, tracing it
// (when in.Trace is set) around the dispatch in evalStatementDispatch.
func (in *Interpreter) evalStatement(ctx *runtime.ExecutionContext, stmt ast.Statement) runtime.Completion {
	in.traceVisit("statement", stmt)
	c := in.evalStatementDispatch(ctx, stmt)
	in.traceResult(c.Value)
	return c
}

// evalStatementDispatch is the statement-kind switch itself. Every
// caller must check HasException() has not already converted the
// pending exception slot into a Throw completion for sub-evaluations
// that only return a value.Value (expressions); this function does that
// conversion itself after every expression it evaluates directly.
func (in *Interpreter) evalStatementDispatch(ctx *runtime.ExecutionContext, stmt ast.Statement) runtime.Completion {
	vm := in.VM

	switch s := stmt.(type) {
	case *ast.EmptyStatement:
		return runtime.NormalCompletion(value.Undefined)

	case *ast.DebuggerStatement:
		return runtime.NormalCompletion(value.Undefined)

	case *ast.ExpressionStatement:
		v := in.evalExpression(ctx, s.Expression)
		if in.bail() {
			return in.throwCompletion()
		}
		return runtime.NormalCompletion(v)

	case *ast.VarStatement:
		for _, decl := range s.Declarations {
			if decl.Init == nil {
				continue
			}
			v := in.evalExpression(ctx, decl.Init)
			if in.bail() {
				return in.throwCompletion()
			}
			ref := runtime.GetIdentifierReference(vm, ctx.LexEnv, decl.Name.Name, ctx.Strict)
			runtime.PutValue(vm, ref, v)
			if in.bail() {
				return in.throwCompletion()
			}
		}
		return runtime.NormalCompletion(value.Undefined)

	case *ast.BlockStatement:
		return in.evalStatements(ctx, s.Statements)

	case *ast.IfStatement:
		test := in.evalExpression(ctx, s.Test)
		if in.bail() {
			return in.throwCompletion()
		}
		if types.ToBoolean(vm.Heap, test) {
			return in.evalStatement(ctx, s.Consequent)
		}
		if s.Alternate != nil {
			return in.evalStatement(ctx, s.Alternate)
		}
		return runtime.NormalCompletion(value.Undefined)

	case *ast.WhileStatement:
		return in.evalWhileStatement(ctx, s, "")

	case *ast.DoWhileStatement:
		return in.evalDoWhileStatement(ctx, s, "")

	case *ast.ForStatement:
		return in.evalForStatement(ctx, s, "")

	case *ast.ForInStatement:
		return in.evalForInStatement(ctx, s, "")

	case *ast.ReturnStatement:
		var v value.Value = value.Undefined
		if s.Argument != nil {
			v = in.evalExpression(ctx, s.Argument)
			if in.bail() {
				return in.throwCompletion()
			}
		}
		return runtime.Completion{Type: runtime.Return, Value: v}

	case *ast.BreakStatement:
		target := ""
		if s.Label != nil {
			target = s.Label.Name
		}
		return runtime.Completion{Type: runtime.Break, Value: value.Undefined, Target: target}

	case *ast.ContinueStatement:
		target := ""
		if s.Label != nil {
			target = s.Label.Name
		}
		return runtime.Completion{Type: runtime.Continue, Value: value.Undefined, Target: target}

	case *ast.ThrowStatement:
		v := in.evalExpression(ctx, s.Argument)
		if in.bail() {
			return in.throwCompletion()
		}
		return runtime.Completion{Type: runtime.Throw, Value: v}

	case *ast.TryStatement:
		return in.evalTryStatement(ctx, s)

	case *ast.SwitchStatement:
		return in.evalSwitchStatement(ctx, s, "")

	case *ast.WithStatement:
		return in.evalWithStatement(ctx, s)

	case *ast.LabeledStatement:
		return in.evalLabeledStatement(ctx, s)

	case *ast.FunctionLiteral:
		// Function declarations are hoisted by DeclarationBindingInstantiation
		// (§4.5); encountering one here as a plain statement is a no-op.
		return runtime.NormalCompletion(value.Undefined)

	default:
		vm.ThrowSyntaxError("unsupported statement")
		return in.throwCompletion()
	}
}

// throwCompletion converts the VM's pending-exception slot into a Throw
// completion, clearing the slot so the next statement starts clean.
func (in *Interpreter) throwCompletion() runtime.Completion {
	exc := in.VM.Exception()
	in.VM.ClearException()
	return runtime.Completion{Type: runtime.Throw, Value: exc}
}

// matchesLabel reports whether an unlabelled (target=="") or
// label-matching Break/Continue completion applies to a loop/switch
// carrying label (the label immediately wrapping it, "" if unlabelled).
func matchesLabel(target, label string) bool {
	return target == "" || target == label
}

func (in *Interpreter) evalWhileStatement(ctx *runtime.ExecutionContext, s *ast.WhileStatement, label string) runtime.Completion {
	vm := in.VM
	var result value.Value = value.Undefined
	for {
		test := in.evalExpression(ctx, s.Test)
		if in.bail() {
			return in.throwCompletion()
		}
		if !types.ToBoolean(vm.Heap, test) {
			break
		}
		c := in.evalStatement(ctx, s.Body)
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		switch c.Type {
		case runtime.Break:
			if matchesLabel(c.Target, label) {
				return runtime.NormalCompletion(result)
			}
			return runtime.Completion{Type: runtime.Break, Value: result, Target: c.Target}
		case runtime.Continue:
			if matchesLabel(c.Target, label) {
				continue
			}
			return runtime.Completion{Type: runtime.Continue, Value: result, Target: c.Target}
		case runtime.Return, runtime.Throw:
			return c
		}
	}
	return runtime.NormalCompletion(result)
}

func (in *Interpreter) evalDoWhileStatement(ctx *runtime.ExecutionContext, s *ast.DoWhileStatement, label string) runtime.Completion {
	vm := in.VM
	var result value.Value = value.Undefined
	for {
		c := in.evalStatement(ctx, s.Body)
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		switch c.Type {
		case runtime.Break:
			if matchesLabel(c.Target, label) {
				return runtime.NormalCompletion(result)
			}
			return runtime.Completion{Type: runtime.Break, Value: result, Target: c.Target}
		case runtime.Continue:
			if !matchesLabel(c.Target, label) {
				return runtime.Completion{Type: runtime.Continue, Value: result, Target: c.Target}
			}
		case runtime.Return, runtime.Throw:
			return c
		}
		test := in.evalExpression(ctx, s.Test)
		if in.bail() {
			return in.throwCompletion()
		}
		if !types.ToBoolean(vm.Heap, test) {
			break
		}
	}
	return runtime.NormalCompletion(result)
}

func (in *Interpreter) evalForStatement(ctx *runtime.ExecutionContext, s *ast.ForStatement, label string) runtime.Completion {
	vm := in.VM

	switch init := s.Init.(type) {
	case *ast.VarStatement:
		c := in.evalStatement(ctx, init)
		if c.IsAbrupt() {
			return c
		}
	case ast.Expression:
		in.evalExpression(ctx, init)
		if in.bail() {
			return in.throwCompletion()
		}
	}

	var result value.Value = value.Undefined
	for {
		if s.Test != nil {
			test := in.evalExpression(ctx, s.Test)
			if in.bail() {
				return in.throwCompletion()
			}
			if !types.ToBoolean(vm.Heap, test) {
				break
			}
		}
		c := in.evalStatement(ctx, s.Body)
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		switch c.Type {
		case runtime.Break:
			if matchesLabel(c.Target, label) {
				return runtime.NormalCompletion(result)
			}
			return runtime.Completion{Type: runtime.Break, Value: result, Target: c.Target}
		case runtime.Continue:
			if !matchesLabel(c.Target, label) {
				return runtime.Completion{Type: runtime.Continue, Value: result, Target: c.Target}
			}
		case runtime.Return, runtime.Throw:
			return c
		}
		if s.Update != nil {
			in.evalExpression(ctx, s.Update)
			if in.bail() {
				return in.throwCompletion()
			}
		}
	}
	return runtime.NormalCompletion(result)
}

// evalForInStatement implements §12.6.4: enumerate the right-hand
// object's own and inherited enumerable string keys, each own key
// visited at most once and a key later shadowed by a deletion skipped,
// which this evaluator approximates by snapshotting names per prototype
// level before the loop body runs (a body that mutates the object mid
// iteration sees the ES5.1-permitted "implementation defined" behavior
// rather than a hard guarantee).
func (in *Interpreter) evalForInStatement(ctx *runtime.ExecutionContext, s *ast.ForInStatement, label string) runtime.Completion {
	vm, h := in.VM, in.VM.Heap

	obj := in.evalExpression(ctx, s.Object)
	if in.bail() {
		return in.throwCompletion()
	}
	if value.IsUndefined(obj) || value.IsNull(obj) {
		return runtime.NormalCompletion(value.Undefined)
	}
	target := vm.ToObject(obj)
	if in.bail() {
		return in.throwCompletion()
	}

	// Every own name (enumerable or not) at each prototype level is
	// recorded in seen before the next level is consulted, so a closer
	// non-enumerable own property shadows a same-named enumerable one
	// further up the chain instead of letting it leak into the result.
	seen := make(map[string]bool)
	var names []string
	for cur := target; types.IsObject(h, cur); cur = types.Prototype(h, cur) {
		for _, key := range types.OwnPropertyNames(h, cur) {
			name := vm.ToDisplayString(key)
			if seen[name] {
				continue
			}
			seen[name] = true
			if d, ok := types.GetOwnProperty(h, vm.Strings, cur, key); ok && d.Enumerable {
				names = append(names, name)
			}
		}
	}

	assign := func(name string) runtime.Completion {
		v := types.NewString(h, name)
		switch left := s.Left.(type) {
		case *ast.VarStatement:
			ref := runtime.GetIdentifierReference(vm, ctx.LexEnv, left.Declarations[0].Name.Name, ctx.Strict)
			runtime.PutValue(vm, ref, v)
		case ast.Expression:
			ref := in.evalReference(ctx, left)
			if in.bail() {
				return in.throwCompletion()
			}
			runtime.PutValue(vm, ref, v)
		}
		if in.bail() {
			return in.throwCompletion()
		}
		return runtime.NormalCompletion(value.Undefined)
	}

	var result value.Value = value.Undefined
	for _, name := range names {
		if c := assign(name); c.IsAbrupt() {
			return c
		}
		c := in.evalStatement(ctx, s.Body)
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		switch c.Type {
		case runtime.Break:
			if matchesLabel(c.Target, label) {
				return runtime.NormalCompletion(result)
			}
			return runtime.Completion{Type: runtime.Break, Value: result, Target: c.Target}
		case runtime.Continue:
			if !matchesLabel(c.Target, label) {
				return runtime.Completion{Type: runtime.Continue, Value: result, Target: c.Target}
			}
		case runtime.Return, runtime.Throw:
			return c
		}
	}
	return runtime.NormalCompletion(result)
}

// evalTryStatement implements §12.14, including the rule that a Finally
// block's own abrupt completion supersedes whatever the Try/Catch
// portion produced.
func (in *Interpreter) evalTryStatement(ctx *runtime.ExecutionContext, s *ast.TryStatement) runtime.Completion {
	c := in.evalStatement(ctx, s.Block)

	if c.Type == runtime.Throw && s.Catch != nil {
		catchEnv := runtime.NewDeclarativeEnvironment(ctx.LexEnv)
		rec := catchEnv.Record.(*runtime.DeclarativeEnvironmentRecord)
		rec.CreateMutableBinding(s.Catch.Param.Name, false)
		rec.SetMutableBinding(in.VM, s.Catch.Param.Name, c.Value, false)

		catchCtx := &runtime.ExecutionContext{LexEnv: catchEnv, VarEnv: ctx.VarEnv, ThisBinding: ctx.ThisBinding, Strict: ctx.Strict}
		c = in.evalStatement(catchCtx, s.Catch.Body)
	}

	if s.Finally != nil {
		fc := in.evalStatement(ctx, s.Finally)
		if fc.IsAbrupt() {
			return fc
		}
	}
	return c
}

// evalSwitchStatement implements §12.11: cases are tested top to bottom
// with strict equality against the discriminant, execution falls
// through from a matching case into subsequent cases regardless of
// their own tests, and a default clause (Test == nil) runs only if no
// case matched, resuming from its position in source order.
func (in *Interpreter) evalSwitchStatement(ctx *runtime.ExecutionContext, s *ast.SwitchStatement, label string) runtime.Completion {
	h := in.VM.Heap

	disc := in.evalExpression(ctx, s.Discriminant)
	if in.bail() {
		return in.throwCompletion()
	}

	matchIdx := -1
	for i, cc := range s.Cases {
		if cc.Test == nil {
			continue
		}
		test := in.evalExpression(ctx, cc.Test)
		if in.bail() {
			return in.throwCompletion()
		}
		if types.StrictEquals(h, disc, test) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		for i, cc := range s.Cases {
			if cc.Test == nil {
				matchIdx = i
				break
			}
		}
	}
	if matchIdx == -1 {
		return runtime.NormalCompletion(value.Undefined)
	}

	var result value.Value = value.Undefined
	for _, cc := range s.Cases[matchIdx:] {
		c := in.evalStatements(ctx, cc.Consequent)
		if !value.IsUndefined(c.Value) {
			result = c.Value
		}
		if c.Type == runtime.Break && matchesLabel(c.Target, label) {
			return runtime.NormalCompletion(result)
		}
		if c.IsAbrupt() {
			return runtime.Completion{Type: c.Type, Value: result, Target: c.Target}
		}
	}
	return runtime.NormalCompletion(result)
}

// evalWithStatement implements §12.10.
func (in *Interpreter) evalWithStatement(ctx *runtime.ExecutionContext, s *ast.WithStatement) runtime.Completion {
	obj := in.evalExpression(ctx, s.Object)
	if in.bail() {
		return in.throwCompletion()
	}
	target := in.VM.ToObject(obj)
	if in.bail() {
		return in.throwCompletion()
	}
	withEnv := runtime.NewObjectEnvironment(in.VM, target, ctx.LexEnv, true)
	withCtx := &runtime.ExecutionContext{LexEnv: withEnv, VarEnv: ctx.VarEnv, ThisBinding: ctx.ThisBinding, Strict: ctx.Strict}
	return in.evalStatement(withCtx, s.Body)
}

// evalLabeledStatement implements §12.12: an iteration statement or
// switch immediately inside a label set absorbs matching Break/Continue
// completions directly (so `continue` can target an outer loop through
// its label); any other labelled statement only absorbs a matching
// Break.
func (in *Interpreter) evalLabeledStatement(ctx *runtime.ExecutionContext, s *ast.LabeledStatement) runtime.Completion {
	label := s.Label.Name

	var c runtime.Completion
	switch body := s.Body.(type) {
	case *ast.WhileStatement:
		c = in.evalWhileStatement(ctx, body, label)
	case *ast.DoWhileStatement:
		c = in.evalDoWhileStatement(ctx, body, label)
	case *ast.ForStatement:
		c = in.evalForStatement(ctx, body, label)
	case *ast.ForInStatement:
		c = in.evalForInStatement(ctx, body, label)
	case *ast.SwitchStatement:
		c = in.evalSwitchStatement(ctx, body, label)
	case *ast.LabeledStatement:
		c = in.evalLabeledStatement(ctx, body)
	default:
		c = in.evalStatement(ctx, s.Body)
	}

	if c.Type == runtime.Break && matchesLabel(c.Target, label) {
		return runtime.NormalCompletion(c.Value)
	}
	return c
}
