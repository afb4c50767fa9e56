// Declaration Binding Instantiation, ES5.1 §10.5 / §4.5: the pass
// that runs before a function body, eval body, or program starts
// executing, hoisting its parameters, function declarations, and `var`
// names into the variable environment.
package runtime

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/value"
)

// MakeFunctionHook builds the closure Value for a function declaration
// encountered during hoisting. Only package interp can implement it,
// since producing a Function object means choosing its "prototype"
// property and registering the capturing LexicalEnvironment.
type MakeFunctionHook func(lit *ast.FunctionLiteral) value.Value

// DeclarationBindingInstantiation implements §4.5. params and args
// are nil for program/eval code. argumentsName is "" unless an
// `arguments` object has already been created by the caller and needs
// binding (function code only); argumentsObject is its value in that
// case. configurableBindings is true for eval code (§10.5 step 2)
// and false for function and global code.
func DeclarationBindingInstantiation(
	vm *VM,
	env *LexicalEnvironment,
	params []*ast.Identifier,
	args []value.Value,
	body []ast.Statement,
	makeFunction MakeFunctionHook,
	argumentsName string,
	argumentsObject value.Value,
	configurableBindings bool,
) {
	rec := env.Record

	for i, p := range params {
		var v value.Value
		if i < len(args) {
			v = args[i]
		} else {
			v = value.Undefined
		}
		if !rec.HasBinding(p.Name) {
			rec.CreateMutableBinding(p.Name, configurableBindings)
		}
		rec.SetMutableBinding(vm, p.Name, v, false)
	}

	for _, lit := range collectFunctionDeclarations(body) {
		name := lit.Name.Name
		fn := makeFunction(lit)
		if !rec.HasBinding(name) {
			rec.CreateMutableBinding(name, configurableBindings)
		}
		rec.SetMutableBinding(vm, name, fn, false)
	}

	if argumentsName != "" && !rec.HasBinding(argumentsName) {
		rec.CreateMutableBinding(argumentsName, false)
		rec.SetMutableBinding(vm, argumentsName, argumentsObject, false)
	}

	for name := range collectVarNames(body) {
		if !rec.HasBinding(name) {
			rec.CreateMutableBinding(name, configurableBindings)
			rec.SetMutableBinding(vm, name, value.Undefined, false)
		}
	}
}

// collectFunctionDeclarations returns the function declarations directly
// in stmts, in source order, without descending into nested statements —
// ES5.1 hoisting applies only to a function or program body's top-level
// SourceElements (§4.5).
func collectFunctionDeclarations(stmts []ast.Statement) []*ast.FunctionLiteral {
	var out []*ast.FunctionLiteral
	for _, s := range stmts {
		if lit, ok := s.(*ast.FunctionLiteral); ok && lit.Declaration {
			out = append(out, lit)
		}
	}
	return out
}

// collectVarNames walks every statement form that can contain a nested
// VarStatement, returning the set of names `var` declares anywhere in the
// body (ES5.1 has no block scoping, so this recurses through blocks,
// loops, conditionals, try/catch/finally, switch, labelled, and with
// bodies).
func collectVarNames(stmts []ast.Statement) map[string]bool {
	names := make(map[string]bool)
	for _, s := range stmts {
		walkVarNames(s, names)
	}
	return names
}

func walkVarNames(s ast.Statement, names map[string]bool) {
	switch st := s.(type) {
	case *ast.VarStatement:
		for _, d := range st.Declarations {
			names[d.Name.Name] = true
		}
	case *ast.BlockStatement:
		for _, inner := range st.Statements {
			walkVarNames(inner, names)
		}
	case *ast.IfStatement:
		walkVarNames(st.Consequent, names)
		if st.Alternate != nil {
			walkVarNames(st.Alternate, names)
		}
	case *ast.WhileStatement:
		walkVarNames(st.Body, names)
	case *ast.DoWhileStatement:
		walkVarNames(st.Body, names)
	case *ast.ForStatement:
		if v, ok := st.Init.(*ast.VarStatement); ok {
			walkVarNames(v, names)
		}
		walkVarNames(st.Body, names)
	case *ast.ForInStatement:
		if v, ok := st.Left.(*ast.VarStatement); ok {
			walkVarNames(v, names)
		}
		walkVarNames(st.Body, names)
	case *ast.TryStatement:
		walkVarNames(st.Block, names)
		if st.Catch != nil {
			walkVarNames(st.Catch.Body, names)
		}
		if st.Finally != nil {
			walkVarNames(st.Finally, names)
		}
	case *ast.SwitchStatement:
		for _, c := range st.Cases {
			for _, inner := range c.Consequent {
				walkVarNames(inner, names)
			}
		}
	case *ast.LabeledStatement:
		walkVarNames(st.Body, names)
	case *ast.WithStatement:
		walkVarNames(st.Body, names)
	}
}
