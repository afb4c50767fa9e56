package parser

import (
	"testing"

	"github.com/cwbudde/go-es5/internal/ast"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := New(source, "<test>")
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}
	return prog
}

func TestParseVarStatement(t *testing.T) {
	prog := parseProgram(t, "var a = 1, b, c = a + 1;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.VarStatement)
	if !ok {
		t.Fatalf("expected *ast.VarStatement, got %T", prog.Statements[0])
	}
	if len(stmt.Declarations) != 3 {
		t.Fatalf("expected 3 declarators, got %d", len(stmt.Declarations))
	}
	if stmt.Declarations[1].Init != nil {
		t.Fatalf("expected b's initializer to be nil")
	}
	if stmt.Declarations[0].Name.Name != "a" {
		t.Fatalf("expected first declarator named a, got %s", stmt.Declarations[0].Name.Name)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseProgram(t, "if (x < 10) y = 1; else y = 2;")
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", prog.Statements[0])
	}
	if _, ok := stmt.Test.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected test to be a BinaryExpression, got %T", stmt.Test)
	}
	if stmt.Alternate == nil {
		t.Fatalf("expected an else clause")
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, "function add(a, b) { return a + b; }")
	fn, ok := prog.Statements[0].(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected *ast.FunctionLiteral, got %T", prog.Statements[0])
	}
	if !fn.Declaration {
		t.Fatalf("expected Declaration to be true for a function statement")
	}
	if fn.Name == nil || fn.Name.Name != "add" {
		t.Fatalf("expected function named add, got %v", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"(1 + 2) * 3;", "((1 + 2) * 3);"},
		{"a = b = c;", "(a = (b = c));"},
		{"1 < 2 === 3 < 4;", "((1 < 2) === (3 < 4));"},
		{"a || b && c;", "(a || (b && c));"},
		{"-a * b;", "((-a) * b);"},
		{"!a;", "(!a);"},
		{"a ? b : c;", "(a ? b : c);"},
	}
	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		got := prog.Statements[0].String()
		if got != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestParseMemberAndCallExpressions(t *testing.T) {
	prog := parseProgram(t, "a.b[c](1, 2);")
	exprStmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStatement, got %T", prog.Statements[0])
	}
	call, ok := exprStmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", exprStmt.Expression)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
	outer, ok := call.Callee.(*ast.MemberExpression)
	if !ok || !outer.Computed {
		t.Fatalf("expected computed member expression callee, got %#v", call.Callee)
	}
}

func TestParseForStatement(t *testing.T) {
	prog := parseProgram(t, "for (var i = 0; i < 10; i = i + 1) sum = sum + i;")
	forStmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", prog.Statements[0])
	}
	if _, ok := forStmt.Init.(*ast.VarStatement); !ok {
		t.Fatalf("expected Init to be a VarStatement, got %T", forStmt.Init)
	}
	if forStmt.Test == nil || forStmt.Update == nil {
		t.Fatalf("expected both test and update clauses to be present")
	}
}

func TestParseForInStatement(t *testing.T) {
	prog := parseProgram(t, "for (var k in obj) print(k);")
	forIn, ok := prog.Statements[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("expected *ast.ForInStatement, got %T", prog.Statements[0])
	}
	if _, ok := forIn.Left.(*ast.VarStatement); !ok {
		t.Fatalf("expected Left to be a VarStatement, got %T", forIn.Left)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parseProgram(t, "try { throw 1; } catch (e) { print(e); } finally { print('done'); }")
	tryStmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", prog.Statements[0])
	}
	if tryStmt.Catch == nil || tryStmt.Catch.Param.Name != "e" {
		t.Fatalf("expected a catch clause binding e, got %#v", tryStmt.Catch)
	}
	if tryStmt.Finally == nil {
		t.Fatalf("expected a finally block")
	}
}

func TestParseSwitchStatement(t *testing.T) {
	prog := parseProgram(t, `switch (x) {
		case 1: print('one'); break;
		case 2: print('two'); break;
		default: print('other');
	}`)
	sw, ok := prog.Statements[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("expected *ast.SwitchStatement, got %T", prog.Statements[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 case clauses, got %d", len(sw.Cases))
	}
	if sw.Cases[2].Test != nil {
		t.Fatalf("expected the default clause's Test to be nil")
	}
}

func TestParseObjectAndArrayLiterals(t *testing.T) {
	prog := parseProgram(t, "var o = { a: 1, 'b': 2, get c() { return 3; } }; var arr = [1, , 3];")
	varStmt := prog.Statements[0].(*ast.VarStatement)
	obj, ok := varStmt.Declarations[0].Init.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("expected *ast.ObjectLiteral, got %T", varStmt.Declarations[0].Init)
	}
	if len(obj.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(obj.Properties))
	}
	if obj.Properties[2].Kind != ast.PropertyGet {
		t.Fatalf("expected the third property to be a getter")
	}

	arrStmt := prog.Statements[1].(*ast.VarStatement)
	arr, ok := arrStmt.Declarations[0].Init.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayLiteral, got %T", arrStmt.Declarations[0].Init)
	}
	if len(arr.Elements) != 3 || arr.Elements[1] != nil {
		t.Fatalf("expected a hole at index 1, got %#v", arr.Elements)
	}
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	prog := parseProgram(t, "var x = 1\nvar y = 2\n")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements via automatic semicolon insertion, got %d", len(prog.Statements))
	}
}

func TestParseErrorsReported(t *testing.T) {
	p := New("var = ;", "<test>")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected parse errors for malformed source")
	}
}
