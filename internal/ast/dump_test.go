package ast

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-es5/internal/lexer"
)

func ident(name string) *Identifier {
	return &Identifier{Token: lexer.Token{Literal: name}, Name: name}
}

func TestDumpTreeWrapsNodesWithTypeAndText(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&VarStatement{
				Token: lexer.Token{Literal: "var"},
				Declarations: []VarDeclarator{
					{Name: ident("x"), Init: &NumberLiteral{Token: lexer.Token{Literal: "1"}, Value: 1}},
				},
			},
		},
	}

	tree := DumpTree(prog)
	m, ok := tree.(map[string]interface{})
	if !ok {
		t.Fatalf("expected DumpTree to return a map, got %T", tree)
	}
	stmts, ok := m["Statements"].([]interface{})
	if !ok || len(stmts) != 1 {
		t.Fatalf("expected one statement in the dumped tree, got %#v", m["Statements"])
	}
	stmt, ok := stmts[0].(map[string]interface{})
	if !ok {
		t.Fatalf("expected the statement to be a map, got %T", stmts[0])
	}
	if stmt["node"] != "VarStatement" {
		t.Fatalf("expected node=VarStatement, got %v", stmt["node"])
	}
	if stmt["text"] != "var x = 1;" {
		t.Fatalf("expected text=%q, got %v", "var x = 1;", stmt["text"])
	}
	if _, hasToken := stmt["Token"]; hasToken {
		t.Fatalf("expected the Token field to be skipped in the dump")
	}
}

func TestDumpYAMLProducesParseableStructure(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&ExpressionStatement{
				Token:      lexer.Token{Literal: "x"},
				Expression: ident("x"),
			},
		},
	}

	out, err := DumpYAML(prog)
	if err != nil {
		t.Fatalf("DumpYAML returned an error: %v", err)
	}
	if !strings.Contains(out, "ExpressionStatement") {
		t.Fatalf("expected the YAML dump to mention ExpressionStatement, got:\n%s", out)
	}
}
