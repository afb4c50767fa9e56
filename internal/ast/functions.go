package ast

import (
	"strings"

	"github.com/cwbudde/go-es5/internal/lexer"
)

// FunctionLiteral backs both function declarations and function
// expressions; Name is nil for anonymous expressions. A named function
// expression binds its own name inside its body only (§4.3.2).
type FunctionLiteral struct {
	Token  lexer.Token // 'function'
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
	Strict bool
	// Declaration reports whether this literal was parsed as a statement
	// (FunctionDeclaration) rather than an expression. Declarations are
	// hoisted by declaration binding instantiation (§4.5); named
	// function expressions are not.
	Declaration bool
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) statementNode()       {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
	}
	name := ""
	if f.Name != nil {
		name = f.Name.Name
	}
	return "function " + name + "(" + strings.Join(params, ", ") + ") " + f.Body.String()
}
