// Package ast defines the Abstract Syntax Tree node types produced by
// internal/parser and consumed by internal/interp. The node classes are
// a collaborator: the core evaluator specifies what it does with a
// Program, not how one is parsed. This package supplies a concrete,
// minimal node set for the ES5.1 statement and expression grammar.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-es5/internal/lexer"
)

// Node is the base interface for every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token this node starts with.
	TokenLiteral() string
	// String returns a source-like rendering, used for debugging and tests.
	String() string
	// Pos returns the node's position in the source, for diagnostics.
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
	// Strict records whether the program begins with a "use strict"
	// directive prologue. The evaluator uses it for global code's
	// assignment and delete behaviour; the parse-time restrictions ES5.1
	// Annex C lists are not enforced.
	Strict bool
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Identifier is a variable, function, parameter, or label name.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Name }
func (i *Identifier) Pos() lexer.Position    { return i.Token.Pos }

// NumberLiteral is a numeric literal (decimal or hex integer, float).
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position  { return n.Token.Pos }

// StringLiteral is a single- or double-quoted string literal.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }
func (s *StringLiteral) Pos() lexer.Position  { return s.Token.Pos }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }
func (b *BooleanLiteral) Pos() lexer.Position  { return b.Token.Pos }

// NullLiteral is the `null` literal.
type NullLiteral struct{ Token lexer.Token }

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) String() string       { return "null" }
func (n *NullLiteral) Pos() lexer.Position  { return n.Token.Pos }

// ThisExpression is the `this` keyword.
type ThisExpression struct{ Token lexer.Token }

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) String() string       { return "this" }
func (t *ThisExpression) Pos() lexer.Position  { return t.Token.Pos }

// ArrayLiteral is `[e1, e2, ...]`. A nil entry represents an elided
// element (a "hole", as in `[1, , 3]`).
type ArrayLiteral struct {
	Token    lexer.Token // '['
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e != nil {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PropertyKind distinguishes ordinary, getter, and setter object-literal
// properties (ES5.1 §11.1.5).
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// Property is one `key: value`, `get key() {...}`, or `set key(v) {...}`
// entry of an ObjectLiteral.
type Property struct {
	Key      Expression // Identifier or StringLiteral or NumberLiteral
	Value    Expression
	Kind     PropertyKind
	Computed bool
}

// ObjectLiteral is `{ prop: value, ... }`.
type ObjectLiteral struct {
	Token      lexer.Token // '{'
	Properties []Property
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() lexer.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
