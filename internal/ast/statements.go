package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-es5/internal/lexer"
)

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string       { return e.Expression.String() + ";" }

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ Token lexer.Token }

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }

// BlockStatement is `{ stmt... }`.
type BlockStatement struct {
	Token      lexer.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() lexer.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for _, s := range b.Statements {
		out.WriteString(s.String())
	}
	out.WriteString("}")
	return out.String()
}

// VarDeclarator is one `name` or `name = init` entry of a var statement.
type VarDeclarator struct {
	Name *Identifier
	Init Expression // nil if uninitialized
}

// VarStatement is `var a = 1, b, c = 3;`.
type VarStatement struct {
	Token        lexer.Token
	Declarations []VarDeclarator
}

func (v *VarStatement) statementNode()       {}
func (v *VarStatement) TokenLiteral() string { return v.Token.Literal }
func (v *VarStatement) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarStatement) String() string {
	parts := make([]string, len(v.Declarations))
	for i, d := range v.Declarations {
		if d.Init != nil {
			parts[i] = d.Name.String() + " = " + d.Init.String()
		} else {
			parts[i] = d.Name.String()
		}
	}
	return "var " + strings.Join(parts, ", ") + ";"
}

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	Token      lexer.Token
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else clause
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if (" + i.Test.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Token lexer.Token
	Test  Expression
	Body  Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Test.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	Token lexer.Token
	Body  Statement
	Test  Expression
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() lexer.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// ForStatement is the C-style `for (init; test; update) body`. Init may
// be a *VarStatement or an Expression wrapped as ExpressionStatement, or
// nil.
type ForStatement struct {
	Token  lexer.Token
	Init   Node // *VarStatement | Expression | nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	return "for (...) " + f.Body.String()
}

// ForInStatement is `for (lhs in object) body`. Left is either a
// *VarStatement declaring a single binding or an l-value Expression.
type ForInStatement struct {
	Token  lexer.Token
	Left   Node
	Object Expression
	Body   Statement
}

func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (... in " + f.Object.String() + ") " + f.Body.String()
}

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Token    lexer.Token
	Argument Expression // nil for bare `return;`
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Argument != nil {
		return "return " + r.Argument.String() + ";"
	}
	return "return;"
}

// BreakStatement is `break [label];`.
type BreakStatement struct {
	Token lexer.Token
	Label *Identifier // nil if unlabelled
}

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() lexer.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label != nil {
		return "break " + b.Label.Name + ";"
	}
	return "break;"
}

// ContinueStatement is `continue [label];`.
type ContinueStatement struct {
	Token lexer.Token
	Label *Identifier
}

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label != nil {
		return "continue " + c.Label.Name + ";"
	}
	return "continue;"
}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token    lexer.Token
	Argument Expression
}

func (t *ThrowStatement) statementNode()       {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) Pos() lexer.Position  { return t.Token.Pos }
func (t *ThrowStatement) String() string       { return "throw " + t.Argument.String() + ";" }

// CatchClause is the `catch (param) body` part of a TryStatement.
type CatchClause struct {
	Param *Identifier
	Body  *BlockStatement
}

// TryStatement is `try block [catch (e) block] [finally block]`. At
// least one of Catch and Finally is non-nil.
type TryStatement struct {
	Token   lexer.Token
	Block   *BlockStatement
	Catch   *CatchClause
	Finally *BlockStatement
}

func (t *TryStatement) statementNode()       {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() lexer.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	s := "try " + t.Block.String()
	if t.Catch != nil {
		s += " catch (" + t.Catch.Param.Name + ") " + t.Catch.Body.String()
	}
	if t.Finally != nil {
		s += " finally " + t.Finally.String()
	}
	return s
}

// CaseClause is one `case test:` or `default:` arm of a SwitchStatement.
// Test is nil for the default arm.
type CaseClause struct {
	Token      lexer.Token
	Test       Expression
	Consequent []Statement
}

// SwitchStatement is `switch (discriminant) { case ...: ... default: ... }`.
type SwitchStatement struct {
	Token        lexer.Token
	Discriminant Expression
	Cases        []CaseClause
}

func (s *SwitchStatement) statementNode()       {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	var out bytes.Buffer
	out.WriteString("switch (" + s.Discriminant.String() + ") {")
	for _, c := range s.Cases {
		if c.Test != nil {
			out.WriteString("case " + c.Test.String() + ": ")
		} else {
			out.WriteString("default: ")
		}
		for _, stmt := range c.Consequent {
			out.WriteString(stmt.String())
		}
	}
	out.WriteString("}")
	return out.String()
}

// WithStatement is `with (object) body`.
type WithStatement struct {
	Token  lexer.Token
	Object Expression
	Body   Statement
}

func (w *WithStatement) statementNode()       {}
func (w *WithStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WithStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WithStatement) String() string {
	return "with (" + w.Object.String() + ") " + w.Body.String()
}

// DebuggerStatement is the `debugger;` no-op statement.
type DebuggerStatement struct{ Token lexer.Token }

func (d *DebuggerStatement) statementNode()       {}
func (d *DebuggerStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DebuggerStatement) Pos() lexer.Position  { return d.Token.Pos }
func (d *DebuggerStatement) String() string       { return "debugger;" }

// LabeledStatement is `label: stmt`.
type LabeledStatement struct {
	Token lexer.Token
	Label *Identifier
	Body  Statement
}

func (l *LabeledStatement) statementNode()       {}
func (l *LabeledStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStatement) Pos() lexer.Position  { return l.Token.Pos }
func (l *LabeledStatement) String() string       { return l.Label.Name + ": " + l.Body.String() }
