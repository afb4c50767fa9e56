package ast

import (
	"strings"

	"github.com/cwbudde/go-es5/internal/lexer"
)

// MemberExpression is `obj.prop` (Computed == false) or `obj[expr]`
// (Computed == true).
type MemberExpression struct {
	Token    lexer.Token
	Object   Expression
	Property Expression
	Computed bool
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() lexer.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string {
	if m.Computed {
		return m.Object.String() + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + "." + m.Property.String()
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token     lexer.Token // '('
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// NewExpression is `new callee(args...)`.
type NewExpression struct {
	Token     lexer.Token // 'new'
	Callee    Expression
	Arguments []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() lexer.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	args := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = a.String()
	}
	return "new " + n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// UnaryExpression is a prefix operator: delete, void, typeof, +, -, ~, !,
// or prefix ++/--.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	return "(" + u.Operator + u.Operand.String() + ")"
}

// UpdateExpression is postfix `x++` / `x--` (Prefix == false) or prefix
// `++x` / `--x` (Prefix == true). Prefix forms are also representable as
// UnaryExpression; the parser always produces UpdateExpression for ++/--
// so the evaluator has one place to implement ToNumber/PutValue.
type UpdateExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
	Prefix   bool
}

func (u *UpdateExpression) expressionNode()      {}
func (u *UpdateExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UpdateExpression) Pos() lexer.Position  { return u.Token.Pos }
func (u *UpdateExpression) String() string {
	if u.Prefix {
		return "(" + u.Operator + u.Operand.String() + ")"
	}
	return "(" + u.Operand.String() + u.Operator + ")"
}

// BinaryExpression covers arithmetic, bitwise, shift, relational, and
// equality operators.
type BinaryExpression struct {
	Token    lexer.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// LogicalExpression is `&&` or `||`, kept distinct from BinaryExpression
// because it short-circuits and never coerces its result to boolean.
type LogicalExpression struct {
	Token    lexer.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (l *LogicalExpression) expressionNode()      {}
func (l *LogicalExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LogicalExpression) Pos() lexer.Position  { return l.Token.Pos }
func (l *LogicalExpression) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

// ConditionalExpression is `test ? consequent : alternate`.
type ConditionalExpression struct {
	Token       lexer.Token
	Test        Expression
	Consequent  Expression
	Alternate   Expression
}

func (c *ConditionalExpression) expressionNode()      {}
func (c *ConditionalExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConditionalExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *ConditionalExpression) String() string {
	return "(" + c.Test.String() + " ? " + c.Consequent.String() + " : " + c.Alternate.String() + ")"
}

// AssignmentExpression is `lhs = rhs` or a compound `lhs op= rhs`.
type AssignmentExpression struct {
	Token    lexer.Token
	Operator string // "=", "+=", "-=", ...
	Left     Expression
	Right    Expression
}

func (a *AssignmentExpression) expressionNode()      {}
func (a *AssignmentExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return "(" + a.Left.String() + " " + a.Operator + " " + a.Right.String() + ")"
}

// SequenceExpression is the comma operator: `a, b, c`.
type SequenceExpression struct {
	Token       lexer.Token
	Expressions []Expression
}

func (s *SequenceExpression) expressionNode()      {}
func (s *SequenceExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SequenceExpression) Pos() lexer.Position  { return s.Token.Pos }
func (s *SequenceExpression) String() string {
	parts := make([]string, len(s.Expressions))
	for i, e := range s.Expressions {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
