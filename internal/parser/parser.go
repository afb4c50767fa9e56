// Package parser turns a token stream from internal/lexer into an
// internal/ast.Program using recursive descent for statements and a Pratt
// (precedence-climbing) expression parser, in the style of the compiler
// this module's collaborators were adapted from.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/errors"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// Operator precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	COMMA       // ,
	ASSIGNMENT  // = += -= ...
	CONDITIONAL // ?:
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	EQUALITY    // == != === !==
	RELATIONAL  // < > <= >= instanceof in
	SHIFT       // << >> >>>
	ADDITIVE    // + -
	MULTIPLICATIVE
	UNARY  // ! ~ + - typeof void delete prefix ++ --
	POSTFIX
	CALL   // foo(), new foo()
	MEMBER // foo.bar, foo[bar]
)

var precedences = map[lexer.TokenType]int{
	lexer.COMMA:          COMMA,
	lexer.ASSIGN:         ASSIGNMENT,
	lexer.PLUS_ASSIGN:    ASSIGNMENT,
	lexer.MINUS_ASSIGN:   ASSIGNMENT,
	lexer.STAR_ASSIGN:    ASSIGNMENT,
	lexer.SLASH_ASSIGN:   ASSIGNMENT,
	lexer.PERCENT_ASSIGN: ASSIGNMENT,
	lexer.AND_ASSIGN:     ASSIGNMENT,
	lexer.OR_ASSIGN:      ASSIGNMENT,
	lexer.XOR_ASSIGN:     ASSIGNMENT,
	lexer.LSHIFT_ASSIGN:  ASSIGNMENT,
	lexer.RSHIFT_ASSIGN:  ASSIGNMENT,
	lexer.URSHIFT_ASSIGN: ASSIGNMENT,
	lexer.QUESTION:       CONDITIONAL,
	lexer.LOR:            LOGICAL_OR,
	lexer.LAND:           LOGICAL_AND,
	lexer.OR:             BIT_OR,
	lexer.XOR:            BIT_XOR,
	lexer.AND:            BIT_AND,
	lexer.EQ:             EQUALITY,
	lexer.NE:             EQUALITY,
	lexer.SEQ:            EQUALITY,
	lexer.SNE:            EQUALITY,
	lexer.LT:             RELATIONAL,
	lexer.GT:             RELATIONAL,
	lexer.LE:             RELATIONAL,
	lexer.GE:             RELATIONAL,
	lexer.INSTANCEOF:     RELATIONAL,
	lexer.IN:             RELATIONAL,
	lexer.LSHIFT:         SHIFT,
	lexer.RSHIFT:         SHIFT,
	lexer.URSHIFT:        SHIFT,
	lexer.PLUS:           ADDITIVE,
	lexer.MINUS:          ADDITIVE,
	lexer.STAR:           MULTIPLICATIVE,
	lexer.SLASH:          MULTIPLICATIVE,
	lexer.PERCENT:        MULTIPLICATIVE,
	lexer.LPAREN:         CALL,
	lexer.DOT:            MEMBER,
	lexer.LBRACKET:       MEMBER,
}

var assignOperators = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUS_ASSIGN: true, lexer.MINUS_ASSIGN: true,
	lexer.STAR_ASSIGN: true, lexer.SLASH_ASSIGN: true, lexer.PERCENT_ASSIGN: true,
	lexer.AND_ASSIGN: true, lexer.OR_ASSIGN: true, lexer.XOR_ASSIGN: true,
	lexer.LSHIFT_ASSIGN: true, lexer.RSHIFT_ASSIGN: true, lexer.URSHIFT_ASSIGN: true,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a single-source recursive-descent ES5.1 parser.
type Parser struct {
	l      *lexer.Lexer
	source string
	file   string

	curToken  lexer.Token
	peekToken lexer.Token

	errors []*errors.CompilerError

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New builds a Parser over source, labeling diagnostics with file (may be
// empty for REPL/-e input).
func New(source, file string) *Parser {
	p := &Parser{l: lexer.New(source), source: source, file: file}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.NUMBER:   p.parseNumberLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.NULL:     p.parseNullLiteral,
		lexer.THIS:     p.parseThisExpression,
		lexer.LPAREN:   p.parseGroupedExpression,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.LBRACE:   p.parseObjectLiteral,
		lexer.FUNCTION:  p.parseFunctionExpression,
		lexer.NEW:      p.parseNewExpression,
		lexer.NOT:      p.parseUnaryExpression,
		lexer.TILDE:    p.parseUnaryExpression,
		lexer.PLUS:     p.parseUnaryExpression,
		lexer.MINUS:    p.parseUnaryExpression,
		lexer.TYPEOF:   p.parseUnaryExpression,
		lexer.VOID:     p.parseUnaryExpression,
		lexer.DELETE:   p.parseUnaryExpression,
		lexer.INC:      p.parsePrefixUpdateExpression,
		lexer.DEC:      p.parsePrefixUpdateExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.LPAREN:   p.parseCallExpression,
		lexer.DOT:      p.parseMemberExpression,
		lexer.LBRACKET: p.parseMemberExpression,
		lexer.QUESTION: p.parseConditionalExpression,
		lexer.COMMA:    p.parseSequenceExpression,
		lexer.LAND:     p.parseLogicalExpression,
		lexer.LOR:      p.parseLogicalExpression,
	}
	for _, t := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.LT, lexer.GT, lexer.LE, lexer.GE, lexer.EQ, lexer.NE, lexer.SEQ, lexer.SNE,
		lexer.AND, lexer.OR, lexer.XOR, lexer.LSHIFT, lexer.RSHIFT, lexer.URSHIFT,
		lexer.INSTANCEOF, lexer.IN,
	} {
		p.infixParseFns[t] = p.parseBinaryExpression
	}
	for t := range assignOperators {
		p.infixParseFns[t] = p.parseAssignmentExpression
	}
	p.infixParseFns[lexer.INC] = p.parsePostfixUpdateExpression
	p.infixParseFns[lexer.DEC] = p.parsePostfixUpdateExpression

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error collected so far.
func (p *Parser) Errors() []*errors.CompilerError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	p.addError(fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type))
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, errors.NewCompilerError(p.curToken.Pos, msg, p.source, p.file))
}

func (p *Parser) peekPrecedence() int {
	if (p.peekTokenIs(lexer.INC) || p.peekTokenIs(lexer.DEC)) && !p.peekToken.NewlineBefore {
		return POSTFIX
	}
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// consumeSemicolon implements ES5.1 §7.9 automatic semicolon insertion for
// the common case: an explicit ';' is consumed, a newline or '}' or EOF
// before the next token inserts one silently, anything else is an error.
func (p *Parser) consumeSemicolon() {
	if p.peekTokenIs(lexer.SEMI) {
		p.nextToken()
		return
	}
	if p.peekToken.NewlineBefore || p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) {
		return
	}
	p.peekError(lexer.SEMI)
}

// ParseProgram parses the whole source as a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for _, lexErr := range p.l.Errors() {
		p.errors = append(p.errors, errors.NewCompilerError(lexErr.Pos, lexErr.Message, p.source, p.file))
	}
	for !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	// The directive prologue is the run of string-literal expression
	// statements the program opens with (ES5.1 §14.1).
	for _, stmt := range prog.Statements {
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			break
		}
		lit, ok := es.Expression.(*ast.StringLiteral)
		if !ok {
			break
		}
		if lit.Value == "use strict" {
			prog.Strict = true
		}
	}
	return prog
}
