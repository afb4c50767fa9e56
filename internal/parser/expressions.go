package parser

import (
	"strconv"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// parseExpression is the Pratt-parser core: it parses a prefix expression
// then repeatedly folds in infix/postfix operators whose precedence beats
// the caller's minimum.
// PRE: curToken is the first token of the expression.
// POST: curToken is the last token of the expression.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError("unexpected token " + p.curToken.Type.String() + " in expression")
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(lexer.SEMI) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.NumberLiteral{Token: p.curToken}
	text := p.curToken.Literal
	var value float64
	var err error
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		var n int64
		n, err = strconv.ParseInt(text[2:], 16, 64)
		value = float64(n)
	} else {
		value, err = strconv.ParseFloat(text, 64)
	}
	if err != nil {
		p.addError("invalid number literal " + text)
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

// parseArrayLiteral parses `[e1, , e3]`, preserving elided elements as nil
// holes per ES5.1 §11.1.4.
func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}
	if p.peekTokenIs(lexer.RBRACKET) {
		p.nextToken()
		return arr
	}
	p.nextToken()
	for {
		if p.curTokenIs(lexer.COMMA) {
			arr.Elements = append(arr.Elements, nil)
			p.nextToken()
			continue
		}
		if p.curTokenIs(lexer.RBRACKET) {
			break
		}
		arr.Elements = append(arr.Elements, p.parseExpression(ASSIGNMENT))
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken}
	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return obj
	}

	for {
		p.nextToken()
		prop, ok := p.parseObjectProperty()
		if !ok {
			return nil
		}
		obj.Properties = append(obj.Properties, prop)
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			if p.peekTokenIs(lexer.RBRACE) {
				break
			}
			continue
		}
		break
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return obj
}

func (p *Parser) parseObjectProperty() (ast.Property, bool) {
	var prop ast.Property

	if (p.curToken.Literal == "get" || p.curToken.Literal == "set") && p.curTokenIs(lexer.IDENT) &&
		!p.peekTokenIs(lexer.COLON) && !p.peekTokenIs(lexer.COMMA) && !p.peekTokenIs(lexer.RBRACE) {
		isGet := p.curToken.Literal == "get"
		p.nextToken()
		prop.Key = p.parsePropertyKey()
		if prop.Key == nil {
			return prop, false
		}
		fn := p.parseAccessorBody()
		if fn == nil {
			return prop, false
		}
		prop.Value = fn
		if isGet {
			prop.Kind = ast.PropertyGet
		} else {
			prop.Kind = ast.PropertySet
		}
		return prop, true
	}

	prop.Key = p.parsePropertyKey()
	if prop.Key == nil {
		return prop, false
	}
	if !p.expectPeek(lexer.COLON) {
		return prop, false
	}
	p.nextToken()
	prop.Value = p.parseExpression(ASSIGNMENT)
	prop.Kind = ast.PropertyInit
	return prop, true
}

func (p *Parser) parsePropertyKey() ast.Expression {
	switch p.curToken.Type {
	case lexer.IDENT:
		return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	case lexer.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	default:
		if name, ok := lexer.ReservedWordName(p.curToken.Type); ok {
			return &ast.Identifier{Token: p.curToken, Name: name}
		}
		p.addError("expected property name, got " + p.curToken.Type.String())
		return nil
	}
}

// parseAccessorBody parses the `(params) { body }` tail of a getter or
// setter, returning it as an anonymous FunctionLiteral.
func (p *Parser) parseAccessorBody() *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	return p.parseFunctionLiteral()
}

// parseFunctionLiteral parses `function [name](params) { body }`. The
// caller marks Declaration when this was reached as a statement.
func (p *Parser) parseFunctionLiteral() *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	if p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		fn.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseParamList() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal})
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal})
	}
	if !p.expectPeek(lexer.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseNewExpression() ast.Expression {
	expr := &ast.NewExpression{Token: p.curToken}
	p.nextToken()
	expr.Callee = p.parseExpression(CALL)
	// The callee is parsed without call suffixes; an argument list
	// directly after it belongs to the `new`.
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		expr.Arguments = p.parseExpressionList(lexer.RPAREN)
	}
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Callee: callee}
	expr.Arguments = p.parseExpressionList(lexer.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(ASSIGNMENT))
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(ASSIGNMENT))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.curToken, Object: object}
	if p.curTokenIs(lexer.DOT) {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		expr.Property = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
		expr.Computed = false
		return expr
	}
	// '['
	p.nextToken()
	expr.Property = p.parseExpression(LOWEST)
	expr.Computed = true
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Operand = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parsePrefixUpdateExpression() ast.Expression {
	expr := &ast.UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Prefix: true}
	p.nextToken()
	expr.Operand = p.parseExpression(UNARY)
	return expr
}

// parsePostfixUpdateExpression is an infix handler: ++/-- following an
// l-value with no intervening newline (ES5.1 §7.9.1 restricted production).
func (p *Parser) parsePostfixUpdateExpression(left ast.Expression) ast.Expression {
	return &ast.UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Operand: left, Prefix: false}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.currentPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	expr := &ast.LogicalExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.currentPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) currentPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	expr := &ast.ConditionalExpression{Token: p.curToken, Test: test}
	p.nextToken()
	expr.Consequent = p.parseExpression(ASSIGNMENT)
	if !p.expectPeek(lexer.COLON) {
		return expr
	}
	p.nextToken()
	expr.Alternate = p.parseExpression(ASSIGNMENT)
	return expr
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	expr := &ast.AssignmentExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	p.nextToken()
	expr.Right = p.parseExpression(ASSIGNMENT - 1)
	return expr
}

func (p *Parser) parseSequenceExpression(first ast.Expression) ast.Expression {
	expr := &ast.SequenceExpression{Token: p.curToken, Expressions: []ast.Expression{first}}
	for {
		p.nextToken()
		expr.Expressions = append(expr.Expressions, p.parseExpression(ASSIGNMENT))
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return expr
}
