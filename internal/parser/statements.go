package parser

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/lexer"
)

// parseStatement dispatches on curToken to the matching statement parser.
// PRE: curToken is the first token of the statement.
// POST: curToken is the last token of the statement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.SEMI:
		return &ast.EmptyStatement{Token: p.curToken}
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.VAR:
		return p.parseVarStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.WITH:
		return p.parseWithStatement()
	case lexer.DEBUGGER:
		stmt := &ast.DebuggerStatement{Token: p.curToken}
		p.consumeSemicolon()
		return stmt
	case lexer.IDENT:
		if p.peekTokenIs(lexer.COLON) {
			return p.parseLabeledStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return stmt
}

// parseVarStatement parses `var a = 1, b, c = 3;`.
// PRE: curToken is VAR.
func (p *Parser) parseVarStatement() *ast.VarStatement {
	stmt := &ast.VarStatement{Token: p.curToken}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return stmt
		}
		decl := ast.VarDeclarator{Name: &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}}
		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken() // consume '='
			p.nextToken() // move to initializer
			decl.Init = p.parseExpression(ASSIGNMENT)
		}
		stmt.Declarations = append(stmt.Declarations, decl)
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken() // consume ','
	}

	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Test = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Consequent = p.parseStatement()
	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alternate = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Test = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	stmt := &ast.DoWhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if !p.expectPeek(lexer.WHILE) {
		return stmt
	}
	if !p.expectPeek(lexer.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Test = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return stmt
	}
	p.consumeSemicolon()
	return stmt
}

// parseForStatement parses both the C-style for and for-in forms, since
// both share the `for (` prefix and only diverge after the first clause.
func (p *Parser) parseForStatement() ast.Statement {
	forTok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return &ast.ForStatement{Token: forTok}
	}
	p.nextToken()

	var init ast.Node
	if p.curTokenIs(lexer.VAR) {
		varTok := p.curToken
		if !p.expectPeek(lexer.IDENT) {
			return &ast.ForStatement{Token: forTok}
		}
		name := &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
		if p.peekTokenIs(lexer.IN) {
			p.nextToken() // 'in'
			p.nextToken()
			object := p.parseExpression(LOWEST)
			if !p.expectPeek(lexer.RPAREN) {
				return &ast.ForStatement{Token: forTok}
			}
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForInStatement{
				Token:  forTok,
				Left:   &ast.VarStatement{Token: varTok, Declarations: []ast.VarDeclarator{{Name: name}}},
				Object: object,
				Body:   body,
			}
		}
		decl := ast.VarDeclarator{Name: name}
		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			decl.Init = p.parseExpression(ASSIGNMENT)
		}
		varStmt := &ast.VarStatement{Token: varTok, Declarations: []ast.VarDeclarator{decl}}
		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			if !p.expectPeek(lexer.IDENT) {
				return &ast.ForStatement{Token: forTok}
			}
			d := ast.VarDeclarator{Name: &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}}
			if p.peekTokenIs(lexer.ASSIGN) {
				p.nextToken()
				p.nextToken()
				d.Init = p.parseExpression(ASSIGNMENT)
			}
			varStmt.Declarations = append(varStmt.Declarations, d)
		}
		init = varStmt
	} else if !p.curTokenIs(lexer.SEMI) {
		expr := p.parseExpression(LOWEST)
		// The expression parser folds `x in obj` into one `in` binary
		// expression; directly followed by `)`, it is a for-in head.
		if bin, ok := expr.(*ast.BinaryExpression); ok && bin.Operator == "in" && p.peekTokenIs(lexer.RPAREN) {
			p.nextToken() // ')'
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForInStatement{Token: forTok, Left: bin.Left, Object: bin.Right, Body: body}
		}
		init = expr
	}

	if !p.expectPeek(lexer.SEMI) {
		return &ast.ForStatement{Token: forTok}
	}
	var test ast.Expression
	if !p.peekTokenIs(lexer.SEMI) {
		p.nextToken()
		test = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(lexer.SEMI) {
		return &ast.ForStatement{Token: forTok}
	}
	var update ast.Expression
	if !p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		update = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(lexer.RPAREN) {
		return &ast.ForStatement{Token: forTok}
	}
	p.nextToken()
	body := p.parseStatement()
	return &ast.ForStatement{Token: forTok, Init: init, Test: test, Update: update, Body: body}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(lexer.SEMI) || p.peekToken.NewlineBefore || p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) {
		p.consumeSemicolon()
		return stmt
	}
	p.nextToken()
	stmt.Argument = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	if !p.peekToken.NewlineBefore && p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		stmt.Label = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	if !p.peekToken.NewlineBefore && p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		stmt.Label = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()
	stmt.Argument = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	stmt := &ast.TryStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LBRACE) {
		return stmt
	}
	stmt.Block = p.parseBlockStatement()

	if p.peekTokenIs(lexer.CATCH) {
		p.nextToken()
		catch := &ast.CatchClause{}
		if !p.expectPeek(lexer.LPAREN) {
			return stmt
		}
		if !p.expectPeek(lexer.IDENT) {
			return stmt
		}
		catch.Param = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
		if !p.expectPeek(lexer.RPAREN) {
			return stmt
		}
		if !p.expectPeek(lexer.LBRACE) {
			return stmt
		}
		catch.Body = p.parseBlockStatement()
		stmt.Catch = catch
	}

	if p.peekTokenIs(lexer.FINALLY) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return stmt
		}
		stmt.Finally = p.parseBlockStatement()
	}

	if stmt.Catch == nil && stmt.Finally == nil {
		p.addError("missing catch or finally after try")
	}
	return stmt
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	stmt := &ast.SwitchStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Discriminant = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return stmt
	}
	if !p.expectPeek(lexer.LBRACE) {
		return stmt
	}
	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		clause := ast.CaseClause{Token: p.curToken}
		if p.curTokenIs(lexer.CASE) {
			p.nextToken()
			clause.Test = p.parseExpression(LOWEST)
			if !p.expectPeek(lexer.COLON) {
				return stmt
			}
		} else if p.curTokenIs(lexer.DEFAULT) {
			if !p.expectPeek(lexer.COLON) {
				return stmt
			}
		} else {
			p.addError("expected 'case' or 'default' in switch body")
			return stmt
		}
		p.nextToken()
		for !p.curTokenIs(lexer.CASE) && !p.curTokenIs(lexer.DEFAULT) && !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
			if s := p.parseStatement(); s != nil {
				clause.Consequent = append(clause.Consequent, s)
			}
			p.nextToken()
		}
		stmt.Cases = append(stmt.Cases, clause)
	}
	return stmt
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	stmt := &ast.WithStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Object = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseLabeledStatement() *ast.LabeledStatement {
	stmt := &ast.LabeledStatement{
		Token: p.curToken,
		Label: &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal},
	}
	p.nextToken() // consume ':'
	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionLiteral {
	fn := p.parseFunctionLiteral()
	if fn != nil {
		fn.Declaration = true
	}
	return fn
}
