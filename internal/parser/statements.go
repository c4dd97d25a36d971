package parser

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.CONST, token.VAR:
		return nilIfFailed(p, p.parseDeclareStatement())
	case token.IF:
		return nilIfFailed(p, p.parseIfStatement())
	case token.RETURN:
		return nilIfFailed(p, p.parseReturnStatement())
	case token.WHILE:
		// The keyword is reserved; the loop itself is not part of the language yet.
		p.fail(diagnostics.NewError(diagnostics.ErrP002, p.curToken, "while statement"))
		return nil
	case token.LBRACE:
		return nilIfFailed(p, p.parseBlockStatement())
	}
	return p.parseExpressionOrAssignStatement()
}

// nilIfFailed converts a typed nil statement pointer into an untyped nil
// interface so callers can compare against nil.
func nilIfFailed[T ast.Statement](p *Parser, stmt T) ast.Statement {
	if p.failed() {
		return nil
	}
	return stmt
}

// parseDeclareStatement parses `var name = value` and `const name = value`.
func (p *Parser) parseDeclareStatement() *ast.DeclareStatement {
	stmt := &ast.DeclareStatement{Token: p.curToken, IsConst: p.curTokenIs(token.CONST)}

	if !p.expectPeek(token.NAME, "declaration") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.ASSIGN, "declaration") {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// parseIfStatement parses an if / else if / else chain.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}

	branch := p.parseIfBranch()
	if branch == nil {
		return nil
	}
	stmt.Branches = append(stmt.Branches, branch)

	for p.peekTokenIs(token.ELSE) {
		p.nextToken() // else

		if p.peekTokenIs(token.IF) {
			p.nextToken()
			branch := p.parseIfBranch()
			if branch == nil {
				return nil
			}
			stmt.Branches = append(stmt.Branches, branch)
			continue
		}

		if !p.expectPeek(token.LBRACE, "else block") {
			return nil
		}
		stmt.Else = p.parseBlockStatement()
		if stmt.Else == nil {
			return nil
		}
		break
	}
	return stmt
}

// parseIfBranch parses `if (test) { ... }` with curToken on 'if'.
func (p *Parser) parseIfBranch() *ast.IfBranch {
	branch := &ast.IfBranch{Token: p.curToken}

	if !p.expectPeek(token.LPAREN, "if condition") {
		return nil
	}
	p.nextToken()

	branch.Test = p.parseExpression()
	if branch.Test == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, "if condition") {
		return nil
	}
	if !p.expectPeek(token.LBRACE, "if block") {
		return nil
	}
	branch.Block = p.parseBlockStatement()
	if branch.Block == nil {
		return nil
	}
	return branch
}

// parseReturnStatement parses `return value`. A bare return directly before
// '}' or end of input returns null.
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	p.nextToken()

	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// parseBlockStatement parses `{ stmt* }` with curToken on '{'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.unexpected(p.curToken, "block")
			return nil
		}
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}
	return block
}

// parseExpressionOrAssignStatement parses an expression, promoting it to an
// assignment when it is followed by '='.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	startTok := p.curToken

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	switch p.peekToken.Type {
	case token.ASSIGN:
		switch expr.(type) {
		case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
		default:
			p.fail(diagnostics.NewError(diagnostics.ErrP003, p.peekToken, describe(expr)))
			return nil
		}
		p.nextToken()
		stmt := &ast.AssignStatement{Token: p.curToken, Target: expr}
		p.nextToken()
		stmt.Value = p.parseExpression()
		if stmt.Value == nil {
			return nil
		}
		return stmt

	case token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.ASTERISK_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		p.fail(diagnostics.NewError(diagnostics.ErrP002, p.peekToken, "compound assignment "+p.peekToken.Lexeme))
		return nil
	}

	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}
