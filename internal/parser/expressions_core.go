package parser

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/token"
)

// Operator levels, lowest binding first:
//
//	comparison      == != < <= > >=
//	additive        + -
//	multiplicative  * / %
//	unary           +x -x
//	postfix         f() a[i] o.m
var (
	comparisonOperators = map[token.TokenType]bool{
		token.EQ: true, token.NOT_EQ: true,
		token.LT: true, token.LTE: true,
		token.GT: true, token.GTE: true,
	}
	additiveOperators = map[token.TokenType]bool{
		token.PLUS: true, token.MINUS: true,
	}
	multiplicativeOperators = map[token.TokenType]bool{
		token.ASTERISK: true, token.SLASH: true, token.PERCENT: true,
	}
)

func (p *Parser) parseExpression() ast.Expression {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expression {
	return p.parseBinary(comparisonOperators, p.parseAdditive, func(tok token.Token, left, right ast.Expression) ast.Expression {
		return &ast.CompareExpression{Token: tok, Left: left, Operator: tok.Lexeme, Right: right}
	})
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseBinary(additiveOperators, p.parseMultiplicative, newOperate)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseBinary(multiplicativeOperators, p.parseUnary, newOperate)
}

func newOperate(tok token.Token, left, right ast.Expression) ast.Expression {
	return &ast.OperateExpression{Token: tok, Left: left, Operator: tok.Lexeme, Right: right}
}

// parseBinary parses a left-associative run of operand (op operand)*.
func (p *Parser) parseBinary(
	operators map[token.TokenType]bool,
	operand func() ast.Expression,
	build func(tok token.Token, left, right ast.Expression) ast.Expression,
) ast.Expression {
	left := operand()
	for left != nil && operators[p.peekToken.Type] {
		p.nextToken()
		opTok := p.curToken
		p.nextToken()

		right := operand()
		if right == nil {
			return nil
		}
		left = build(opTok, left, right)
	}
	return left
}

// parseUnary parses a prefix sign. `-x` becomes `0 - x` with Unary set so
// that printers can restore the original form.
func (p *Parser) parseUnary() ast.Expression {
	if !p.curTokenIs(token.PLUS) && !p.curTokenIs(token.MINUS) {
		return p.parsePostfix()
	}
	if !p.enter() {
		return nil
	}
	defer p.leave()

	opTok := p.curToken
	p.nextToken()

	right := p.parseUnary()
	if right == nil {
		return nil
	}
	zeroTok := opTok
	zeroTok.Type = token.NUMBER
	zeroTok.Lexeme = "0"
	zeroTok.Literal = int64(0)
	zeroTok.Length = 0

	return &ast.OperateExpression{
		Token:    opTok,
		Left:     &ast.NumberLiteral{Token: zeroTok, Value: 0},
		Operator: opTok.Lexeme,
		Right:    right,
		Unary:    true,
	}
}

// parsePostfix applies call, index and member suffixes greedily, left to right.
func (p *Parser) parsePostfix() ast.Expression {
	left := p.parsePrimary()
	for left != nil {
		switch p.peekToken.Type {
		case token.LPAREN:
			p.nextToken()
			left = p.parseCallExpression(left)
		case token.LBRACKET:
			p.nextToken()
			left = p.parseIndexExpression(left)
		case token.DOT:
			p.nextToken()
			left = p.parseMemberExpression(left)
		default:
			return left
		}
	}
	return nil
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.NUMBER:
		return &ast.NumberLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
	case token.TRUE, token.FALSE:
		return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
	case token.NULL:
		return &ast.NullLiteral{Token: p.curToken}
	case token.NAME:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.LPAREN:
		return p.parseGroupedExpression()
	case token.FUNCTION:
		return p.parseFunctionLiteral()
	}
	p.unexpected(p.curToken, "expression")
	return nil
}

// parseGroupedExpression parses `( expr )`. Grouping leaves no node behind.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, "parenthesized expression") {
		return nil
	}
	return expr
}

// parseExpressionList parses comma-separated expressions up to end, with
// curToken on the opening token. A trailing comma is allowed.
func (p *Parser) parseExpressionList(end token.TokenType, production string) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	for {
		p.nextToken()
		expr := p.parseExpression()
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(end) {
			break
		}
	}

	if !p.expectPeek(end, production) {
		return nil, false
	}
	return list, true
}
