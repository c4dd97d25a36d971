package parser

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/token"
)

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Function: function}

	args, ok := p.parseExpressionList(token.RPAREN, "call arguments")
	if !ok {
		return nil
	}
	call.Arguments = args
	return call
}

// parseIndexExpression parses `left[index]`. The index operand is limited to
// a number, a string, a name or an arithmetic expression.
func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	index := p.parseExpression()
	if index == nil {
		return nil
	}

	switch index.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.Identifier, *ast.OperateExpression:
	default:
		p.fail(diagnostics.NewError(diagnostics.ErrP004, index.GetToken(), describe(index)))
		return nil
	}
	expr.Index = index

	if !p.expectPeek(token.RBRACKET, "index expression") {
		return nil
	}
	return expr
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.curToken, Left: left}

	if !p.expectPeek(token.NAME, "member access") {
		return nil
	}
	expr.Member = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	return expr
}
