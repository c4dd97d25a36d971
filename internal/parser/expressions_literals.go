package parser

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/token"
)

func (p *Parser) parseArrayLiteral() ast.Expression {
	array := &ast.ArrayLiteral{Token: p.curToken}

	elements, ok := p.parseExpressionList(token.RBRACKET, "array literal")
	if !ok {
		return nil
	}
	array.Elements = elements
	return array
}

// parseObjectLiteral parses `{ key: value, ... }`. Keys are names, keyword
// spellings or string literals.
func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken}

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()

		keyTok := p.curToken
		var key string
		switch {
		case keyTok.Type == token.STRING:
			key = keyTok.Literal.(string)
		case keyTok.Type == token.NAME, token.IsKeyword(keyTok.Type):
			key = keyTok.Lexeme
		default:
			p.unexpected(keyTok, "object key")
			return nil
		}

		if !p.expectPeek(token.COLON, "object literal") {
			return nil
		}
		p.nextToken()

		value := p.parseExpression()
		if value == nil {
			return nil
		}
		obj.Set(&ast.ObjectField{Token: keyTok, Key: key, Value: value})

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.peekTokenIs(token.RBRACE) {
			p.unexpected(p.peekToken, "object literal")
			return nil
		}
	}
	p.nextToken() // '}'

	return obj
}
