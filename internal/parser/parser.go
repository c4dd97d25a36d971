package parser

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/config"
	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/pipeline"
	"github.com/funvibe/gl/internal/token"
)

// Parser is a recursive-descent parser over a fully lexed token stream.
// Every parse function starts with curToken on the first token of its
// construct and returns with curToken on the construct's last token.
//
// Parsing stops at the first error: the error is recorded on the pipeline
// context and every parse function unwinds by returning nil.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext

	depth    int
	maxDepth int
	failure  *diagnostics.DiagnosticError
}

// New creates a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{
		tokens:   tokens,
		ctx:      ctx,
		maxDepth: config.DefaultParserMaxDepth,
	}
	p.curToken = p.tokens[0]
	p.peekToken = p.tokenAt(1)
	return p
}

// SetMaxDepth bounds how deeply expressions and blocks may nest.
func (p *Parser) SetMaxDepth(depth int) {
	if depth > 0 {
		p.maxDepth = depth
	}
}

// ParseProgram parses the whole token stream into a Module. It returns nil
// if parsing failed.
func (p *Parser) ParseProgram() *ast.Module {
	module := &ast.Module{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		module.Statements = append(module.Statements, stmt)
		p.nextToken()
	}
	return module
}

// Err returns the error that stopped parsing, if any.
func (p *Parser) Err() *diagnostics.DiagnosticError {
	return p.failure
}

func (p *Parser) tokenAt(i int) token.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has type t, and otherwise records
// an unexpected-token error naming the production being parsed.
func (p *Parser) expectPeek(t token.TokenType, production string) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.unexpected(p.peekToken, production)
	return false
}

func (p *Parser) unexpected(tok token.Token, production string) {
	p.fail(diagnostics.NewError(diagnostics.ErrP001, tok, tok.String(), production))
}

func (p *Parser) fail(err *diagnostics.DiagnosticError) {
	if p.failure != nil {
		return
	}
	p.failure = err
	if p.ctx != nil {
		p.ctx.AddError(err)
	}
}

func (p *Parser) failed() bool {
	return p.failure != nil
}

// enter increments the nesting depth. It returns false, recording a P005
// error, once the limit is exceeded. Every successful enter must be paired
// with a leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		p.fail(diagnostics.NewError(diagnostics.ErrP005, p.curToken, p.maxDepth))
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// describe names a node kind for error messages.
func describe(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Identifier:
		return "name " + n.Value
	case *ast.NumberLiteral:
		return "number literal"
	case *ast.StringLiteral:
		return "string literal"
	case *ast.BooleanLiteral:
		return "boolean literal"
	case *ast.NullLiteral:
		return "null"
	case *ast.ArrayLiteral:
		return "array literal"
	case *ast.ObjectLiteral:
		return "object literal"
	case *ast.IndexExpression:
		return "index expression"
	case *ast.MemberExpression:
		return "member expression"
	case *ast.CallExpression:
		return "call expression"
	case *ast.FunctionLiteral:
		return "function literal"
	case *ast.OperateExpression:
		return "arithmetic expression"
	case *ast.CompareExpression:
		return "comparison"
	}
	return "expression"
}
