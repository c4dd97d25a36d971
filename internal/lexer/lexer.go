package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// NextToken scans the next token. At end of input it returns EOF; an
// unrecognized character is returned as an ILLEGAL token whose literal is
// the offending character.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start, line, col := l.position, l.line, l.column

	if l.atEnd() {
		return token.Token{Type: token.EOF, Offset: start, Line: line, Column: col}
	}

	switch l.ch {
	case '(', ')', '[', ']', '{', '}', ',', ':', '.':
		tok := l.single(token.TokenType(string(l.ch)))
		l.readChar()
		return tok
	case '+', '-', '*', '/', '%', '=', '!', '>', '<':
		return l.readOperator()
	case '"', '\'':
		return l.readString()
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isLetter(l.ch) {
		lexeme := l.readIdentifier()
		return token.Token{
			Type:    token.LookupIdent(lexeme),
			Lexeme:  lexeme,
			Literal: lexeme,
			Offset:  start,
			Length:  len(lexeme),
			Line:    line,
			Column:  col,
		}
	}

	tok := l.single(token.ILLEGAL)
	l.readChar()
	return tok
}

// single returns the current character as a token. The lexeme is the raw
// source bytes, so an invalid UTF-8 byte is reported as itself.
func (l *Lexer) single(t token.TokenType) token.Token {
	lexeme := l.input[l.position:l.readPosition]
	return token.Token{
		Type:    t,
		Lexeme:  lexeme,
		Literal: lexeme,
		Offset:  l.position,
		Length:  len(lexeme),
		Line:    l.line,
		Column:  l.column,
	}
}

var compoundOperators = map[rune]token.TokenType{
	'+': token.PLUS_ASSIGN,
	'-': token.MINUS_ASSIGN,
	'*': token.ASTERISK_ASSIGN,
	'/': token.SLASH_ASSIGN,
	'%': token.PERCENT_ASSIGN,
	'=': token.EQ,
	'!': token.NOT_EQ,
	'>': token.GTE,
	'<': token.LTE,
}

// readOperator lexes an operator character, folding a directly following
// '=' into a two-character operator.
func (l *Lexer) readOperator() token.Token {
	if l.peekChar() == '=' {
		tok := l.single(compoundOperators[l.ch])
		l.readChar()
		tok.Lexeme += "="
		tok.Literal = tok.Lexeme
		tok.Length = 2
		l.readChar()
		return tok
	}
	tok := l.single(token.TokenType(string(l.ch)))
	l.readChar()
	return tok
}

// readString reads up to the matching quote. An unterminated string ends
// silently at end of input.
func (l *Lexer) readString() token.Token {
	quote := l.ch
	start, line, col := l.position, l.line, l.column
	l.readChar()
	contentStart := l.position
	for !l.atEnd() && l.ch != quote {
		l.readChar()
	}
	content := l.input[contentStart:l.position]
	if !l.atEnd() {
		l.readChar() // closing quote
	}
	end := l.position
	if end > len(l.input) {
		end = len(l.input)
	}
	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[start:end],
		Literal: content,
		Offset:  start,
		Length:  end - start,
		Line:    line,
		Column:  col,
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for !l.atEnd() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	start, line, col := l.position, l.line, l.column
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	tok := token.Token{Type: token.NUMBER, Lexeme: lexeme, Offset: start, Length: len(lexeme), Line: line, Column: col}

	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		tok.Type = token.ILLEGAL
		tok.Literal = "integer literal out of range"
		return tok
	}
	tok.Literal = val
	return tok
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

// Tokenize scans the whole input. The returned slice always ends with an
// EOF token. The first invalid character aborts scanning with an L001 error.
func Tokenize(input string) ([]token.Token, *diagnostics.DiagnosticError) {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			if tok.Lexeme != "" && tok.Literal != tok.Lexeme {
				return nil, diagnostics.NewErrorMessage(diagnostics.ErrL001, tok, tok.Literal.(string)+": "+tok.Lexeme)
			}
			return nil, diagnostics.NewError(diagnostics.ErrL001, tok, tok.Lexeme, tok.Offset)
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
