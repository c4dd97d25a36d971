package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Literals and names
	NAME   TokenType = "NAME"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Punctuation
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	COMMA    TokenType = ","
	COLON    TokenType = ":"
	DOT      TokenType = "."

	// Operators
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	GT       TokenType = ">"
	GTE      TokenType = ">="
	LT       TokenType = "<"
	LTE      TokenType = "<="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	ASSIGN   TokenType = "="

	// Compound assignment. Lexed but never accepted by the parser.
	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="

	// A lone '!' has no meaning in the grammar but the lexer still
	// recognizes it as an operator character.
	BANG TokenType = "!"

	// Keywords
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	CONST    TokenType = "CONST"
	VAR      TokenType = "VAR"
	FUNCTION TokenType = "FUNCTION"
	RETURN   TokenType = "RETURN"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
)

// Keywords maps every reserved spelling to its canonical keyword kind.
// "con" is an alias of "const".
var Keywords = map[string]TokenType{
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"const":    CONST,
	"con":      CONST,
	"var":      VAR,
	"function": FUNCTION,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// LookupIdent returns the keyword kind for ident, or NAME.
func LookupIdent(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return NAME
}

// IsKeyword reports whether t is one of the keyword kinds.
func IsKeyword(t TokenType) bool {
	switch t {
	case IF, ELSE, WHILE, CONST, VAR, FUNCTION, RETURN, TRUE, FALSE, NULL:
		return true
	}
	return false
}

// Token is a single lexeme. Offset and Length are byte positions into the
// source; Line and Column are 1-based and only used for diagnostics.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text of the token
	Literal interface{} // int64 for NUMBER, string for everything else
	Offset  int
	Length  int
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}
