package ast

import "github.com/funvibe/gl/internal/token"

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) node()                 {}
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// DeclareStatement represents `var name = value` and `const name = value`.
// IsConst is recorded for printing and inference only.
type DeclareStatement struct {
	Token   token.Token // The 'var' or 'const' token
	Name    *Identifier
	Value   Expression
	IsConst bool
}

func (ds *DeclareStatement) node()                 {}
func (ds *DeclareStatement) statementNode()        {}
func (ds *DeclareStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DeclareStatement) GetToken() token.Token { return ds.Token }

// AssignStatement represents target = value, where target is an Identifier,
// MemberExpression or IndexExpression.
type AssignStatement struct {
	Token  token.Token // The '=' token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) node()                 {}
func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// IfBranch is one `if (test) { ... }` arm.
type IfBranch struct {
	Token token.Token // The 'if' token
	Test  Expression
	Block *BlockStatement
}

// IfStatement is an if / else if / else chain flattened into branches
// tried in order, plus an optional final else block.
type IfStatement struct {
	Token    token.Token // The first 'if' token
	Branches []*IfBranch
	Else     *BlockStatement // nil when absent
}

func (is *IfStatement) node()                 {}
func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// ReturnStatement represents `return value`.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression
}

func (rs *ReturnStatement) node()                 {}
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// BlockStatement represents { stmt* }.
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) node()                 {}
func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }
