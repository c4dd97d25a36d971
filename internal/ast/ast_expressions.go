package ast

import "github.com/funvibe/gl/internal/token"

// IndexExpression represents obj[index].
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) node()                 {}
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// MemberExpression represents obj.member.
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) node()                 {}
func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

// CallExpression represents callee(arg, ...).
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) node()                 {}
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// FunctionLiteral represents function [name](params) { body }.
// The node is immutable once parsed; evaluating it creates a fresh closure.
type FunctionLiteral struct {
	Token      token.Token // The 'function' token
	Name       *Identifier // nil for anonymous functions
	Parameters []*Identifier
	Body       *BlockStatement
}

func (fl *FunctionLiteral) node()                 {}
func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// DisplayName is the function's name, or "anonymous".
func (fl *FunctionLiteral) DisplayName() string {
	if fl.Name == nil {
		return "anonymous"
	}
	return fl.Name.Value
}

// OperateExpression is an arithmetic binary operation (+ - * / %).
// A prefix sign is stored with Unary set and a synthetic zero on the left.
type OperateExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
	Unary    bool
}

func (oe *OperateExpression) node()                 {}
func (oe *OperateExpression) expressionNode()       {}
func (oe *OperateExpression) TokenLiteral() string  { return oe.Token.Lexeme }
func (oe *OperateExpression) GetToken() token.Token { return oe.Token }

// CompareExpression is a comparison (== != < <= > >=).
type CompareExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ce *CompareExpression) node()                 {}
func (ce *CompareExpression) expressionNode()       {}
func (ce *CompareExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CompareExpression) GetToken() token.Token { return ce.Token }
