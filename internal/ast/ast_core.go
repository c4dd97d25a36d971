package ast

import (
	"fmt"

	"github.com/funvibe/gl/internal/token"
)

// Node is the base interface for all AST nodes. The unexported marker
// keeps the set of node kinds closed to this package.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	node()
}

// Statement is a Node that can appear in a block or module body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Visitor has one method per node kind. Adding a node kind means adding a
// method here, which every walker (evaluator, printer, inference) must then
// implement before the module builds again.
type Visitor[R any] interface {
	VisitModule(*Module) R
	VisitBlockStatement(*BlockStatement) R
	VisitExpressionStatement(*ExpressionStatement) R
	VisitDeclareStatement(*DeclareStatement) R
	VisitAssignStatement(*AssignStatement) R
	VisitIfStatement(*IfStatement) R
	VisitReturnStatement(*ReturnStatement) R

	VisitIdentifier(*Identifier) R
	VisitNumberLiteral(*NumberLiteral) R
	VisitStringLiteral(*StringLiteral) R
	VisitBooleanLiteral(*BooleanLiteral) R
	VisitNullLiteral(*NullLiteral) R
	VisitArrayLiteral(*ArrayLiteral) R
	VisitObjectLiteral(*ObjectLiteral) R
	VisitIndexExpression(*IndexExpression) R
	VisitMemberExpression(*MemberExpression) R
	VisitFunctionLiteral(*FunctionLiteral) R
	VisitCallExpression(*CallExpression) R
	VisitOperateExpression(*OperateExpression) R
	VisitCompareExpression(*CompareExpression) R
}

// Accept dispatches node to the matching Visit method of v.
func Accept[R any](node Node, v Visitor[R]) R {
	switch n := node.(type) {
	case *Module:
		return v.VisitModule(n)
	case *BlockStatement:
		return v.VisitBlockStatement(n)
	case *ExpressionStatement:
		return v.VisitExpressionStatement(n)
	case *DeclareStatement:
		return v.VisitDeclareStatement(n)
	case *AssignStatement:
		return v.VisitAssignStatement(n)
	case *IfStatement:
		return v.VisitIfStatement(n)
	case *ReturnStatement:
		return v.VisitReturnStatement(n)
	case *Identifier:
		return v.VisitIdentifier(n)
	case *NumberLiteral:
		return v.VisitNumberLiteral(n)
	case *StringLiteral:
		return v.VisitStringLiteral(n)
	case *BooleanLiteral:
		return v.VisitBooleanLiteral(n)
	case *NullLiteral:
		return v.VisitNullLiteral(n)
	case *ArrayLiteral:
		return v.VisitArrayLiteral(n)
	case *ObjectLiteral:
		return v.VisitObjectLiteral(n)
	case *IndexExpression:
		return v.VisitIndexExpression(n)
	case *MemberExpression:
		return v.VisitMemberExpression(n)
	case *FunctionLiteral:
		return v.VisitFunctionLiteral(n)
	case *CallExpression:
		return v.VisitCallExpression(n)
	case *OperateExpression:
		return v.VisitOperateExpression(n)
	case *CompareExpression:
		return v.VisitCompareExpression(n)
	}
	panic(fmt.Sprintf("ast: unhandled node type %T", node))
}

// Module is the root node of every AST the parser produces.
type Module struct {
	File       string // Source file path
	Statements []Statement
}

func (m *Module) node() {}
func (m *Module) TokenLiteral() string {
	if len(m.Statements) > 0 {
		return m.Statements[0].TokenLiteral()
	}
	return ""
}
func (m *Module) GetToken() token.Token {
	if len(m.Statements) > 0 {
		return m.Statements[0].GetToken()
	}
	return token.Token{}
}

// Identifier is a name reference.
type Identifier struct {
	Token token.Token // the token.NAME token
	Value string
}

func (i *Identifier) node()                 {}
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// NumberLiteral is an unsigned integer literal.
type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (nl *NumberLiteral) node()                 {}
func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

// StringLiteral holds the string content without its quotes.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) node()                 {}
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral represents true/false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) node()                 {}
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// NullLiteral represents null.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) node()                 {}
func (n *NullLiteral) expressionNode()       {}
func (n *NullLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token { return n.Token }

// ArrayLiteral represents [a, b, c].
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) node()                 {}
func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// ObjectField is one key: value pair of an object literal.
type ObjectField struct {
	Token token.Token // the key token
	Key   string
	Value Expression
}

// ObjectLiteral represents {k: v, ...}. Fields keep first-occurrence order;
// a repeated key replaces the earlier value in place.
type ObjectLiteral struct {
	Token  token.Token // The '{' token
	Fields []*ObjectField
}

func (ol *ObjectLiteral) node()                 {}
func (ol *ObjectLiteral) expressionNode()       {}
func (ol *ObjectLiteral) TokenLiteral() string  { return ol.Token.Lexeme }
func (ol *ObjectLiteral) GetToken() token.Token { return ol.Token }

// Set adds or replaces a field.
func (ol *ObjectLiteral) Set(field *ObjectField) {
	for i, f := range ol.Fields {
		if f.Key == field.Key {
			ol.Fields[i] = field
			return
		}
	}
	ol.Fields = append(ol.Fields, field)
}
