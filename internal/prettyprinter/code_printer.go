package prettyprinter

import (
	"strconv"
	"strings"

	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/config"
)

// --- Code Printer (Output looks like source code) ---

// Precedence levels (higher = binds tighter). They mirror the parser's
// call chain.
const (
	precLowest = iota
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

var operatorPrecedence = map[string]int{
	"==": precComparison,
	"!=": precComparison,
	"<":  precComparison,
	"<=": precComparison,
	">":  precComparison,
	">=": precComparison,
	"+":  precAdditive,
	"-":  precAdditive,
	"*":  precMultiplicative,
	"/":  precMultiplicative,
	"%":  precMultiplicative,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return precPrimary
}

// CodePrinter renders an AST as canonical source. It is a value type: the
// indent depth and the precedence context travel with each copy, so the
// printer holds no state between calls.
type CodePrinter struct {
	depth      int
	parentPrec int
	isRight    bool
}

var _ ast.Visitor[string] = CodePrinter{}

// Print renders node at indent depth zero.
func Print(node ast.Node) string {
	return ast.Accept[string](node, CodePrinter{})
}

func indent(depth int) string {
	return strings.Repeat(" ", depth*config.IndentWidth)
}

// expr prints an expression in the context of a parent with precedence
// prec. isRight marks the right operand of a left-associative operator.
func (p CodePrinter) expr(e ast.Expression, prec int, isRight bool) string {
	return ast.Accept[string](e, CodePrinter{depth: p.depth, parentPrec: prec, isRight: isRight})
}

// wrap adds parentheses when an expression of precedence prec would
// otherwise bind differently in the current context.
func (p CodePrinter) wrap(prec int, s string) string {
	if prec < p.parentPrec || (prec == p.parentPrec && p.isRight) {
		return "(" + s + ")"
	}
	return s
}

// block prints `{ ... }` with statements one level deeper than p.
func (p CodePrinter) block(b *ast.BlockStatement) string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	inner := CodePrinter{depth: p.depth + 1}
	var out strings.Builder
	out.WriteString("{\n")
	for _, stmt := range b.Statements {
		out.WriteString(indent(inner.depth))
		out.WriteString(inner.statement(stmt))
		out.WriteString("\n")
	}
	out.WriteString(indent(p.depth))
	out.WriteString("}")
	return out.String()
}

func (p CodePrinter) statement(s ast.Statement) string {
	return ast.Accept[string](s, CodePrinter{depth: p.depth})
}

// statementExpr prints an expression in statement-leading position, where
// a leading '{' would be read back as a block.
func (p CodePrinter) statementExpr(e ast.Expression) string {
	s := p.expr(e, precLowest, false)
	if strings.HasPrefix(s, "{") {
		return "(" + s + ")"
	}
	return s
}

func (p CodePrinter) VisitModule(node *ast.Module) string {
	if len(node.Statements) == 0 {
		return ""
	}
	var out strings.Builder
	for _, stmt := range node.Statements {
		out.WriteString(p.statement(stmt))
		out.WriteString("\n")
	}
	return out.String()
}

func (p CodePrinter) VisitBlockStatement(node *ast.BlockStatement) string {
	return p.block(node)
}

func (p CodePrinter) VisitExpressionStatement(node *ast.ExpressionStatement) string {
	return p.statementExpr(node.Expression)
}

func (p CodePrinter) VisitDeclareStatement(node *ast.DeclareStatement) string {
	keyword := "var"
	if node.IsConst {
		keyword = "const"
	}
	return keyword + " " + node.Name.Value + " = " + p.expr(node.Value, precLowest, false)
}

func (p CodePrinter) VisitAssignStatement(node *ast.AssignStatement) string {
	return p.statementExpr(node.Target) + " = " + p.expr(node.Value, precLowest, false)
}

func (p CodePrinter) VisitIfStatement(node *ast.IfStatement) string {
	var out strings.Builder
	for i, branch := range node.Branches {
		if i > 0 {
			out.WriteString(" else ")
		}
		out.WriteString("if (")
		out.WriteString(p.expr(branch.Test, precLowest, false))
		out.WriteString(") ")
		out.WriteString(p.block(branch.Block))
	}
	if node.Else != nil {
		out.WriteString(" else ")
		out.WriteString(p.block(node.Else))
	}
	return out.String()
}

func (p CodePrinter) VisitReturnStatement(node *ast.ReturnStatement) string {
	if node.Value == nil {
		return "return"
	}
	return "return " + p.expr(node.Value, precLowest, false)
}

func (p CodePrinter) VisitIdentifier(node *ast.Identifier) string {
	return node.Value
}

func (p CodePrinter) VisitNumberLiteral(node *ast.NumberLiteral) string {
	return strconv.FormatInt(node.Value, 10)
}

func (p CodePrinter) VisitStringLiteral(node *ast.StringLiteral) string {
	return quote(node.Value)
}

// quote delimits s with double quotes unless s contains one. String
// literals have no escapes, so s never contains both kinds.
func quote(s string) string {
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

func (p CodePrinter) VisitBooleanLiteral(node *ast.BooleanLiteral) string {
	return strconv.FormatBool(node.Value)
}

func (p CodePrinter) VisitNullLiteral(node *ast.NullLiteral) string {
	return "null"
}

func (p CodePrinter) VisitArrayLiteral(node *ast.ArrayLiteral) string {
	parts := make([]string, len(node.Elements))
	for i, el := range node.Elements {
		parts[i] = p.expr(el, precLowest, false)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p CodePrinter) VisitObjectLiteral(node *ast.ObjectLiteral) string {
	if len(node.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(node.Fields))
	for i, f := range node.Fields {
		parts[i] = objectKey(f.Key) + ": " + p.expr(f.Value, precLowest, false)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// objectKey prints a key bare when it lexes as a name or keyword.
func objectKey(key string) string {
	if key == "" {
		return quote(key)
	}
	for i, r := range key {
		letter := r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
		digit := '0' <= r && r <= '9'
		if !letter && !(digit && i > 0) {
			return quote(key)
		}
	}
	return key
}

func (p CodePrinter) VisitIndexExpression(node *ast.IndexExpression) string {
	s := p.expr(node.Left, precPostfix, false) + "[" + p.expr(node.Index, precLowest, false) + "]"
	return p.wrap(precPostfix, s)
}

func (p CodePrinter) VisitMemberExpression(node *ast.MemberExpression) string {
	s := p.expr(node.Left, precPostfix, false) + "." + node.Member.Value
	return p.wrap(precPostfix, s)
}

func (p CodePrinter) VisitCallExpression(node *ast.CallExpression) string {
	args := make([]string, len(node.Arguments))
	for i, arg := range node.Arguments {
		args[i] = p.expr(arg, precLowest, false)
	}
	s := p.expr(node.Function, precPostfix, false) + "(" + strings.Join(args, ", ") + ")"
	return p.wrap(precPostfix, s)
}

func (p CodePrinter) VisitFunctionLiteral(node *ast.FunctionLiteral) string {
	var out strings.Builder
	out.WriteString("function")
	if node.Name != nil {
		out.WriteString(" ")
		out.WriteString(node.Name.Value)
	}
	params := make([]string, len(node.Parameters))
	for i, param := range node.Parameters {
		params[i] = param.Value
	}
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(p.block(node.Body))
	return out.String()
}

func (p CodePrinter) VisitOperateExpression(node *ast.OperateExpression) string {
	if node.Unary {
		return p.wrap(precUnary, node.Operator+p.expr(node.Right, precUnary, false))
	}
	prec := getPrecedence(node.Operator)
	s := p.expr(node.Left, prec, false) + " " + node.Operator + " " + p.expr(node.Right, prec, true)
	return p.wrap(prec, s)
}

func (p CodePrinter) VisitCompareExpression(node *ast.CompareExpression) string {
	prec := getPrecedence(node.Operator)
	s := p.expr(node.Left, prec, false) + " " + node.Operator + " " + p.expr(node.Right, prec, true)
	return p.wrap(prec, s)
}
