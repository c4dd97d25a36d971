package prettyprinter

import (
	"strconv"
	"strings"

	"github.com/funvibe/gl/internal/ast"
)

// --- Tree Printer (Debug output showing AST structure) ---

// TreePrinter renders one line per node, children indented two spaces
// below their parent.
type TreePrinter struct {
	depth int
}

var _ ast.Visitor[string] = TreePrinter{}

// PrintTree renders the structure of node.
func PrintTree(node ast.Node) string {
	return ast.Accept[string](node, TreePrinter{})
}

func (p TreePrinter) line(label string, children ...ast.Node) string {
	var out strings.Builder
	out.WriteString(strings.Repeat("  ", p.depth))
	out.WriteString(label)
	out.WriteString("\n")
	child := TreePrinter{depth: p.depth + 1}
	for _, c := range children {
		out.WriteString(ast.Accept[string](c, child))
	}
	return out.String()
}

// nested renders label one level below p, followed by children.
func (p TreePrinter) nested(label string, children ...ast.Node) string {
	return TreePrinter{depth: p.depth + 1}.line(label, children...)
}

func (p TreePrinter) VisitModule(node *ast.Module) string {
	return p.line("Module", statements(node.Statements)...)
}

func (p TreePrinter) VisitBlockStatement(node *ast.BlockStatement) string {
	return p.line("Block", statements(node.Statements)...)
}

func (p TreePrinter) VisitExpressionStatement(node *ast.ExpressionStatement) string {
	return p.line("ExpressionStatement", node.Expression)
}

func (p TreePrinter) VisitDeclareStatement(node *ast.DeclareStatement) string {
	kind := "var"
	if node.IsConst {
		kind = "const"
	}
	return p.line("Declare "+kind+" "+node.Name.Value, node.Value)
}

func (p TreePrinter) VisitAssignStatement(node *ast.AssignStatement) string {
	return p.line("Assign", node.Target, node.Value)
}

func (p TreePrinter) VisitIfStatement(node *ast.IfStatement) string {
	out := p.line("If")
	for _, branch := range node.Branches {
		out += p.nested("Branch", branch.Test, branch.Block)
	}
	if node.Else != nil {
		out += p.nested("Else", node.Else)
	}
	return out
}

func (p TreePrinter) VisitReturnStatement(node *ast.ReturnStatement) string {
	if node.Value == nil {
		return p.line("Return")
	}
	return p.line("Return", node.Value)
}

func (p TreePrinter) VisitIdentifier(node *ast.Identifier) string {
	return p.line("Name " + node.Value)
}

func (p TreePrinter) VisitNumberLiteral(node *ast.NumberLiteral) string {
	return p.line("Number " + strconv.FormatInt(node.Value, 10))
}

func (p TreePrinter) VisitStringLiteral(node *ast.StringLiteral) string {
	return p.line("String " + strconv.Quote(node.Value))
}

func (p TreePrinter) VisitBooleanLiteral(node *ast.BooleanLiteral) string {
	return p.line("Boolean " + strconv.FormatBool(node.Value))
}

func (p TreePrinter) VisitNullLiteral(node *ast.NullLiteral) string {
	return p.line("Null")
}

func (p TreePrinter) VisitArrayLiteral(node *ast.ArrayLiteral) string {
	return p.line("Array", expressions(node.Elements)...)
}

func (p TreePrinter) VisitObjectLiteral(node *ast.ObjectLiteral) string {
	out := p.line("Object")
	for _, f := range node.Fields {
		out += p.nested("Field "+strconv.Quote(f.Key), f.Value)
	}
	return out
}

func (p TreePrinter) VisitIndexExpression(node *ast.IndexExpression) string {
	return p.line("Index", node.Left, node.Index)
}

func (p TreePrinter) VisitMemberExpression(node *ast.MemberExpression) string {
	return p.line("Member "+node.Member.Value, node.Left)
}

func (p TreePrinter) VisitCallExpression(node *ast.CallExpression) string {
	return p.line("Call", append([]ast.Node{node.Function}, expressions(node.Arguments)...)...)
}

func (p TreePrinter) VisitFunctionLiteral(node *ast.FunctionLiteral) string {
	params := make([]string, len(node.Parameters))
	for i, param := range node.Parameters {
		params[i] = param.Value
	}
	label := "Function "
	if node.Name != nil {
		label += node.Name.Value
	}
	return p.line(label+"("+strings.Join(params, ", ")+")", node.Body)
}

func (p TreePrinter) VisitOperateExpression(node *ast.OperateExpression) string {
	if node.Unary {
		return p.line("Operate "+node.Operator+" unary", node.Left, node.Right)
	}
	return p.line("Operate "+node.Operator, node.Left, node.Right)
}

func (p TreePrinter) VisitCompareExpression(node *ast.CompareExpression) string {
	return p.line("Compare "+node.Operator, node.Left, node.Right)
}

func statements(stmts []ast.Statement) []ast.Node {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}

func expressions(exprs []ast.Expression) []ast.Node {
	nodes := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
