package analyzer

import (
	"fmt"
	"strings"

	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/typesystem"
)

// Inferencer is a single-pass, flow-sensitive approximation of the types a
// program manipulates. It never unifies: every call site adds the argument
// and result types it observes to the callee's FunctionType, so a parameter
// may end up with several possible types. Names it cannot learn anything
// about stay unresolved.
type Inferencer struct {
	closures map[*typesystem.FunctionType]*TypeEnv
	active   map[*ast.FunctionLiteral]bool
	calls    map[callKey]typesystem.Type
}

// callKey identifies a call by its callee and the argument types it was
// made with. A repeated call adds nothing to the callee's FunctionType, so
// its result is reused instead of inferring the body again.
type callKey struct {
	fn   *typesystem.FunctionType
	args string
}

func newCallKey(fn *typesystem.FunctionType, args []typesystem.Type) callKey {
	var b strings.Builder
	for i, t := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		writeArgKey(&b, t)
	}
	return callKey{fn: fn, args: b.String()}
}

// writeArgKey writes functions by identity, since two closures may print
// the same and still infer differently.
func writeArgKey(b *strings.Builder, t typesystem.Type) {
	switch v := t.(type) {
	case *typesystem.FunctionType:
		fmt.Fprintf(b, "fn@%p", v)
	case *typesystem.TypeSet:
		b.WriteByte('{')
		for i, m := range v.Members() {
			if i > 0 {
				b.WriteByte('|')
			}
			writeArgKey(b, m)
		}
		b.WriteByte('}')
	default:
		b.WriteString(typesystem.Render(t, nil))
	}
}

func NewInferencer() *Inferencer {
	return &Inferencer{
		closures: make(map[*typesystem.FunctionType]*TypeEnv),
		active:   make(map[*ast.FunctionLiteral]bool),
		calls:    make(map[callKey]typesystem.Type),
	}
}

// InferModule walks module in a fresh root scope and returns that scope.
func (in *Inferencer) InferModule(module *ast.Module) *TypeEnv {
	root := NewTypeEnv(nil)
	ast.Accept[typesystem.Type](module, &inferVisitor{in: in, env: root})
	return root
}

type inferVisitor struct {
	in  *Inferencer
	env *TypeEnv
}

var _ ast.Visitor[typesystem.Type] = (*inferVisitor)(nil)

func (v *inferVisitor) infer(node ast.Node) typesystem.Type {
	return ast.Accept[typesystem.Type](node, v)
}

func (v *inferVisitor) inScope(env *TypeEnv) *inferVisitor {
	return &inferVisitor{in: v.in, env: env}
}

// refine records t for a name whose type is still unresolved.
func (v *inferVisitor) refine(expr ast.Expression, t typesystem.Type) {
	ident, ok := expr.(*ast.Identifier)
	if !ok || typesystem.IsUnresolved(t) {
		return
	}
	if cur, ok := v.env.Get(ident.Value); ok && typesystem.IsUnresolved(cur) {
		v.env.Set(ident.Value, t)
	}
}

// inferBody infers fn's body in a scope enclosed by the scope fn was
// created in. args are the argument types of a call, or nil when the body
// is inferred at the definition. A function is never re-entered while its
// body is being inferred, and a call repeating an earlier argument tuple
// reuses that call's result.
func (in *Inferencer) inferBody(fn *typesystem.FunctionType, args []typesystem.Type) typesystem.Type {
	if in.active[fn.Node] {
		return typesystem.Unresolved
	}
	var key callKey
	if args != nil {
		key = newCallKey(fn, args)
		if ret, ok := in.calls[key]; ok {
			return ret
		}
	}
	in.active[fn.Node] = true
	defer delete(in.active, fn.Node)

	env := NewTypeEnv(in.closures[fn])
	for i, param := range fn.Node.Parameters {
		var t typesystem.Type = typesystem.Unresolved
		if args != nil {
			t = typesystem.Null
			if i < len(args) {
				t = args[i]
			}
		}
		env.Declare(param.Value, t)
	}

	ret := ast.Accept[typesystem.Type](fn.Node.Body, &inferVisitor{in: in, env: env})

	for _, name := range fn.Params {
		if t, ok := env.Get(name); ok {
			fn.AddArgType(name, t)
		}
	}
	fn.AddReturnType(ret)
	if args != nil {
		in.calls[key] = ret
	}
	return ret
}

func (v *inferVisitor) VisitModule(node *ast.Module) typesystem.Type {
	for _, stmt := range node.Statements {
		v.infer(stmt)
	}
	return typesystem.Null
}

func (v *inferVisitor) VisitBlockStatement(node *ast.BlockStatement) typesystem.Type {
	var result typesystem.Type = typesystem.Null
	for _, stmt := range node.Statements {
		result = v.infer(stmt)
	}
	return result
}

func (v *inferVisitor) VisitExpressionStatement(node *ast.ExpressionStatement) typesystem.Type {
	return v.infer(node.Expression)
}

func (v *inferVisitor) VisitDeclareStatement(node *ast.DeclareStatement) typesystem.Type {
	v.env.Declare(node.Name.Value, v.infer(node.Value))
	return typesystem.Null
}

func (v *inferVisitor) VisitAssignStatement(node *ast.AssignStatement) typesystem.Type {
	t := v.infer(node.Value)
	switch target := node.Target.(type) {
	case *ast.Identifier:
		if !typesystem.IsUnresolved(t) {
			v.env.Set(target.Value, t)
		}
	case *ast.MemberExpression:
		v.infer(target.Left)
	case *ast.IndexExpression:
		v.infer(target.Left)
		v.infer(target.Index)
	}
	return typesystem.Null
}

func (v *inferVisitor) VisitIfStatement(node *ast.IfStatement) typesystem.Type {
	var results []typesystem.Type
	for _, branch := range node.Branches {
		v.infer(branch.Test)
		v.refine(branch.Test, typesystem.Boolean)
		results = append(results, v.inScope(NewTypeEnv(v.env)).infer(branch.Block))
	}
	if node.Else != nil {
		results = append(results, v.inScope(NewTypeEnv(v.env)).infer(node.Else))
	} else {
		results = append(results, typesystem.Null)
	}
	return typesystem.Union(results...)
}

func (v *inferVisitor) VisitReturnStatement(node *ast.ReturnStatement) typesystem.Type {
	if node.Value == nil {
		return typesystem.Null
	}
	return v.infer(node.Value)
}

func (v *inferVisitor) VisitIdentifier(node *ast.Identifier) typesystem.Type {
	if t, ok := v.env.Get(node.Value); ok {
		return t
	}
	return typesystem.Unresolved
}

func (v *inferVisitor) VisitNumberLiteral(node *ast.NumberLiteral) typesystem.Type {
	return typesystem.Number
}

func (v *inferVisitor) VisitStringLiteral(node *ast.StringLiteral) typesystem.Type {
	return typesystem.String
}

func (v *inferVisitor) VisitBooleanLiteral(node *ast.BooleanLiteral) typesystem.Type {
	return typesystem.Boolean
}

func (v *inferVisitor) VisitNullLiteral(node *ast.NullLiteral) typesystem.Type {
	return typesystem.Null
}

func (v *inferVisitor) VisitArrayLiteral(node *ast.ArrayLiteral) typesystem.Type {
	for _, el := range node.Elements {
		v.infer(el)
	}
	return typesystem.Array
}

func (v *inferVisitor) VisitObjectLiteral(node *ast.ObjectLiteral) typesystem.Type {
	for _, f := range node.Fields {
		v.infer(f.Value)
	}
	return typesystem.Object
}

func (v *inferVisitor) VisitIndexExpression(node *ast.IndexExpression) typesystem.Type {
	left := v.infer(node.Left)
	index := v.infer(node.Index)
	if left == typesystem.String && index == typesystem.Number {
		return typesystem.String
	}
	return typesystem.Unresolved
}

func (v *inferVisitor) VisitMemberExpression(node *ast.MemberExpression) typesystem.Type {
	left := v.infer(node.Left)
	if node.Member.Value == "length" && (left == typesystem.Array || left == typesystem.String) {
		return typesystem.Number
	}
	return typesystem.Unresolved
}

func (v *inferVisitor) VisitFunctionLiteral(node *ast.FunctionLiteral) typesystem.Type {
	fn := typesystem.NewFunctionType(node)
	v.in.closures[fn] = v.env
	if node.Name != nil {
		v.env.Declare(node.Name.Value, fn)
	}
	v.in.inferBody(fn, nil)
	return fn
}

func (v *inferVisitor) VisitCallExpression(node *ast.CallExpression) typesystem.Type {
	callee := v.infer(node.Function)
	args := make([]typesystem.Type, len(node.Arguments))
	for i, arg := range node.Arguments {
		args[i] = v.infer(arg)
	}

	switch c := callee.(type) {
	case *typesystem.FunctionType:
		return v.in.inferBody(c, args)
	case *typesystem.TypeSet:
		var results []typesystem.Type
		for _, m := range c.Members() {
			if fn, ok := m.(*typesystem.FunctionType); ok {
				results = append(results, v.in.inferBody(fn, args))
			}
		}
		return typesystem.Union(results...)
	}
	return typesystem.Unresolved
}

func (v *inferVisitor) VisitOperateExpression(node *ast.OperateExpression) typesystem.Type {
	left := v.infer(node.Left)
	right := v.infer(node.Right)

	if node.Unary {
		v.refine(node.Right, typesystem.Number)
		return typesystem.Number
	}

	if node.Operator != "+" {
		v.refine(node.Left, typesystem.Number)
		v.refine(node.Right, typesystem.Number)
		return typesystem.Number
	}

	switch {
	case left == typesystem.String || right == typesystem.String:
		return typesystem.String
	case left == typesystem.Number && right == typesystem.Number:
		return typesystem.Number
	case typesystem.IsUnresolved(left) && isScalar(right):
		v.refine(node.Left, right)
		return right
	case typesystem.IsUnresolved(right) && isScalar(left):
		v.refine(node.Right, left)
		return left
	}
	return typesystem.Unresolved
}

func (v *inferVisitor) VisitCompareExpression(node *ast.CompareExpression) typesystem.Type {
	left := v.infer(node.Left)
	right := v.infer(node.Right)
	if isScalar(right) {
		v.refine(node.Left, right)
	}
	if isScalar(left) {
		v.refine(node.Right, left)
	}
	return typesystem.Boolean
}

// isScalar reports whether t is a number or a string, the only types
// arithmetic and ordering propagate between operands.
func isScalar(t typesystem.Type) bool {
	return t == typesystem.Number || t == typesystem.String
}
