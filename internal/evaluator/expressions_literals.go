package evaluator

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/diagnostics"
)

func (v *evalVisitor) VisitNumberLiteral(node *ast.NumberLiteral) Object {
	return &Integer{Value: node.Value}
}

func (v *evalVisitor) VisitStringLiteral(node *ast.StringLiteral) Object {
	return &String{Value: node.Value}
}

func (v *evalVisitor) VisitBooleanLiteral(node *ast.BooleanLiteral) Object {
	return nativeBoolToBooleanObject(node.Value)
}

func (v *evalVisitor) VisitNullLiteral(node *ast.NullLiteral) Object {
	return NULL
}

func (v *evalVisitor) VisitIdentifier(node *ast.Identifier) Object {
	if val, ok := v.env.Get(node.Value); ok {
		return val
	}
	return newError(diagnostics.ErrR001, node.Value)
}

func (v *evalVisitor) VisitArrayLiteral(node *ast.ArrayLiteral) Object {
	elements, err := v.evalExpressions(node.Elements)
	if err != nil {
		return err
	}
	return &Array{Elements: elements}
}

func (v *evalVisitor) VisitObjectLiteral(node *ast.ObjectLiteral) Object {
	hash := NewHash()
	for _, field := range node.Fields {
		val := v.eval(field.Value)
		if isError(val) {
			return val
		}
		hash.Set(field.Key, val)
	}
	return hash
}

// VisitFunctionLiteral creates a closure over the current scope. A named
// function is also bound under its name in the current scope.
func (v *evalVisitor) VisitFunctionLiteral(node *ast.FunctionLiteral) Object {
	fn := &Function{Node: node, Env: v.env}
	if node.Name != nil {
		v.env.Declare(node.Name.Value, fn)
	}
	return fn
}

// evalExpressions evaluates exprs left to right, stopping at the first error.
func (v *evalVisitor) evalExpressions(exprs []ast.Expression) ([]Object, Object) {
	result := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		val := v.eval(expr)
		if isError(val) {
			return nil, val
		}
		result = append(result, val)
	}
	return result, nil
}
