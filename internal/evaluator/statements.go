package evaluator

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/diagnostics"
)

// VisitDeclareStatement binds a new name in the current scope. The
// initializer is evaluated before the binding exists, so it cannot refer
// to the name being declared.
func (v *evalVisitor) VisitDeclareStatement(node *ast.DeclareStatement) Object {
	name := node.Name.Value
	if v.env.Includes(name) {
		err := newError(diagnostics.ErrR002, name)
		err.Token = node.Name.Token
		return err
	}

	val := v.eval(node.Value)
	if isError(val) {
		return val
	}
	v.env.Declare(name, val)
	return NULL
}

func (v *evalVisitor) VisitAssignStatement(node *ast.AssignStatement) Object {
	val := v.eval(node.Value)
	if isError(val) {
		return val
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		if !v.env.Set(target.Value, val) {
			err := newError(diagnostics.ErrR001, target.Value)
			err.Token = target.Token
			return err
		}
	case *ast.MemberExpression:
		obj := v.eval(target.Left)
		if isError(obj) {
			return obj
		}
		if res := v.e.setMember(obj, target.Member.Value, val); isError(res) {
			return res
		}
	case *ast.IndexExpression:
		obj := v.eval(target.Left)
		if isError(obj) {
			return obj
		}
		index := v.eval(target.Index)
		if isError(index) {
			return index
		}
		if res := v.e.setIndex(obj, index, val); isError(res) {
			return res
		}
	default:
		return newError(diagnostics.ErrP003, "expression")
	}
	return NULL
}

// VisitIfStatement runs the first branch whose test is true, or the else
// block, in a new child scope. Tests must be booleans.
func (v *evalVisitor) VisitIfStatement(node *ast.IfStatement) Object {
	for _, branch := range node.Branches {
		test := v.eval(branch.Test)
		if isError(test) {
			return test
		}
		b, ok := test.(*Boolean)
		if !ok {
			err := typeError("if condition must be a boolean, got %s", TypeName(test))
			err.Token = branch.Test.GetToken()
			return err
		}
		if b.Value {
			return v.e.Eval(branch.Block, NewEnclosedEnvironment(v.env))
		}
	}
	if node.Else != nil {
		return v.e.Eval(node.Else, NewEnclosedEnvironment(v.env))
	}
	return NULL
}

// VisitReturnStatement yields its value. There is no early exit: the value
// only becomes the function result when the return is the last statement
// evaluated in the body.
func (v *evalVisitor) VisitReturnStatement(node *ast.ReturnStatement) Object {
	if node.Value == nil {
		return NULL
	}
	return v.eval(node.Value)
}

// VisitBlockStatement evaluates statements in the current scope; callers
// that need a new scope create it.
func (v *evalVisitor) VisitBlockStatement(node *ast.BlockStatement) Object {
	var result Object = NULL
	for _, stmt := range node.Statements {
		result = v.eval(stmt)
		if isError(result) {
			return result
		}
	}
	return result
}
