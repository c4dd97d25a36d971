package evaluator

import (
	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/token"
)

// ThisName is bound to the receiver inside a function called through
// member access.
const ThisName = "this"

// VisitCallExpression evaluates the callee, then every argument left to
// right, then applies the callee.
func (v *evalVisitor) VisitCallExpression(node *ast.CallExpression) Object {
	callee := v.eval(node.Function)
	if isError(callee) {
		return callee
	}
	if _, ok := callee.(Callable); !ok {
		err := newError(diagnostics.ErrR004, TypeName(callee))
		err.Token = node.Function.GetToken()
		return err
	}

	args, errObj := v.evalExpressions(node.Arguments)
	if errObj != nil {
		return errObj
	}
	return v.e.apply(callee, args, node.Token)
}

// ApplyFunction calls fn with already evaluated arguments. It is the entry
// point for hosts and builtins that call back into scripts.
func (e *Evaluator) ApplyFunction(fn Object, args ...Object) Object {
	return e.apply(fn, args, token.Token{})
}

func (e *Evaluator) apply(fn Object, args []Object, site token.Token) Object {
	switch f := fn.(type) {
	case *Function:
		return e.callFunction(f, nil, args, site)
	case *Builtin:
		return e.callBuiltin(f, NULL, args)
	case *BoundMethod:
		switch inner := f.Function.(type) {
		case *Function:
			return e.callFunction(inner, f.Receiver, args, site)
		case *Builtin:
			return e.callBuiltin(inner, f.Receiver, args)
		}
	}
	return newError(diagnostics.ErrR004, TypeName(fn))
}

// callFunction runs a closure body in a new scope enclosed by the closure's
// captured scope. Missing arguments are bound to null; extra arguments are
// ignored.
func (e *Evaluator) callFunction(fn *Function, recv Object, args []Object, site token.Token) Object {
	env := NewEnclosedEnvironment(fn.Env)
	if recv != nil {
		env.Declare(ThisName, recv)
	}
	for i, param := range fn.Node.Parameters {
		if i < len(args) {
			env.Declare(param.Value, args[i])
		} else {
			env.Declare(param.Value, NULL)
		}
	}

	e.PushCall(fn.Name(), site.Line, site.Column)
	defer e.PopCall()

	res := e.Eval(fn.Node.Body, env)
	if err, ok := res.(*Error); ok {
		e.attachStack(err)
	}
	return res
}

func (e *Evaluator) callBuiltin(b *Builtin, recv Object, args []Object) Object {
	res := b.Fn(e, recv, args...)
	if res == nil {
		return NULL
	}
	return res
}
