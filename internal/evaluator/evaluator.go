package evaluator

import (
	"reflect"

	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/config"
	"github.com/funvibe/gl/internal/diagnostics"
)

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name   string // Function name
	File   string // Source file
	Line   int    // Line number of the call site
	Column int    // Column number of the call site
}

type Evaluator struct {
	// MaxDepth bounds the nesting of Eval calls. Exceeding it fails the run
	// with a stack-exhaustion error instead of overflowing the Go stack.
	MaxDepth int

	// CallStack for stack traces on errors
	CallStack []CallFrame
	// CurrentFile being evaluated
	CurrentFile string

	// HostCallHandler calls a reflected Go method (injected from embed).
	HostCallHandler func(reflect.Value, []Object) (Object, error)
	// HostToValueHandler converts Go values to Objects (injected from embed).
	HostToValueHandler func(interface{}) (Object, error)
	// HostFromValueHandler converts an Object to a Go value of the given type.
	HostFromValueHandler func(Object, reflect.Type) (reflect.Value, error)

	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{MaxDepth: config.DefaultMaxDepth}
}

// Eval evaluates node in env. Failures are returned as *Error values.
func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	e.evalDepth++
	defer func() { e.evalDepth-- }()

	limit := e.MaxDepth
	if limit <= 0 {
		limit = config.DefaultMaxDepth
	}
	if e.evalDepth > limit {
		err := newError(diagnostics.ErrR005, limit)
		err.Token = node.GetToken()
		e.attachStack(err)
		return err
	}

	obj := ast.Accept[Object](node, &evalVisitor{e: e, env: env})
	if err, ok := obj.(*Error); ok && err.Token.Line == 0 {
		err.Token = node.GetToken()
	}
	return obj
}

// EvalProgram evaluates every top-level statement of module in env and
// returns the value of the last one. Module evaluation itself yields null;
// this entry point exists for hosts that want to show a result.
func (e *Evaluator) EvalProgram(module *ast.Module, env *Environment) Object {
	var result Object = NULL
	for _, stmt := range module.Statements {
		result = e.Eval(stmt, env)
		if isError(result) {
			return result
		}
	}
	return result
}

// evalVisitor evaluates one node against one environment. A new visitor
// is created for every environment switch so the walk holds no shared
// mutable state.
type evalVisitor struct {
	e   *Evaluator
	env *Environment
}

var _ ast.Visitor[Object] = (*evalVisitor)(nil)

func (v *evalVisitor) eval(node ast.Node) Object {
	return v.e.Eval(node, v.env)
}

func (v *evalVisitor) VisitModule(node *ast.Module) Object {
	for _, stmt := range node.Statements {
		if res := v.eval(stmt); isError(res) {
			return res
		}
	}
	return NULL
}

func (v *evalVisitor) VisitExpressionStatement(node *ast.ExpressionStatement) Object {
	return v.eval(node.Expression)
}
