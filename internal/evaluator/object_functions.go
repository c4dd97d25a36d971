package evaluator

import (
	"strings"

	"github.com/funvibe/gl/internal/ast"
)

// Function is a closure: a function literal paired with the environment
// that was current when the literal was evaluated. Every evaluation of the
// same literal yields a new Function.
type Function struct {
	Node *ast.FunctionLiteral
	Env  *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Node.Parameters))
	for i, p := range f.Node.Parameters {
		params[i] = p.Value
	}
	name := ""
	if f.Node.Name != nil {
		name = " " + f.Node.Name.Value
	}
	return "function" + name + "(" + strings.Join(params, ", ") + ")"
}

// Name is the declared name of the function or "anonymous".
func (f *Function) Name() string {
	return f.Node.DisplayName()
}

// BuiltinFunction is a host-provided native function. recv is the receiver
// when the function was reached through member access, NULL otherwise.
type BuiltinFunction func(e *Evaluator, recv Object, args ...Object) Object

type Builtin struct {
	Fn   BuiltinFunction
	Name string
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }

// BoundMethod pairs a callable with the receiver it was read from.
type BoundMethod struct {
	Receiver Object
	Function Callable // *Function or *Builtin
}

func (bm *BoundMethod) Type() ObjectType { return BOUND_METHOD_OBJ }
func (bm *BoundMethod) Inspect() string  { return "bound " + bm.Function.Inspect() }

// bindReceiver wraps callables read through member access. Other values
// are returned unchanged.
func bindReceiver(recv Object, v Object) Object {
	switch fn := v.(type) {
	case *Function:
		return &BoundMethod{Receiver: recv, Function: fn}
	case *Builtin:
		return &BoundMethod{Receiver: recv, Function: fn}
	}
	return v
}
