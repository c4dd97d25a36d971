package evaluator

import (
	"strings"
)

// arrayMethods are reached through member access on arrays and always
// called as bound methods.
var arrayMethods = map[string]*Builtin{
	"push": {Name: "push", Fn: arrayPush},
	"pop":  {Name: "pop", Fn: arrayPop},
	"join": {Name: "join", Fn: arrayJoin},
}

// arrayPush appends its arguments and returns the new length.
func arrayPush(e *Evaluator, recv Object, args ...Object) Object {
	arr, ok := recv.(*Array)
	if !ok {
		return typeError("push called on %s", TypeName(recv))
	}
	arr.Elements = append(arr.Elements, args...)
	return &Integer{Value: int64(len(arr.Elements))}
}

// arrayPop removes and returns the last element, or null when empty.
func arrayPop(e *Evaluator, recv Object, args ...Object) Object {
	arr, ok := recv.(*Array)
	if !ok {
		return typeError("pop called on %s", TypeName(recv))
	}
	if len(arr.Elements) == 0 {
		return NULL
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last
}

// arrayJoin concatenates the elements with a separator (default ",").
func arrayJoin(e *Evaluator, recv Object, args ...Object) Object {
	arr, ok := recv.(*Array)
	if !ok {
		return typeError("join called on %s", TypeName(recv))
	}
	sep := ","
	if len(args) > 0 {
		s, ok := args[0].(*String)
		if !ok {
			return typeError("join separator must be a string, got %s", TypeName(args[0]))
		}
		sep = s.Value
	}
	parts := make([]string, len(arr.Elements))
	for i, el := range arr.Elements {
		if _, isNull := el.(*Null); isNull {
			continue
		}
		parts[i] = el.Inspect()
	}
	return &String{Value: strings.Join(parts, sep)}
}
