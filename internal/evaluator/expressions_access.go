package evaluator

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/funvibe/gl/internal/ast"
	"github.com/funvibe/gl/internal/config"
)

func (v *evalVisitor) VisitMemberExpression(node *ast.MemberExpression) Object {
	obj := v.eval(node.Left)
	if isError(obj) {
		return obj
	}
	res := v.e.getMember(obj, node.Member.Value)
	if err, ok := res.(*Error); ok && err.Token.Line == 0 {
		err.Token = node.Member.Token
	}
	return res
}

func (v *evalVisitor) VisitIndexExpression(node *ast.IndexExpression) Object {
	obj := v.eval(node.Left)
	if isError(obj) {
		return obj
	}
	index := v.eval(node.Index)
	if isError(index) {
		return index
	}
	return v.e.getIndex(obj, index)
}

// getMember reads obj.name. Callables read this way are bound to obj.
// A missing property reads as null.
func (e *Evaluator) getMember(obj Object, name string) Object {
	switch o := obj.(type) {
	case *Hash:
		val, ok := o.Get(name)
		if !ok {
			return NULL
		}
		return bindReceiver(o, val)
	case *Array:
		if name == "length" {
			return &Integer{Value: int64(len(o.Elements))}
		}
		if method, ok := arrayMethods[name]; ok {
			return &BoundMethod{Receiver: o, Function: method}
		}
		return NULL
	case *String:
		if name == "length" {
			return &Integer{Value: int64(utf8.RuneCountInString(o.Value))}
		}
		return NULL
	case *HostObject:
		return bindReceiver(o, e.AccessHostMember(o, name))
	}
	return typeError("cannot read property %q of %s", name, TypeName(obj))
}

func (e *Evaluator) setMember(obj Object, name string, val Object) Object {
	switch o := obj.(type) {
	case *Hash:
		o.Set(name, val)
		return NULL
	case *HostObject:
		return e.SetHostMember(o, name, val)
	}
	return typeError("cannot set property %q of %s", name, TypeName(obj))
}

// getIndex reads obj[index]. A string index reads a property; a number
// indexes arrays and strings. Out-of-range reads yield null.
func (e *Evaluator) getIndex(obj Object, index Object) Object {
	if key, ok := index.(*String); ok {
		if !isIndexable(obj) {
			return typeError("cannot index %s with a string", TypeName(obj))
		}
		return e.getMember(obj, key.Value)
	}

	switch o := obj.(type) {
	case *Array:
		i, ok := indexValue(index)
		if !ok {
			return typeError("array index must be an integer, got %s", TypeName(index))
		}
		if i < 0 || i >= int64(len(o.Elements)) {
			return NULL
		}
		return o.Elements[i]
	case *String:
		i, ok := indexValue(index)
		if !ok {
			return typeError("string index must be an integer, got %s", TypeName(index))
		}
		runes := []rune(o.Value)
		if i < 0 || i >= int64(len(runes)) {
			return NULL
		}
		return &String{Value: string(runes[i])}
	case *Hash:
		key, ok := hashKey(index)
		if !ok {
			return typeError("object key must be a string or number, got %s", TypeName(index))
		}
		return e.getMember(o, key)
	}
	return typeError("cannot index %s", TypeName(obj))
}

// setIndex writes obj[index] = val. Writing past the end of an array grows
// it, filling the gap with null, up to config.MaxArrayLength elements.
func (e *Evaluator) setIndex(obj Object, index Object, val Object) Object {
	switch o := obj.(type) {
	case *Array:
		i, ok := indexValue(index)
		if !ok || i < 0 {
			return typeError("invalid array index %s", index.Inspect())
		}
		if i >= config.MaxArrayLength {
			return typeError("array index %d exceeds the maximum array length %d", i, config.MaxArrayLength)
		}
		if n := int(i) + 1; n > len(o.Elements) {
			grown := make([]Object, n)
			copy(grown, o.Elements)
			for k := len(o.Elements); k < n; k++ {
				grown[k] = NULL
			}
			o.Elements = grown
		}
		o.Elements[i] = val
		return NULL
	case *Hash:
		key, ok := hashKey(index)
		if !ok {
			return typeError("object key must be a string or number, got %s", TypeName(index))
		}
		o.Set(key, val)
		return NULL
	case *HostObject:
		if key, ok := index.(*String); ok {
			return e.SetHostMember(o, key.Value, val)
		}
	}
	return typeError("cannot assign index of %s", TypeName(obj))
}

func isIndexable(obj Object) bool {
	switch obj.(type) {
	case *Array, *String, *Hash, *HostObject:
		return true
	}
	return false
}

// indexValue accepts integers and whole floats.
func indexValue(index Object) (int64, bool) {
	switch i := index.(type) {
	case *Integer:
		return i.Value, true
	case *Float:
		if i.Value == math.Trunc(i.Value) && !math.IsInf(i.Value, 0) {
			return int64(i.Value), true
		}
	}
	return 0, false
}

func hashKey(index Object) (string, bool) {
	switch k := index.(type) {
	case *String:
		return k.Value, true
	case *Integer:
		return strconv.FormatInt(k.Value, 10), true
	case *Float:
		return formatFloat(k.Value), true
	}
	return "", false
}
