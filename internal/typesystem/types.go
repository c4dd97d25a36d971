package typesystem

import (
	"strings"

	"github.com/funvibe/gl/internal/ast"
)

// Type is the interface for all inferred types.
type Type interface {
	String() string
	isType()
}

// Tag is a simple value kind.
type Tag string

const (
	Number     Tag = "number"
	String     Tag = "string"
	Boolean    Tag = "boolean"
	Null       Tag = "null"
	Array      Tag = "array"
	Object     Tag = "object"
	Unresolved Tag = "unresolved"
)

func (t Tag) String() string { return string(t) }
func (t Tag) isType()        {}

// IsUnresolved reports whether t carries no information.
func IsUnresolved(t Type) bool {
	return t == nil || t == Unresolved
}

// FunctionType records, for one function literal, every argument type seen
// per parameter and every result type seen, across all observed calls.
type FunctionType struct {
	Node   *ast.FunctionLiteral
	Params []string
	Args   map[string]*TypeSet
	Return *TypeSet
}

func NewFunctionType(node *ast.FunctionLiteral) *FunctionType {
	ft := &FunctionType{
		Node:   node,
		Args:   make(map[string]*TypeSet, len(node.Parameters)),
		Return: NewTypeSet(),
	}
	for _, p := range node.Parameters {
		if _, dup := ft.Args[p.Value]; !dup {
			ft.Params = append(ft.Params, p.Value)
		}
		ft.Args[p.Value] = NewTypeSet()
	}
	return ft
}

func (f *FunctionType) isType() {}

// AddArgType records t as a possible type of parameter name.
func (f *FunctionType) AddArgType(name string, t Type) {
	if set, ok := f.Args[name]; ok {
		set.Add(t)
	}
}

// AddReturnType records t as a possible result.
func (f *FunctionType) AddReturnType(t Type) {
	f.Return.Add(t)
}

// String renders the signature as `(a: number|string, b: unresolved) -> number`.
func (f *FunctionType) String() string {
	return f.render(map[*FunctionType]bool{})
}

func (f *FunctionType) render(seen map[*FunctionType]bool) string {
	if seen[f] {
		return "function"
	}
	seen[f] = true
	defer delete(seen, f)

	params := make([]string, len(f.Params))
	for i, name := range f.Params {
		params[i] = name + ": " + f.Args[name].render(seen)
	}
	return "(" + strings.Join(params, ", ") + ") -> " + f.Return.render(seen)
}

// TypeSet is an ordered set of possible types. An empty set renders as
// unresolved; adding unresolved to a set never adds information.
type TypeSet struct {
	members []Type
}

func NewTypeSet(types ...Type) *TypeSet {
	s := &TypeSet{}
	for _, t := range types {
		s.Add(t)
	}
	return s
}

func (s *TypeSet) isType() {}

// Add inserts t, flattening nested sets and skipping duplicates.
func (s *TypeSet) Add(t Type) {
	switch v := t.(type) {
	case nil:
		return
	case *TypeSet:
		for _, m := range v.members {
			s.Add(m)
		}
		return
	}
	if IsUnresolved(t) {
		return
	}
	for _, m := range s.members {
		if m == t {
			return
		}
	}
	s.members = append(s.members, t)
}

// Members returns the recorded types in insertion order.
func (s *TypeSet) Members() []Type {
	return append([]Type(nil), s.members...)
}

func (s *TypeSet) Len() int { return len(s.members) }

func (s *TypeSet) String() string {
	return s.render(map[*FunctionType]bool{})
}

func (s *TypeSet) render(seen map[*FunctionType]bool) string {
	if len(s.members) == 0 {
		return Unresolved.String()
	}
	parts := make([]string, len(s.members))
	for i, m := range s.members {
		parts[i] = Render(m, seen)
	}
	return strings.Join(parts, "|")
}

// Render prints t, printing a function already being printed as "function".
func Render(t Type, seen map[*FunctionType]bool) string {
	switch v := t.(type) {
	case nil:
		return Unresolved.String()
	case *FunctionType:
		return v.render(seen)
	case *TypeSet:
		return v.render(seen)
	}
	return t.String()
}

// Union combines types into one: unresolved when nothing is known, the
// single member when there is one, a *TypeSet otherwise.
func Union(types ...Type) Type {
	set := NewTypeSet(types...)
	switch set.Len() {
	case 0:
		return Unresolved
	case 1:
		return set.members[0]
	}
	return set
}
