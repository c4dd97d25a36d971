package evaluator

import (
	"strconv"
	"strings"
)

// Array is a mutable ordered list, shared by reference.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string  { return inspect(a, map[Object]bool{}) }

// Hash is a mutable string-keyed mapping that preserves insertion order.
type Hash struct {
	keys  []string
	pairs map[string]Object
}

func NewHash() *Hash {
	return &Hash{pairs: make(map[string]Object)}
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string  { return inspect(h, map[Object]bool{}) }

// Get returns the value stored under key.
func (h *Hash) Get(key string) (Object, bool) {
	v, ok := h.pairs[key]
	return v, ok
}

// Set stores value under key. A new key is appended to the iteration order;
// an existing key keeps its position.
func (h *Hash) Set(key string, value Object) {
	if value == nil {
		value = NULL
	}
	if _, ok := h.pairs[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.pairs[key] = value
}

// Keys returns the keys in insertion order.
func (h *Hash) Keys() []string {
	return append([]string(nil), h.keys...)
}

func (h *Hash) Len() int { return len(h.keys) }

// inspect renders containers, tracking visited containers so that
// self-referencing values print as [...] or {...}.
func inspect(obj Object, seen map[Object]bool) string {
	switch v := obj.(type) {
	case *String:
		return strconv.Quote(v.Value)
	case *Array:
		if seen[v] {
			return "[...]"
		}
		seen[v] = true
		defer delete(seen, v)

		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = inspect(el, seen)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Hash:
		if seen[v] {
			return "{...}"
		}
		seen[v] = true
		defer delete(seen, v)

		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			parts = append(parts, k+": "+inspect(v.pairs[k], seen))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return obj.Inspect()
}
