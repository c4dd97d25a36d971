package analyzer

import (
	"sort"

	"github.com/funvibe/gl/internal/typesystem"
)

// TypeEnv maps names to their inferred types, chained like the runtime
// environment.
type TypeEnv struct {
	store map[string]typesystem.Type
	outer *TypeEnv
}

func NewTypeEnv(outer *TypeEnv) *TypeEnv {
	return &TypeEnv{store: make(map[string]typesystem.Type), outer: outer}
}

// Get returns the type of name, searching outward.
func (e *TypeEnv) Get(name string) (typesystem.Type, bool) {
	for env := e; env != nil; env = env.outer {
		if t, ok := env.store[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Set replaces the type of name in the nearest scope that declares it.
func (e *TypeEnv) Set(name string, t typesystem.Type) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = t
			return true
		}
	}
	return false
}

// Declare binds name in this scope.
func (e *TypeEnv) Declare(name string, t typesystem.Type) {
	if t == nil {
		t = typesystem.Unresolved
	}
	e.store[name] = t
}

// Includes reports whether name is declared in this scope only.
func (e *TypeEnv) Includes(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Names returns the names declared in this scope, sorted.
func (e *TypeEnv) Names() []string {
	names := make([]string, 0, len(e.store))
	for k := range e.store {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
