package evaluator

import (
	"sort"
	"sync"
)

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is one scope in a chain of scopes. Closures hold the
// Environment they were created in, which keeps the whole outward chain
// alive for as long as the closure is reachable.
type Environment struct {
	mu    sync.RWMutex
	store map[string]Object
	outer *Environment
}

// Get looks name up in this scope and then outward.
func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set overwrites name in the nearest scope that declares it. It reports
// false when no scope in the chain declares name.
func (e *Environment) Set(name string, val Object) bool {
	if val == nil {
		val = NULL
	}
	for env := e; env != nil; env = env.outer {
		env.mu.Lock()
		if _, ok := env.store[name]; ok {
			env.store[name] = val
			env.mu.Unlock()
			return true
		}
		env.mu.Unlock()
	}
	return false
}

// Declare binds name in this scope, replacing any existing binding here.
// Redeclaration is rejected by the evaluator, not by Declare.
func (e *Environment) Declare(name string, val Object) Object {
	if val == nil {
		val = NULL
	}
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
	return val
}

// Includes reports whether name is declared in this scope, ignoring
// enclosing scopes.
func (e *Environment) Includes(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.store[name]
	return ok
}

// Outer returns the enclosing scope, or nil for the root.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// Names returns the names visible from this scope, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.outer {
		env.mu.RLock()
		for k := range env.store {
			seen[k] = true
		}
		env.mu.RUnlock()
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
