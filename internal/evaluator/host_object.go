package evaluator

import (
	"fmt"
)

// HostObject wraps a Go value for use in gl scripts.
// Members are resolved via reflection: exported methods become callables
// and exported struct fields become properties.
type HostObject struct {
	Value interface{}
}

func (h *HostObject) Type() ObjectType { return HOST_OBJ }

func (h *HostObject) Inspect() string {
	return fmt.Sprintf("<host %T>", h.Value)
}
