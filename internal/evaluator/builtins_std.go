package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/funvibe/gl/internal/config"
)

// NewLogBuiltin returns the variadic host log function. Arguments are
// rendered with Inspect, joined by spaces and written as one line to w,
// after prefix when it is not empty.
func NewLogBuiltin(w io.Writer, prefix string) *Builtin {
	return &Builtin{
		Name: config.LogFuncName,
		Fn: func(e *Evaluator, _ Object, args ...Object) Object {
			parts := make([]string, 0, len(args)+1)
			if prefix != "" {
				parts = append(parts, prefix)
			}
			for _, arg := range args {
				parts = append(parts, arg.Inspect())
			}
			if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
				return NewHostError("log: %v", err)
			}
			return NULL
		},
	}
}

// NewUUIDBuiltin returns a function producing random (version 4) UUID
// strings. In test mode it returns a fixed name-based UUID instead.
func NewUUIDBuiltin() *Builtin {
	return &Builtin{
		Name: config.UUIDFuncName,
		Fn: func(e *Evaluator, _ Object, args ...Object) Object {
			if len(args) != 0 {
				return typeError("uuid expects no arguments, got %d", len(args))
			}
			if config.IsTestMode {
				return &String{Value: uuid.NewSHA1(uuid.NameSpaceOID, []byte("gl-test")).String()}
			}
			id, err := uuid.NewRandom()
			if err != nil {
				return NewHostError("uuid: %v", err)
			}
			return &String{Value: id.String()}
		},
	}
}

// RegisterBuiltins declares the standard host bindings in env.
func RegisterBuiltins(env *Environment, out io.Writer, logPrefix string) {
	env.Declare(config.LogFuncName, NewLogBuiltin(out, logPrefix))
	env.Declare(config.UUIDFuncName, NewUUIDBuiltin())
}
