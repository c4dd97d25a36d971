package evaluator

import (
	"fmt"

	"github.com/funvibe/gl/internal/diagnostics"
)

func newError(code diagnostics.ErrorCode, a ...interface{}) *Error {
	return &Error{Code: code, Message: diagnostics.Format(code, a...)}
}

func typeError(format string, a ...interface{}) *Error {
	return &Error{Code: diagnostics.ErrR003, Message: fmt.Sprintf(format, a...)}
}

// NewHostError reports a failure inside a host binding.
func NewHostError(format string, a ...interface{}) *Error {
	return &Error{Code: diagnostics.ErrR006, Message: fmt.Sprintf(format, a...)}
}

// PushCall adds a call frame to the stack
func (e *Evaluator) PushCall(name string, line, column int) {
	e.CallStack = append(e.CallStack, CallFrame{
		Name:   name,
		File:   e.CurrentFile,
		Line:   line,
		Column: column,
	})
}

// PopCall removes the top call frame
func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

// attachStack copies the current call stack into err unless an inner call
// already did so.
func (e *Evaluator) attachStack(err *Error) {
	if err.StackTrace != nil || len(e.CallStack) == 0 {
		return
	}
	err.StackTrace = make([]StackFrame, len(e.CallStack))
	for i, frame := range e.CallStack {
		err.StackTrace[i] = StackFrame(frame)
	}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}
