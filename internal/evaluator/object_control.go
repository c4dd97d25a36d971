package evaluator

import (
	"fmt"

	"github.com/funvibe/gl/internal/diagnostics"
	"github.com/funvibe/gl/internal/token"
)

// Error is a runtime failure travelling up through Eval. Any Eval result of
// this type aborts the run.
type Error struct {
	Code       diagnostics.ErrorCode
	Message    string
	Token      token.Token
	StackTrace []StackFrame
}

// StackFrame for error stack traces
type StackFrame struct {
	Name   string
	File   string
	Line   int
	Column int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	var result string
	if e.Token.Line > 0 {
		result = fmt.Sprintf("ERROR at %d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
	} else {
		result = "ERROR: " + e.Message
	}
	for i := len(e.StackTrace) - 1; i >= 0; i-- {
		result += "\n  " + e.StackTrace[i].String()
	}
	return result
}

func (f StackFrame) String() string {
	loc := fmt.Sprintf("%d:%d", f.Line, f.Column)
	if f.File != "" {
		loc = f.File + ":" + loc
	}
	return fmt.Sprintf("at %s (%s)", f.Name, loc)
}

// maxTraceFrames caps the frames copied into a diagnostic; deep recursion
// would otherwise produce thousands of identical lines.
const maxTraceFrames = 16

// Diagnostic converts the error to the structured form returned to hosts.
// Frames are listed innermost first.
func (e *Error) Diagnostic(file string) *diagnostics.DiagnosticError {
	d := diagnostics.NewErrorMessage(e.Code, e.Token, e.Message)
	d.File = file
	for i := len(e.StackTrace) - 1; i >= 0; i-- {
		if len(d.Trace) == maxTraceFrames {
			d.Trace = append(d.Trace, fmt.Sprintf("... %d more frames", i+1))
			break
		}
		d.Trace = append(d.Trace, e.StackTrace[i].String())
	}
	return d
}
