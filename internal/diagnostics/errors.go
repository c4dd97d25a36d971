package diagnostics

import (
	"fmt"

	"github.com/funvibe/gl/internal/token"
)

type ErrorCode string

// Kind groups error codes into the failure classes a host can react to.
type Kind string

const (
	KindLex               Kind = "LexError"
	KindSyntax            Kind = "SyntaxError"
	KindInvalidAssign     Kind = "InvalidAssignTarget"
	KindInvalidIndex      Kind = "InvalidIndexSyntax"
	KindUndefinedVariable Kind = "UndefinedVariable"
	KindAlreadyDeclared   Kind = "AlreadyDeclared"
	KindType              Kind = "TypeError"
	KindNotCallable       Kind = "NotCallable"
	KindStackExhausted    Kind = "StackExhausted"
	KindHost              Kind = "HostError"
)

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // invalid token

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // construct not implemented
	ErrP003 ErrorCode = "P003" // invalid assignment target
	ErrP004 ErrorCode = "P004" // invalid index operand
	ErrP005 ErrorCode = "P005" // nesting too deep

	// Runtime
	ErrR001 ErrorCode = "R001" // undefined variable
	ErrR002 ErrorCode = "R002" // already declared
	ErrR003 ErrorCode = "R003" // type error
	ErrR004 ErrorCode = "R004" // not callable
	ErrR005 ErrorCode = "R005" // recursion depth exceeded
	ErrR006 ErrorCode = "R006" // host binding failed
)

var errorKinds = map[ErrorCode]Kind{
	ErrL001: KindLex,
	ErrP001: KindSyntax,
	ErrP002: KindSyntax,
	ErrP003: KindInvalidAssign,
	ErrP004: KindInvalidIndex,
	ErrP005: KindStackExhausted,
	ErrR001: KindUndefinedVariable,
	ErrR002: KindAlreadyDeclared,
	ErrR003: KindType,
	ErrR004: KindNotCallable,
	ErrR005: KindStackExhausted,
	ErrR006: KindHost,
}

var errorMessages = map[ErrorCode]string{
	ErrL001: "invalid token %q at offset %d",
	ErrP001: "unexpected %s while parsing %s",
	ErrP002: "%s is not implemented",
	ErrP003: "invalid assignment target: %s",
	ErrP004: "invalid index syntax: %s",
	ErrP005: "expression too deeply nested: parser depth limit %d exceeded",
	ErrR001: "undefined variable: %s",
	ErrR002: "variable already declared: %s",
	ErrR003: "%s",
	ErrR004: "not a function: %s",
	ErrR005: "maximum recursion depth exceeded (%d)",
	ErrR006: "%s",
}

// KindOf returns the failure class of a code.
func KindOf(code ErrorCode) Kind {
	return errorKinds[code]
}

// Format renders the message template registered for code.
func Format(code ErrorCode, args ...interface{}) string {
	if tmpl, ok := errorMessages[code]; ok {
		return fmt.Sprintf(tmpl, args...)
	}
	return fmt.Sprint(args...)
}

// DiagnosticError is the structured failure returned to the host.
type DiagnosticError struct {
	Code    ErrorCode
	Kind    Kind
	Message string
	Token   token.Token
	File    string
	// Trace holds "at name (line:col)" frames for runtime errors.
	Trace []string
}

// NewError builds a DiagnosticError whose message is rendered from the
// template of code.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    KindOf(code),
		Message: Format(code, args...),
		Token:   tok,
	}
}

// NewErrorMessage builds a DiagnosticError with a pre-rendered message.
func NewErrorMessage(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Kind: KindOf(code), Message: msg, Token: tok}
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.Token.Line > 0 {
		loc = fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column)
		if e.File != "" {
			loc = e.File + ":" + loc
		}
	} else if e.File != "" {
		loc = e.File + ": "
	}
	msg := fmt.Sprintf("%s[%s] %s: %s", loc, e.Code, e.Kind, e.Message)
	for _, frame := range e.Trace {
		msg += "\n  " + frame
	}
	return msg
}

// Offset is the byte offset of the failure in the source, or -1 if unknown.
func (e *DiagnosticError) Offset() int {
	if e.Token.Line == 0 {
		return -1
	}
	return e.Token.Offset
}
