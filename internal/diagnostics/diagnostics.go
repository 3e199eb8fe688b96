package diagnostics

import (
	"fmt"

	"github.com/funvibe/purelift/internal/token"
)

// Code identifies a diagnostic template.
type Code string

// User-facing rejections: the input program is outside the supported
// subset. Terminal for the unit being translated; never retried.
const (
	ErrP001 Code = "P001" // generic parse error
	ErrP002 Code = "P002" // expected token
	ErrP003 Code = "P003" // unterminated literal

	ErrS001 Code = "S001" // unbound identifier
	ErrS002 Code = "S002" // unsupported imperative construct
	ErrS003 Code = "S003" // unsupported expression

	ErrT001 Code = "T001" // impure argument
	ErrT002 Code = "T002" // function value embedded in data literal
	ErrT003 Code = "T003" // impure scrutinee or condition
	ErrT004 Code = "T004" // impure field base
	ErrT005 Code = "T005" // effects not permitted at top level
	ErrT006 Code = "T006" // mismatched branch effect shapes

	ErrM001 Code = "M001" // malformed effect manifest
	ErrM002 Code = "M002" // duplicate manifest entry
)

// Internal-consistency failures: a defect in an earlier stage. Never
// silently masked; abort translation of the enclosing unit.
const (
	ErrX001 Code = "X001" // unbound name after scope check
	ErrX002 Code = "X002" // monadic node observed by inference
	ErrX003 Code = "X003" // shadow tree shape mismatch
	ErrX004 Code = "X004" // fixpoint did not converge
	ErrX005 Code = "X005" // malformed effect type during application
)

var templates = map[Code]string{
	ErrP001: "parse error: %s",
	ErrP002: "expected %s, got %s",
	ErrP003: "unterminated %s literal",
	ErrS001: "unbound identifier '%s'",
	ErrS002: "unsupported imperative construct '%s'",
	ErrS003: "unsupported expression '%s'",
	ErrT001: "impure argument '%s' in application",
	ErrT002: "function value '%s' cannot be embedded unapplied in a data literal",
	ErrT003: "impure %s '%s'",
	ErrT004: "impure field base '%s'",
	ErrT005: "effects not permitted at top level in binding '%s'",
	ErrT006: "mismatched branch effect shapes in '%s': %s vs %s",
	ErrM001: "malformed effect manifest: %s",
	ErrM002: "duplicate manifest entry '%s'",
	ErrX001: "internal: name '%s' unbound after scope check",
	ErrX002: "internal: monadic node '%s' in pre-rewrite tree",
	ErrX003: "internal: shadow tree shape mismatch at '%s'",
	ErrX004: "internal: effect fixpoint for '%s' did not converge after %d iterations",
	ErrX005: "internal: malformed effect type at application '%s'",
}

// DiagnosticError is the tagged failure currency of the whole pipeline.
type DiagnosticError struct {
	Code    Code
	Token   token.Token
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Token.Pos(), e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Internal reports whether this diagnostic is an internal-consistency
// failure rather than a user-facing rejection.
func (e *DiagnosticError) Internal() bool {
	return len(e.Code) > 0 && e.Code[0] == 'X'
}

// NewError builds a diagnostic from a code template, the token closest to
// the failing sub-expression, and the template arguments.
func NewError(code Code, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := templates[code]
	if !ok {
		tmpl = "unknown diagnostic"
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(tmpl, args...),
	}
}
