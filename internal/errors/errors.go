// Package errors provides the diagnostic sink shared by the semantic
// analyzer: a line-tagged message accumulator whose formatting mirrors the
// teacher compiler's CompilerError (github.com/cwbudde/go-dws's
// internal/errors), trimmed to the line-only position this language's AST
// carries — there is no column or source snippet to echo.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a semantic diagnostic. One Kind corresponds to exactly
// one human-readable message template (spec.md §4.7).
type Kind string

const (
	DuplicateDeclaration Kind = "duplicate_declaration"
	VoidVariable         Kind = "void_variable"
	ReturnTypeMismatch   Kind = "return_type_mismatch"
	AssignmentMismatch   Kind = "assignment_type_mismatch"
	InvalidFunctionCall  Kind = "invalid_function_call"
	UndeclaredVariable   Kind = "undeclared_variable"
	UndeclaredFunction   Kind = "undeclared_function"
)

// CompilerError is a single reported diagnostic.
type CompilerError struct {
	Kind    Kind
	Message string
	Line    int
}

func (e *CompilerError) Error() string {
	return fmt.Sprintf("error : %s at line %d", e.Message, e.Line)
}

// New builds a CompilerError for the given kind, formatting Message the
// same way the original TINY-derived analyzer does for that diagnostic.
func New(kind Kind, line int, args ...interface{}) *CompilerError {
	var msg string
	switch kind {
	case DuplicateDeclaration:
		msg = fmt.Sprintf("already declared variable %s", args[0])
	case VoidVariable:
		msg = "Variable type cannot be Void"
	case ReturnTypeMismatch:
		msg = "return type inconsistance"
	case AssignmentMismatch:
		msg = "type inconsistance"
	case InvalidFunctionCall:
		msg = "invalid function call"
	case UndeclaredVariable:
		msg = fmt.Sprintf("undeclared variable %s", args[0])
	case UndeclaredFunction:
		msg = fmt.Sprintf("undeclared function %s", args[0])
	default:
		msg = string(kind)
	}
	return &CompilerError{Kind: kind, Message: msg, Line: line}
}

// Reporter accumulates diagnostics and exposes the global error flag that
// gates code generation (spec.md §4.7, §7): generation only proceeds if
// HasErrors is false after analysis.
type Reporter struct {
	errs []*CompilerError
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records a diagnostic; it never aborts traversal.
func (r *Reporter) Report(kind Kind, line int, args ...interface{}) {
	r.errs = append(r.errs, New(kind, line, args...))
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.errs) > 0
}

// Errors returns the diagnostics in report order.
func (r *Reporter) Errors() []*CompilerError {
	return r.errs
}

// Format renders every diagnostic, one per line, in report order — the
// listing-stream format spec.md §6 calls for.
func (r *Reporter) Format() string {
	var sb strings.Builder
	for _, e := range r.errs {
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}
