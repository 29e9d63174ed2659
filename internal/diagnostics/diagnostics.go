// Package diagnostics defines the four flat error kinds the core operations
// can return: ParseError, TypeError, EvalError, and InternalError. Every
// error is plain data — (kind, message, span) — designed to round-trip
// through serialization to a host. There is no wrapping and no recovery;
// the first error aborts the operation that produced it.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/substructural/internal/ast"
)

// Kind identifies which of the four operation failures produced an Error.
type Kind string

const (
	KindParse    Kind = "ParseError"
	KindType     Kind = "TypeError"
	KindEval     Kind = "EvalError"
	KindInternal Kind = "InternalError"
)

// Error is the single error type returned by every core operation. Span is
// the zero value for InternalError, which carries no source position (its
// input failed before any span could be assigned).
type Error struct {
	Kind    Kind
	Message string
	Span    ast.Span
	HasSpan bool
}

func (e *Error) Error() string {
	if e.HasSpan {
		return fmt.Sprintf("%s at [%d, %d): %s", e.Kind, e.Span.Start, e.Span.End, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewParseError reports a grammar or lexical failure pinned to span.
func NewParseError(span ast.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...), Span: span, HasSpan: true}
}

// NewTypeError reports a linear-discipline or ill-typed program, pinned to
// the offending span.
func NewTypeError(span ast.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: KindType, Message: fmt.Sprintf(format, args...), Span: span, HasSpan: true}
}

// NewEvalError reports a runtime failure at the span of the offending
// subterm.
func NewEvalError(span ast.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: KindEval, Message: fmt.Sprintf(format, args...), Span: span, HasSpan: true}
}

// NewInternalError reports that the input failed every decoding path
// (neither source, nor term tree, nor evaluator configuration).
func NewInternalError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}
