// Package mmerr provides structured error types for the render pipeline.
//
// Error codes follow a hierarchical naming convention:
//   - PARSE_*: source text could not be parsed
//   - REFERENCE_*: an edge named a node that was never declared
//   - ROUTING_*: the obstacle-avoiding router fell back to the simpler mode
//   - LAYOUT_*: an internal layout invariant was violated (implementation bug)
//   - USAGE_*: the caller's invocation was malformed (bad flags/args/config)
//   - INTERNAL_*: unexpected internal errors
//
// ErrCodeReference and ErrCodeRouting mark conditions the pipeline already
// recovers from on its own (auto-declaring the missing node, routing the
// plainer orthogonal way) — they never propagate as a returned error, only
// as a structured log line, so a recovered diagram still renders.
package mmerr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeParse covers any malformed Mermaid source: unterminated
	// brackets, unclosed subgraphs, unrecognized statements.
	ErrCodeParse Code = "PARSE_ERROR"

	// ErrCodeReference marks an edge endpoint that named a node never
	// declared in the source. The pipeline recovers by auto-declaring a
	// bare Rectangle node for it, so this is logged, never returned.
	ErrCodeReference Code = "REFERENCE_ERROR"

	// ErrCodeRouting marks an edge the A* router could not reach its
	// goal with, having exhausted the occupancy grid's open set. The
	// pipeline recovers with the orthogonal-waypoint router, so this is
	// logged, never returned.
	ErrCodeRouting Code = "ROUTING_FALLBACK"

	// ErrCodeUsage covers a caller's invocation of render_dsl being
	// malformed rather than its diagram source: bad CLI flag values
	// (--direction, --padding) or a RenderConfig outside its valid range,
	// as distinct from a well-formed invocation whose diagram source
	// fails to parse. The CLI exits 2 for this code, matching the shell
	// convention for usage errors.
	ErrCodeUsage Code = "USAGE_ERROR"

	// ErrCodeLayout marks a violated internal invariant in the layout
	// engine (e.g. a negative layer index, an unresolved dummy chain).
	// Reaching this code indicates a bug, not a bad input.
	ErrCodeLayout Code = "LAYOUT_ERROR"

	// ErrCodeInternal is the catch-all for errors that don't originate
	// from user input or a known layout invariant.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err has the given error code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error, stripping
// the code prefix for *Error values.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
