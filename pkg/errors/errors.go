// Package errors provides structured error types for tikzlayout.
//
// Every failure surfaced by the geometry engine, the scene builder and the
// render pipeline is an [*Error] carrying a machine-readable [Code], the
// operation that failed and, when known, the path of the offending node in
// the shape tree.
//
// # Error Codes
//
// The engine codes mirror the failure taxonomy of the layout core:
//   - EMPTY_COMPOSITE: a group with no children reached the bounding-box engine
//   - UNSUPPORTED_SHAPE: a node type with no case in a dispatch
//   - DEGENERATE_GEOMETRY: a direction-dependent operation on coincident points
//
// The remaining codes cover input validation, files and rendering.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyComposite, "group has no children").
//	    WithOp("bbox").WithPath([]int{2, 0})
//	if errors.Is(err, errors.ErrCodeEmptyComposite) {
//	    // nothing to draw
//	}
package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry engine errors
	ErrCodeEmptyComposite     Code = "EMPTY_COMPOSITE"
	ErrCodeUnsupportedShape   Code = "UNSUPPORTED_SHAPE"
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Render errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Op      string // Operation that failed (e.g. "bbox", "distribute")
	Path    []int  // Child indices from the root to the failing node
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Path != nil {
		b.WriteString(" (at ")
		b.WriteString(FormatPath(e.Path))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithOp sets the failing operation and returns e.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithPath records the node path and returns e.
func (e *Error) WithPath(path []int) *Error {
	e.Path = append([]int{}, path...)
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types it names the operation and node path without the code
// prefix, followed by the message of a coded cause. For other errors,
// returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != nil {
		msg += " (at " + FormatPath(e.Path) + ")"
	}
	var cause *Error
	if e.Cause != nil && errors.As(e.Cause, &cause) {
		msg += ": " + UserMessage(cause)
	}
	return msg
}

// FormatPath renders a node path as "root", "root[1]" or "root[1][0]".
func FormatPath(path []int) string {
	var b strings.Builder
	b.WriteString("root")
	for _, i := range path {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(']')
	}
	return b.String()
}
