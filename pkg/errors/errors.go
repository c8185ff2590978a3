// Package errors provides structured error types for curveplot.
//
// Every failure raised by the rendering core carries a machine-readable
// [Code] so that callers can tell configuration mistakes apart from
// geometry problems that only show up when a curve meets a canvas:
//
//   - INVALID_CONFIG: malformed construction input (empty interval, unknown
//     colour space, bad relation symbol, too few gradient colours)
//   - GEOMETRY: an implicit graph's region does not meet the canvas
//   - UNSUPPORTED_VARIANT: a curve value is neither parametric nor implicit
//
// The remaining codes belong to the glue around the core (scene files,
// output formats, the HTTP service).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "steps must be at least 2, got %d", steps)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // reject the request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode scene %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering core
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeGeometry           Code = "GEOMETRY"
	ErrCodeUnsupportedVariant Code = "UNSUPPORTED_VARIANT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
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
	if errors.As(err, &e) {
		return e.Code == code
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Config is shorthand for an INVALID_CONFIG error.
func Config(format string, args ...any) *Error {
	return New(ErrCodeInvalidConfig, format, args...)
}

// Geometry is shorthand for a GEOMETRY error.
func Geometry(format string, args ...any) *Error {
	return New(ErrCodeGeometry, format, args...)
}
