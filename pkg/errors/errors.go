// Package errors provides structured error types for bannersmith.
//
// Every failure the core can surface to a user carries a machine-readable
// [Code] so that callers (the CLI, the terminal editor, or any other UI
// collaborator) can branch on the kind of failure and show a transient
// notification without parsing message strings.
//
// # Error Codes
//
// Codes group by concern:
//   - INVALID_*: Input validation failures (font extension, config, export scale)
//   - FONT_*: Font registration and lookup failures
//   - EXPORT_*, EMPTY_BANNER, UNSUPPORTED_*: Export pipeline failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFontFormat, "unsupported font file: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidFontFormat) {
//	    // Tell the user which extensions are accepted
//	}
//
//	// Keep the rasterizer failure for diagnostics
//	err := errors.Wrap(errors.ErrCodeExportFailed, cause, "failed to export banner")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFontFormat  Code = "INVALID_FONT_FORMAT"
	ErrCodeInvalidImage       Code = "INVALID_IMAGE"
	ErrCodeInvalidExportScale Code = "INVALID_EXPORT_SCALE"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidFilename    Code = "INVALID_FILENAME"

	// Font errors
	ErrCodeFontRead     Code = "FONT_READ_ERROR"
	ErrCodeFontLoad     Code = "FONT_LOAD_FAILED"
	ErrCodeFontNotFound Code = "FONT_NOT_FOUND"

	// Export errors
	ErrCodeEmptyBanner             Code = "EMPTY_BANNER"
	ErrCodeExportFailed            Code = "EXPORT_FAILED"
	ErrCodeUnsupportedExportFormat Code = "UNSUPPORTED_EXPORT_FORMAT"

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
