// Package errors provides structured error types for anchorage.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the solver, the scene loader, the CLI and the API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - ANCHOR_*: rejected anchor bindings and solver diagnostics
//   - INVALID_*: input validation failures
//   - NOT_FOUND_*: resource not found
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSelfAnchor, "cannot anchor item to self")
//	if errors.Is(err, errors.ErrCodeSelfAnchor) {
//	    // Handle rejected binding
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScene, origErr, "failed to parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rejected anchor bindings
	ErrCodeNullTarget         Code = "ANCHOR_NULL_TARGET"
	ErrCodeSelfAnchor         Code = "ANCHOR_SELF"
	ErrCodeNotParentOrSibling Code = "ANCHOR_NOT_PARENT_OR_SIBLING"
	ErrCodeAxisMismatch       Code = "ANCHOR_AXIS_MISMATCH"
	ErrCodeConflictingAnchors Code = "ANCHOR_CONFLICT"
	ErrCodeBaselineConflict   Code = "ANCHOR_BASELINE_CONFLICT"

	// Solver diagnostics
	ErrCodeAnchorLoop   Code = "ANCHOR_LOOP"
	ErrCodeInvalidState Code = "ANCHOR_INVALID_STATE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidEdge   Code = "INVALID_EDGE"
	ErrCodeInvalidRef    Code = "INVALID_REFERENCE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidID     Code = "INVALID_ID"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeDuplicateID   Code = "INVALID_DUPLICATE_ID"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeItemNotFound   Code = "NOT_FOUND_ITEM"
	ErrCodeFileNotFound   Code = "NOT_FOUND_FILE"
	ErrCodeLayoutNotFound Code = "NOT_FOUND_LAYOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsBindingError reports whether err is a rejected anchor binding.
func IsBindingError(err error) bool {
	switch GetCode(err) {
	case ErrCodeNullTarget, ErrCodeSelfAnchor, ErrCodeNotParentOrSibling,
		ErrCodeAxisMismatch, ErrCodeConflictingAnchors, ErrCodeBaselineConflict:
		return true
	}
	return false
}
