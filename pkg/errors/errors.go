// Package errors provides structured error types for shelfplan.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the editor runner and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (caller bugs, never clamped)
//   - *_NOT_FOUND: Resource not found
//   - POLICY_VIOLATION: Edits the planogram configuration rules forbid
//   - STORAGE, INTERNAL_*: Backend and unexpected internal errors
//
// Geometric outcomes such as "no support found" or "collision unresolved" are
// not errors and never produce an *Error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "negative width: %v", w)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save planogram %s", id)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidTopology Code = "INVALID_TOPOLOGY"
	ErrCodeInvalidSurface  Code = "INVALID_SURFACE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeItemNotFound      Code = "ITEM_NOT_FOUND"
	ErrCodeUnitNotFound      Code = "UNIT_NOT_FOUND"
	ErrCodeSurfaceNotFound   Code = "SURFACE_NOT_FOUND"
	ErrCodePlanogramNotFound Code = "PLANOGRAM_NOT_FOUND"
	ErrCodeProductNotFound   Code = "PRODUCT_NOT_FOUND"

	// Configuration policy errors
	ErrCodePolicyViolation Code = "POLICY_VIOLATION"

	// Backend errors
	ErrCodeStorage Code = "STORAGE"

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

// IsNotFound reports whether err carries any of the *_NOT_FOUND codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeItemNotFound, ErrCodeUnitNotFound,
		ErrCodeSurfaceNotFound, ErrCodePlanogramNotFound, ErrCodeProductNotFound:
		return true
	}
	return false
}

// IsInvalid reports whether err is an input validation failure.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidTopology, ErrCodeInvalidSurface,
		ErrCodeInvalidConfig, ErrCodeInvalidFormat:
		return true
	}
	return false
}
