// Package errors provides structured error types for depgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for exit statuses and JSON responses
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror how a run can go wrong:
//   - SOURCE_UNAVAILABLE: the graph source cannot be read (fatal)
//   - MALFORMED_SOURCE: a record could not be parsed (skipped by loaders)
//   - UNKNOWN_ROOT: the requested root is not in the graph (informational)
//   - EXPORT_TARGET_FAILURE: the external renderer failed (warning)
//   - INVALID_*, NOT_FOUND, NETWORK_ERROR, INTERNAL_ERROR: everything else
//
// A detected cycle is not an error; it is part of the load order result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown operation: %s", op)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceUnavailable, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph source errors
	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	ErrCodeMalformedSource   Code = "MALFORMED_SOURCE"
	ErrCodeUnknownRoot       Code = "UNKNOWN_ROOT"

	// Rendering errors
	ErrCodeExportTarget Code = "EXPORT_TARGET_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPackage   Code = "INVALID_PACKAGE"
	ErrCodeInvalidOperation Code = "INVALID_OPERATION"
	ErrCodeInvalidMode      Code = "INVALID_MODE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether an error with this code must abort a run. Malformed
// records, unknown roots and renderer failures degrade a run but never abort
// it.
func (c Code) Fatal() bool {
	switch c {
	case ErrCodeMalformedSource, ErrCodeUnknownRoot, ErrCodeExportTarget:
		return false
	default:
		return true
	}
}
