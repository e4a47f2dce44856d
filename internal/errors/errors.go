// Package errors provides coded application errors for the configuration,
// persistence, and HTTP surfaces. Domain errors stay sentinel-based in
// domain/core; this layer exists where a machine-readable code is needed.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes surfaced in API payloads and logs.
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
	CodeNotFound      = "NOT_FOUND"
)

// AppError carries a stable code alongside the message and cause chain.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a coded error with no cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. Returns nil for a
// nil cause so call sites can wrap unconditionally.
func Wrap(err error, code, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code, format string, args ...interface{}) *AppError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the nearest AppError in the chain, or the empty
// string when the chain carries none.
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ConfigInvalid reports an invalid or missing configuration value
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput reports a malformed request before it reaches the domain
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// DatabaseError wraps a failed database operation
func DatabaseError(err error, message string) *AppError {
	return Wrap(err, CodeDatabaseError, message)
}
