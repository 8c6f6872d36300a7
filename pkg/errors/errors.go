// Package errors provides the coded error type shared by fitguide packages.
//
// Missing catalog data is never an error (lookups return placeholders); these
// codes cover the boundaries that can genuinely fail: catalog ingestion,
// local storage, the backend API and user input validation.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes an error for display and retry decisions.
type ErrorCode string

const (
	// Catalog ingestion
	CodeDuplicateEntry ErrorCode = "DUPLICATE_ENTRY"
	CodeInvalidCatalog ErrorCode = "INVALID_CATALOG"

	// User input
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Backend API
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeNetwork      ErrorCode = "NETWORK_ERROR"
	CodeServer       ErrorCode = "SERVER_ERROR"

	// Infrastructure
	CodeStorage  ErrorCode = "STORAGE_ERROR"
	CodeAsset    ErrorCode = "ASSET_ERROR"
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error is the base error type for fitguide.
type Error struct {
	Code      ErrorCode
	Message   string
	Cause     error
	Retryable bool
	Metadata  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so sentinels like
// ErrValidation work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// WithCause returns a copy wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     cause,
		Retryable: e.Retryable,
		Metadata:  e.Metadata,
	}
}

// WithMetadata returns a copy with an extra metadata entry.
func (e *Error) WithMetadata(key, value string) *Error {
	md := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[key] = value
	return &Error{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     e.Cause,
		Retryable: e.Retryable,
		Metadata:  md,
	}
}

// New creates an error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error around cause.
func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Sentinels for errors.Is checks. They carry no message, so they match any
// error with the same code.
var (
	ErrDuplicateEntry = &Error{Code: CodeDuplicateEntry}
	ErrInvalidCatalog = &Error{Code: CodeInvalidCatalog}
	ErrValidation     = &Error{Code: CodeValidation}
	ErrUnauthorized   = &Error{Code: CodeUnauthorized}
	ErrNotFound       = &Error{Code: CodeNotFound}
	ErrNetwork        = &Error{Code: CodeNetwork}
	ErrStorage        = &Error{Code: CodeStorage}
)

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}
