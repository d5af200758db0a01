// Package errors defines the domain error kinds returned by the ledger and
// mapped onto HTTP responses by the API.
//
// Callers match on kind with errors.Is against the sentinels:
//
//	if errors.Is(err, errors.ErrDuplicateLot) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code is a stable machine-readable error kind.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidQuantity   Code = "INVALID_QUANTITY"
	CodeDuplicateLot      Code = "DUPLICATE_LOT"
	CodeTransactionFailed Code = "TRANSACTION_FAILED"
	CodeValidation        Code = "VALIDATION"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeConflict          Code = "CONFLICT"
	CodeInternal          Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidQuantity, CodeValidation:
		return http.StatusBadRequest
	case CodeDuplicateLot, CodeConflict:
		return http.StatusConflict
	case CodeTransactionFailed:
		return http.StatusServiceUnavailable
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the caller may safely retry the operation.
// Only storage-level transaction failures qualify; nothing was written.
func (c Code) Retryable() bool {
	return c == CodeTransactionFailed
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInvalidQuantity   = &Error{Code: CodeInvalidQuantity, Message: "invalid quantity"}
	ErrDuplicateLot      = &Error{Code: CodeDuplicateLot, Message: "lot number already exists"}
	ErrTransactionFailed = &Error{Code: CodeTransactionFailed, Message: "transaction failed"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrConflict          = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidQuantity creates an invalid quantity error.
func InvalidQuantity(msg string) *Error {
	return &Error{Code: CodeInvalidQuantity, Message: msg}
}

// DuplicateLotf creates a duplicate lot error with a formatted message.
func DuplicateLotf(format string, args ...any) *Error {
	return &Error{Code: CodeDuplicateLot, Message: fmt.Sprintf(format, args...)}
}

// TransactionFailed wraps a storage error that aborted a transaction.
func TransactionFailed(op string, err error) *Error {
	return &Error{Code: CodeTransactionFailed, Message: op + " failed, nothing was saved", cause: err}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Internal wraps an unexpected error.
func Internal(msg string, err error) *Error {
	return &Error{Code: CodeInternal, Message: msg, cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
