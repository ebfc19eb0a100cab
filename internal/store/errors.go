package store

import (
	"fmt"
	"net/http"
)

// Error is a storage error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)

	// kind points at the sentinel a WithMessage/WithCause copy came from,
	// so errors.Is still matches the copy against its sentinel.
	kind *Error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is this error or the sentinel it was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.kind == t
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// origin returns the sentinel this error derives from, or the error itself.
func (e *Error) origin() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
		kind:    e.origin(),
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
		kind:    e.origin(),
	}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}

	ErrInvalidCursor = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid cursor",
	}

	ErrEmptyBody = &Error{
		Code:    http.StatusBadRequest,
		Message: "body cannot be empty",
	}

	ErrTooLong = &Error{
		Code:    http.StatusBadRequest,
		Message: "body exceeds maximum length",
	}

	ErrNotOwner = &Error{
		Code:    http.StatusForbidden,
		Message: "not the owner",
	}

	ErrUnauthorized = &Error{
		Code:    http.StatusUnauthorized,
		Message: "unauthorized",
	}

	ErrForbidden = &Error{
		Code:    http.StatusForbidden,
		Message: "forbidden",
	}
)
