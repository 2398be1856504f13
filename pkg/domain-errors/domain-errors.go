package domainerrors

import (
	"context"
	"errors"
)

// Code is a transport-independent failure category.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_failed"
	CodeInternal     Code = "internal_error"
	CodeConflict     Code = "conflict"

	// CodeTimeout and CodeUnavailable mark a storage collaborator that could
	// not answer. Screening treats both as a hard failure, never as "no match".
	CodeTimeout     Code = "timeout"
	CodeUnavailable Code = "unavailable"
)

// Error carries a stable code through service and store layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		// Preserve the original domain code, update message
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// WrapStorage classifies a failure returned by a storage collaborator.
// Cancellation and deadlines become CodeTimeout, everything else CodeUnavailable.
func WrapStorage(err error, msg string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, CodeTimeout, msg)
	}
	return Wrap(err, CodeUnavailable, msg)
}

// IsFailClosed reports whether err means the screening outcome is unknown
// because storage timed out or was unreachable.
func IsFailClosed(err error) bool {
	return HasCode(err, CodeTimeout) || HasCode(err, CodeUnavailable)
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
