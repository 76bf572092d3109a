// Package domainerrors defines coded errors for the domain layer.
//
// Services return these so transport layers can translate them into HTTP
// statuses without string matching, and so callers can branch on failure
// kind (decode error vs unknown visitor vs store outage) with errors.As.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error. Codes are stable API surface; the messages
// attached to them are not.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnavailable        Code = "unavailable"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping an underlying cause.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification of the error.
func (e *Error) Code() Code { return e.code }

// Message returns the human-readable description without the code prefix.
func (e *Error) Message() string { return e.message }

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{code: code, message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. The cause remains
// reachable through errors.Is/errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// CodeOf extracts the code of the first coded error in the chain, defaulting
// to CodeInternal for uncoded errors so nothing leaks as a 200.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}
