// Package domainerrors defines the coded errors services return to
// transport layers. Stores speak pkg/platform/sentinel; services translate
// sentinel facts into one of these codes so handlers can map them onto
// HTTP statuses without inspecting store internals.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error for callers.
type Code string

const (
	// CodeInvalidInput marks malformed or missing caller-supplied data.
	// Always the caller's fault, never retried.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a referenced entity that does not exist.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized marks a credential mismatch. Deliberately distinct
	// from CodeNotFound so a wrong password is not reported as a missing
	// account.
	CodeUnauthorized Code = "unauthorized"
	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error carries a code and a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a coded domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code onto an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
