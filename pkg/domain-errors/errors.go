// Package domainerrors provides coded errors shared across services and
// transport. Stores return sentinel errors; services wrap them here so the
// HTTP layer can map codes to status lines without inspecting error text.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeBadRequest covers malformed requests rejected before any store access.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput covers domain value parsing failures (bad time slot,
	// out-of-range day, unknown gender).
	CodeInvalidInput Code = "invalid_input"
	// CodeValidation covers request DTO validation failures.
	CodeValidation Code = "validation_failed"
	// CodeNotFound covers absent entities.
	CodeNotFound Code = "not_found"
	// CodeConflict covers business-rule violations: duplicate registration,
	// time overlap, capacity exceeded, sessions exhausted, duplicate contact.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks states that should be unreachable when the
	// store constraints hold. Logged loudly, surfaced as internal.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeTimeout covers cancelled or deadline-exceeded operations.
	CodeTimeout Code = "timeout"
	// CodeUnavailable covers transient store failures.
	CodeUnavailable Code = "unavailable"
	// CodeInternal is the catch-all for unexpected failures. Details are
	// logged, never returned to the caller.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. It may wrap an underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to an HTTP status line.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
