package apperr

import (
	"errors"
	"net/http"
)

// Error is a service-level error carrying the machine-readable code and the
// HTTP status the handlers map it to.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an error with an explicit status.
func New(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// BadRequest creates a 400 error.
func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

// NotFound creates a 404 error.
func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

// From extracts an *Error from err, or wraps it as a generic internal error
// so handlers never leak SQL details to the UI.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
