// Package apperror defines the typed failures handlers return to the HTTP shell.
package apperror

import (
	"errors"
	"net/http"
)

// Error is a failure that carries the HTTP status it should be reported with.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound reports a lookup by key that matched no rows.
func NotFound(msg string) *Error {
	if msg == "" {
		msg = "Not Found"
	}
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// BadRequest reports a missing body or a field that failed its presence/type check.
func BadRequest(msg string) *Error {
	if msg == "" {
		msg = "Bad Request"
	}
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// StatusOf returns the status carried by err, or 500 for unclassified failures.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
