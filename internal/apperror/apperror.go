// Package apperror defines the error taxonomy shared by all handlers.
//
// Every business failure is one of these kinds; the error middleware
// translates the kind to an HTTP status and the envelope shape, so
// handlers never write error responses themselves.
package apperror

import (
	"errors"
	"net/http"
)

// Error carries a user-facing message and the HTTP status it maps to.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports missing or malformed input (400).
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Authorization reports a role mismatch (403).
func Authorization(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound reports an absent entity (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a uniqueness violation (400, matching the upstream API).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Infrastructure reports a store or transaction failure (500). The message
// shown to clients is generic; the underlying error is for logs only.
func Infrastructure() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error"}
}

// From extracts an *Error from err, or nil if err is of another type.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
