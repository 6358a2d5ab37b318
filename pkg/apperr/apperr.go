// Package apperr defines the error taxonomy used at every service boundary.
//
// Services return *apperr.Error values; controllers translate them into the
// response envelope with apperr.Status. Anything that is not an *apperr.Error
// is treated as Internal.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind string

const (
	// InvalidArgument marks a malformed or missing identifier (HTTP 422).
	InvalidArgument Kind = "invalid_argument"
	// NotFound marks an absent referenced entity (HTTP 404).
	NotFound Kind = "not_found"
	// AuthFailed marks an unresolved or unauthorized user (HTTP 401).
	AuthFailed Kind = "auth_failed"
	// Internal marks a persistence or unexpected failure (HTTP 500).
	Internal Kind = "internal"
)

// Error carries a kind, a user-visible message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E creates a new taxonomy error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a taxonomy error with a cause attached.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Internal when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case InvalidArgument:
		return http.StatusUnprocessableEntity
	case NotFound:
		return http.StatusNotFound
	case AuthFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-visible message of err. Internal causes are never
// leaked: anything without a kind reports a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
