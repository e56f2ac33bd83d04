package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the server could not be reached at the transport
	// level (connection refused, timeout, DNS failure).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the credentials or the bearer token were
	// rejected by the server.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the requested entity does not exist server-side.
	ErrNotFound = errors.New("not found")

	// ErrServer is any other non-2xx response.
	ErrServer = errors.New("server error")
)

// Error carries a failed response's HTTP status and the server-supplied
// message. It unwraps to one of the sentinel errors above so callers can
// classify it with errors.Is.
type Error struct {
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: %v (status %d)", e.kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.kind
}

// NewError maps an HTTP status and server message to an *Error with the
// matching sentinel.
func NewError(status int, message string) *Error {
	kind := ErrServer
	switch status {
	case 401, 403:
		kind = ErrUnauthorized
	case 404:
		kind = ErrNotFound
	}
	return &Error{Status: status, Message: message, kind: kind}
}

// ErrorMessage returns the server-supplied message carried by err, or
// fallback when there is none. Use it to surface human-readable failures.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
