package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed backend call. Status is the HTTP status of the response,
// or 0 when the request never produced one (transport failure). Detail holds
// the backend-supplied message when the error body carried one.
//
// Callers classify failures through the Status field (IsUnauthorized,
// IsNotFound) instead of inspecting the message text.
type Error struct {
	Op     string // e.g. "login", "fetch tickets"
	Status int
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("%s failed: %d", e.Op, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}
