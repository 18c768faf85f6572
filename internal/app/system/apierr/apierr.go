// internal/app/system/apierr/apierr.go

// Package apierr defines the error taxonomy shared by every request
// handler: validation, not-found, auth, conflict, dependency, and
// partial-update failures, each carrying the HTTP status it maps to.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind classifies a request failure.
type Kind int

const (
	// Validation: a required field is missing or malformed (400).
	Validation Kind = iota
	// NotFound: a referenced identifier does not resolve (404).
	NotFound
	// Auth: missing token (401) or invalid/expired token (403).
	Auth
	// Forbidden: a token was presented but failed verification (403).
	Forbidden
	// Conflict: a unique field collides or a duplicate relationship
	// was requested (409).
	Conflict
	// Dependency: a store or collaborator call failed (500).
	Dependency
	// Provider: a third-party provider call failed (502).
	Provider
	// PartialUpdate: the primary write succeeded but the paired
	// consistency write did not (207).
	PartialUpdate
)

// Error is a classified request failure. Message is safe to show the
// caller; Err holds the underlying cause for logging only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case Provider:
		return http.StatusBadGateway
	case PartialUpdate:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}

// New builds an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validationf builds a Validation error from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// FromStore translates a store read/write failure: mongo's no-documents
// sentinel becomes NotFound with the supplied message, anything else a
// Dependency error.
func FromStore(err error, notFoundMsg string) *Error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &Error{Kind: NotFound, Message: notFoundMsg, Err: err}
	}
	return &Error{Kind: Dependency, Message: "store operation failed", Err: err}
}

// As unwraps err to an *Error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
