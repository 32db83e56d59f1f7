// Package apierr defines the error taxonomy shared by all HTTP handlers.
package apierr

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies an API error and determines its HTTP status.
type Kind int

const (
	// KindValidation is malformed, missing, or conflicting input (400).
	KindValidation Kind = iota
	// KindBadCredentials is a failed login. It maps to 404 with a
	// non-field error, matching the legacy enumeration-resistant behavior.
	KindBadCredentials
	// KindUnauthenticated is a missing, invalid, or expired token (401).
	KindUnauthenticated
	// KindForbidden is an authenticated caller lacking a capability (403).
	KindForbidden
	// KindNotFound is a lookup for an id that does not exist (404).
	KindNotFound
	// KindConflict is a duplicate-name create (400).
	KindConflict
)

// NonFieldKey is the field-map key used for errors not tied to a single field.
const NonFieldKey = "non_field_errors"

// Error is a caller-visible API failure. Anything that is not an *Error is
// treated by handlers as an internal error: logged server-side, returned to
// the caller as a generic 500.
type Error struct {
	Kind    Kind
	Message string
	// Fields enumerates every violated field, keyed by its JSON name.
	Fields map[string][]string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadCredentials, KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// Validation returns a non-field validation error.
func Validation(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Fields:  map[string][]string{NonFieldKey: {message}},
	}
}

// FieldValidation returns a validation error scoped to a single field.
func FieldValidation(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Fields:  map[string][]string{field: {message}},
	}
}

// FromValidation converts an ozzo validation.Errors into a field-scoped
// validation error, preserving every violated field.
func FromValidation(err error) *Error {
	var ve validation.Errors
	if errors.As(err, &ve) {
		fields := make(map[string][]string, len(ve))
		for field, ferr := range ve {
			fields[field] = []string{ferr.Error()}
		}
		return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
	}
	return Validation(err.Error())
}

// BadCredentials returns the generic login failure error.
func BadCredentials(message string) *Error {
	return &Error{Kind: KindBadCredentials, Message: message}
}

// Unauthenticated returns a token-level authentication error.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden returns a capability failure for an authenticated caller.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound returns an id-lookup failure.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict returns a duplicate-record error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// As extracts an *Error from err, if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
