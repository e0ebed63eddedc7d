// Package apperr defines the closed set of failure kinds used across the
// backend. Handlers map kinds to HTTP statuses instead of inspecting
// message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates user-fixable failures from operational ones.
type Kind int

const (
	// KindInternal is the fallback for errors that carry no kind.
	KindInternal Kind = iota

	// KindValidation marks a missing or malformed required input field.
	KindValidation

	// KindParse marks model output that could not be interpreted as the
	// expected JSON shape.
	KindParse

	// KindInvocation marks a store or inference call that failed at the
	// transport/service level.
	KindInvocation

	// KindNotFound marks an update/delete targeting a record absent for
	// the requesting user.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindParse:
		return "parse"
	case KindInvocation:
		return "invocation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a discriminated error: a kind, a user-facing message and an
// optional detail string for the response body.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf builds a KindValidation error with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Parse builds a KindParse error carrying the parse detail.
func Parse(message, detail string) *Error {
	return &Error{Kind: KindParse, Message: message, Detail: detail}
}

// Invocation builds a KindInvocation error wrapping the service failure.
func Invocation(message string, err error) *Error {
	return &Error{Kind: KindInvocation, Message: message, Err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf extracts the kind from an error chain, KindInternal if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error chain to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Detail returns the detail string of the error, or the wrapped error's
// text when no explicit detail was set.
func Detail(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}
