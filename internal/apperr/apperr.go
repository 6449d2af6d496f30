package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure. Every error crossing a service boundary
// carries exactly one kind; anything else is treated as internal.
type Kind int

const (
	KindConflict Kind = iota + 1
	KindNotFound
	KindForbidden
	KindInvalidInput
	KindUnauthorized
	KindInternal
)

// Error is a domain failure whose Message is safe to return to API callers.
// Store driver detail never goes into Message; it is logged at the boundary
// that downgraded it.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func InvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Internal(msg string) *Error     { return &Error{Kind: KindInternal, Message: msg} }

func is(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

func IsConflict(err error) bool     { return is(err, KindConflict) }
func IsNotFound(err error) bool     { return is(err, KindNotFound) }
func IsForbidden(err error) bool    { return is(err, KindForbidden) }
func IsInvalidInput(err error) bool { return is(err, KindInvalidInput) }
func IsUnauthorized(err error) bool { return is(err, KindUnauthorized) }

// IsDomain reports whether err is a classified domain error. Boundaries use
// this to decide between re-raising and downgrading.
func IsDomain(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind != KindInternal
}

// Status maps an error to its HTTP status code. Unclassified errors map to
// 500 like KindInternal.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-safe message for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal error"
}
