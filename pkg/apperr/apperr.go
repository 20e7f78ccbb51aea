// Package apperr classifies service-layer failures so transport code can
// pick a response status without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindInvalidTransition
	KindConfiguration
	KindExternal
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// Message is the client-safe description, without any wrapped cause.
func (e *Error) Message() string { return e.msg }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func Authentication(format string, args ...any) *Error {
	return newError(KindAuthentication, format, args...)
}

func Authorization(format string, args ...any) *Error {
	return newError(KindAuthorization, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func InvalidTransition(format string, args ...any) *Error {
	return newError(KindInvalidTransition, format, args...)
}

func Configuration(format string, args ...any) *Error {
	return newError(KindConfiguration, format, args...)
}

// External marks a failure talking to an upstream provider. The cause is
// kept for logs but never shown to clients.
func External(err error, format string, args ...any) *Error {
	e := newError(KindExternal, format, args...)
	e.err = err
	return e
}

// KindOf extracts the classification from anywhere in the chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindUnknown
}

// MessageOf returns the client-safe message, or a generic one for
// unclassified errors so internals never leak.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.msg
	}
	return "internal server error"
}
