package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/coffee-outlets/schemas"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the only error type the service returns. Message is stable and
// safe to show to clients; Err keeps the cause for logging and errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Fields  []schemas.FieldError
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

func Internalf(cause error, format string, args ...interface{}) *Error {
	return Internal(fmt.Sprintf(format, args...), cause)
}

// Invalid wraps a schema failure. Anything that is not a ValidationError is
// treated as internal.
func Invalid(err error) *Error {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: verr.Error(), Err: verr, Fields: verr.Errors}
	}
	return Internal(err.Error(), err)
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
