package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable classification every operation
// failure carries. Callers branch on the kind; the message is for humans.
type ErrorKind string

const (
	KindValidation    ErrorKind = "VALIDATION"
	KindConflict      ErrorKind = "CONFLICT"
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindState         ErrorKind = "STATE"
	KindAuthorization ErrorKind = "AUTHORIZATION"
	KindPersistence   ErrorKind = "PERSISTENCE"
)

// Error carries an ErrorKind alongside a human-readable message and an
// optional wrapped cause. It satisfies errors.Is/errors.As through Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewState(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func NewAuthorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// WrapPersistence wraps a store failure. Multi-row units of work roll back
// entirely and surface exactly one of these.
func WrapPersistence(err error, format string, args ...any) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...), cause: err}
}

// KindOf extracts the kind from err, defaulting to KindPersistence for
// errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
