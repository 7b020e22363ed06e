package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the category of a rejected operation.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalidTransition
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "FORBIDDEN"
	case KindConflict:
		return "CONFLICT"
	case KindInvalidTransition:
		return "INVALID_TRANSITION"
	case KindUnauthenticated:
		return "AUTHENTICATION_ERROR"
	default:
		return "UNKNOWN"
	}
}

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when an operation is rejected by business rules.
// Anything that is not an *Error is treated as an internal failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewConflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidTransition(from, to fmt.Stringer) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot change status from %s to %s", from, to),
	}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// KindOf reports the kind of err, or 0 when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
