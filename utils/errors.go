package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the stable classification surfaced to callers
type ErrorKind string

const (
	KindNotFound               ErrorKind = "NotFound"
	KindForbidden              ErrorKind = "Forbidden"
	KindInvalidStateTransition ErrorKind = "InvalidStateTransition"
	KindConflict               ErrorKind = "Conflict"
	KindValidation             ErrorKind = "ValidationError"
	KindExternalTaskFailed     ErrorKind = "ExternalTaskFailed"
)

// DomainError carries a stable error kind plus a human-readable message
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFound builds a NotFound error
func NewNotFound(format string, args ...interface{}) error {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewForbidden builds a Forbidden error
func NewForbidden(format string, args ...interface{}) error {
	return &DomainError{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidTransition builds an InvalidStateTransition error
func NewInvalidTransition(entity string, from, to interface{}) error {
	return &DomainError{
		Kind:    KindInvalidStateTransition,
		Message: fmt.Sprintf("%s cannot transition from %v to %v", entity, from, to),
	}
}

// NewConflict builds a Conflict error; the caller must re-read and retry
func NewConflict(format string, args ...interface{}) error {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewValidation builds a ValidationError
func NewValidation(format string, args ...interface{}) error {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewExternalTaskFailed builds an ExternalTaskFailed error. It is recorded,
// never fatal to unrelated entity operations.
func NewExternalTaskFailed(format string, args ...interface{}) error {
	return &DomainError{Kind: KindExternalTaskFailed, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error kind, or empty string for non-domain errors
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// HTTPStatus maps an error to the HTTP status code handlers respond with
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidStateTransition, KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindExternalTaskFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
