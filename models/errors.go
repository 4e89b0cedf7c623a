package models

import (
	"errors"
	"fmt"
)

// ErrorKind categorises failures surfaced to the user.
type ErrorKind string

const (
	KindBackend         ErrorKind = "backend"
	KindNotFound        ErrorKind = "not_found"
	KindValidation      ErrorKind = "validation"
	KindForbidden       ErrorKind = "forbidden"
	KindUnauthenticated ErrorKind = "unauthenticated"
)

// AppError carries a user-facing message and the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewBackendError wraps a failed query or mutation. The message is the backend's own.
func NewBackendError(cause error) *AppError {
	msg := "backend request failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{Kind: KindBackend, Message: msg, Cause: cause}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewValidationError(message string, cause error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Cause: cause}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain, or KindBackend.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindBackend
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}
