package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures; handlers map kinds onto HTTP
// status codes in exactly one place.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// ServiceError is the taxonomy error carried across the service boundary.
// Message is safe to return to the caller; Err holds the wrapped cause and
// is logged server-side only.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}

func NewUnauthenticatedError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: message, Err: err}
}

// AsServiceError extracts a *ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	if se, ok := AsServiceError(err); ok {
		return se.Kind == kind
	}
	return false
}
