package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrProfileIncomplete = errors.New("profile setup is required before booking")
)

// ValidationError reports bad caller input. The operation is aborted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError reports input that clashes with existing state, such as a
// taken nickname or an already registered phone number.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ExternalServiceError wraps a failure of the persistence or identity backend.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// ExpiryError reports an action attempted outside its time window.
type ExpiryError struct {
	Window string
}

func (e *ExpiryError) Error() string {
	return e.Window + " window has closed"
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

func NewExternalServiceError(op string, err error) error {
	return &ExternalServiceError{Op: op, Err: err}
}
