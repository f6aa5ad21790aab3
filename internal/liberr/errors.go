// internal/liberr/errors.go
// Package liberr defines the error taxonomy shared by all services:
// validation failures, missing references, business-rule conflicts and
// storage failures. Storage failures always wrap their underlying cause.
package liberr

import (
	"errors"
	"fmt"
)

// ConflictReason identifies which business precondition was violated.
type ConflictReason string

const (
	ReasonNotAvailable   ConflictReason = "NOT_AVAILABLE"
	ReasonMemberInactive ConflictReason = "MEMBER_INACTIVE"
	ReasonHasOverdue     ConflictReason = "HAS_OVERDUE"
	ReasonNotActive      ConflictReason = "NOT_ACTIVE"
)

// ConflictError signals a violated business precondition. The operation was
// rejected before any mutation happened.
type ConflictError struct {
	Reason  ConflictReason
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict (%s): %s", e.Reason, e.Message)
}

// Conflict builds a ConflictError.
func Conflict(reason ConflictReason, message string) error {
	return &ConflictError{Reason: reason, Message: message}
}

// IsConflict reports whether err is a ConflictError with the given reason.
func IsConflict(err error, reason ConflictReason) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Reason == reason
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// ValidationError signals malformed input or a violated field constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError signals a persistence failure. It always carries the
// underlying cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err into a StorageError, or returns nil when err is nil.
// An error that is already a StorageError is returned unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
