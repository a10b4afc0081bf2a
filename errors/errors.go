package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ValidationError carries every violated field constraint of a request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

func NewValidation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// NotFoundError reports an absent entity, named so callers can tell a
// missing user from a missing gym.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NewNotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// ConflictError reports a uniqueness or duplication violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// InvalidIDError reports an identifier the active backend cannot parse.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id format: %q", e.ID)
}

func NewInvalidID(id string) *InvalidIDError {
	return &InvalidIDError{ID: id}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return stderrors.As(err, &target)
}

func IsInvalidID(err error) bool {
	var target *InvalidIDError
	return stderrors.As(err, &target)
}
