package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrInvalidAmount is returned when an operation receives an amount <= 0.
	// It is raised synchronously, before any I/O.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNoSuchBalance is returned when a debit targets a (user, competition)
	// pair that has never been credited. Decreasing a balance that was never
	// created is an error, not an implicit zero.
	ErrNoSuchBalance = errors.New("no balance for user in competition")

	// ErrInsufficientBalance is returned when a debit would drive a balance
	// below zero. The operation has no partial effect.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicateAward signals that a stake has already been converted to
	// Boost for a competition. Callers skip the stake; it is not surfaced
	// as a failure.
	ErrDuplicateAward = errors.New("stake already awarded for competition")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
