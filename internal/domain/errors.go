// Package domain contains the core business entities for the rental service.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - represent business rule violations.
var (
	// ErrNotFound is returned when a referenced entity is absent from the store.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidRange is returned when a rental period is not at least one day
	// or starts in the past.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrCarUnavailable is returned when a car cannot be rented for the
	// requested window.
	ErrCarUnavailable = errors.New("car is not available")

	// ErrCustomerDelinquent is returned when a customer with pending payments
	// attempts to start a rental.
	ErrCustomerDelinquent = errors.New("customer has pending payments")

	// ErrInvalidState is returned when a transition is attempted from a
	// terminal or wrong state.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrInvalidPaymentMethod is returned for unknown payment methods.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrDuplicateKey is returned for plate/CPF/email collisions.
	ErrDuplicateKey = errors.New("duplicate unique field")

	// ErrConcurrentConflict is returned when a race is detected on a
	// check-then-write sequence.
	ErrConcurrentConflict = errors.New("concurrent modification detected")

	// ErrValidation is returned for malformed input data.
	ErrValidation = errors.New("validation error")
)

// BusinessError wraps a domain error with the entity it concerns, so callers
// can render a precise message.
type BusinessError struct {
	Err    error
	Entity string
	ID     int32
	Detail string
}

func (e *BusinessError) Error() string {
	msg := e.Err.Error()
	if e.Entity != "" {
		msg = fmt.Sprintf("%s %d: %s", e.Entity, e.ID, msg)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a BusinessError for the given entity.
func NewBusinessError(err error, entity string, id int32, detail string) *BusinessError {
	return &BusinessError{Err: err, Entity: entity, ID: id, Detail: detail}
}
