package models

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable is returned when adding a product marked as unavailable.
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrMalformedDocument is returned when a persisted document cannot be decoded.
	ErrMalformedDocument = errors.New("malformed persisted document")
)

// ValidationError reports a user-facing problem with one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
