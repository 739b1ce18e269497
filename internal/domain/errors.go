package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrMissingField is returned when a candidate lacks one of its positional fields.
	ErrMissingField = errors.New("missing field")

	// ErrEmptyField is returned when a field is empty after trimming whitespace.
	ErrEmptyField = errors.New("field cannot be empty")
)
