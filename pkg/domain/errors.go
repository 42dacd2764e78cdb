package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a record that already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
	// ErrForbidden is returned when a user is not allowed to act on a record they do not own.
	ErrForbidden = errors.New("forbidden")
)
