package domain

import "errors"

// Common errors shared across packages.
var (
	// ErrValidation marks client-side required-field or format
	// violations caught before any request is issued.
	ErrValidation = errors.New("validation failed")
)
