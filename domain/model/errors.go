package model

import "errors"

// Sentinel errors shared across usecases and handlers. Handlers translate
// them to HTTP status codes; repositories wrap storage errors into them so
// the mapping stays in one place.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)
