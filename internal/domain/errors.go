package domain

import "errors"

// Error classes shared by every layer. Layer-specific sentinels wrap one of
// these so transports can map an error by class with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
)
