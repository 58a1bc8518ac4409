package service

import (
	"errors"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidRequest = errors.New("validation failed")
	// ErrPersistence hides store failures from callers; the cause is logged
	ErrPersistence = errors.New("unexpected error, check server logs")
)

// ValidationError is a constraint violation reported by the store, such as a
// duplicate title or slug.
type ValidationError struct {
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
