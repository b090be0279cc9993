// Package errdef defines the error categories surfaced to the user.
// Callers wrap failures with one of the constructors and check the category
// with the matching Is function, which looks through wrapped chains.
package errdef

import (
	"errors"
	"fmt"
)

// NewForbidden creates an error for an action the current user may not perform.
func NewForbidden(format string, a ...any) error {
	return forbidden{fmt.Errorf(format, a...)}
}

type forbidden struct{ error }

func (e forbidden) Unwrap() error { return e.error }

// IsForbidden returns true if err is, or wraps, a forbidden error.
func IsForbidden(err error) bool {
	var e forbidden
	return errors.As(err, &e)
}

// NewNotFound creates an error for a resource that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

func (e notFound) Unwrap() error { return e.error }

// IsNotFound returns true if err is, or wraps, a not found error.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// NewUnauthorized creates an error for a request without a known user.
func NewUnauthorized(format string, a ...any) error {
	return unauthorized{fmt.Errorf(format, a...)}
}

type unauthorized struct{ error }

func (e unauthorized) Unwrap() error { return e.error }

// IsUnauthorized returns true if err is, or wraps, an unauthorized error.
func IsUnauthorized(err error) bool {
	var e unauthorized
	return errors.As(err, &e)
}

// NewBadRequest creates an error for invalid input.
func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

func (e badRequest) Unwrap() error { return e.error }

// IsBadRequest returns true if err is, or wraps, a bad request error.
func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}
