package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a resource that resolved but is not owned by the caller.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmailTaken marks a signup against an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)
