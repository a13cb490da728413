package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized is returned when a request carries no usable subject.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	// ErrBackendUnavailable marks a failed round trip to the backing store.
	// The application layer logs it and degrades to a miss or zero value;
	// it must never reach an HTTP or worker caller.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
