package models

import "errors"

// Sentinel errors used across repositories and handlers. Callers wrap these
// with fmt.Errorf("%w: ...") and the HTTP layer maps them to status codes
// with errors.Is.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrPermissionDenied indicates the caller is not allowed to perform
	// the operation on this resource.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation indicates the request payload or parameters are invalid.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidOperation indicates the operation is not allowed in the
	// current state, such as following yourself.
	ErrInvalidOperation = errors.New("invalid operation")
)
