package services

import "errors"

var (
	// ErrNotAuthenticated means an operation requiring a resolved identity
	// was invoked without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidRequestState means a collaboration request precondition was
	// violated. No write is performed.
	ErrInvalidRequestState = errors.New("invalid request state")

	// ErrNotResponsible means the caller is not the responsible party of the
	// project and may not decide its requests.
	ErrNotResponsible = errors.New("not the project responsible")
)
