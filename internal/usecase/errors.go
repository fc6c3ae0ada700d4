package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrRateLimited aborts the whole run; the previous snapshot stays on disk.
	ErrRateLimited       = errors.New("rate limit exhausted")
	ErrMissingCredential = errors.New("missing credential")
)
