package domain

import "errors"

// Error taxonomy for the bookkeeping core. Callers classify failures with
// errors.Is; storage maps driver errors onto these sentinels so nothing above
// the storage layer inspects SQLSTATEs.
var (
	// ErrNotFound means the resource does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller is not authenticated or not allowed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation means the input is malformed (bad amount, missing interval).
	ErrValidation = errors.New("validation failed")

	// ErrTransient means an atomic write aborted and the operation may be retried.
	ErrTransient = errors.New("transient storage failure")
)
