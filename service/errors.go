package service

import (
	"errors"
)

// Error taxonomy for lifecycle operations. All of these abort the
// operation before any write; notification failures are deliberately
// absent because delivery is best-effort and never propagated.
var (
	// ErrNotFound means the target job / application / interview /
	// employment row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied means the caller is not the owner or designated
	// scheduler of the target resource.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition means the current status forbids the
	// requested transition.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict means a concurrent writer committed first; the
	// caller should re-read and retry if still applicable.
	ErrConflict = errors.New("conflicting update, state changed concurrently")

	// ErrValidation means the input is malformed (rating out of
	// range, unknown action type, unknown status value).
	ErrValidation = errors.New("validation failed")
)
