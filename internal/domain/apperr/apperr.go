// Package apperr holds the error kinds every operation reports to its caller.
// Entity packages wrap these so callers can branch with errors.Is on the kind
// without knowing which entity failed.
package apperr

import "errors"

var (
	ErrPreconditionFailed   = errors.New("precondition failed")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrNotFound             = errors.New("not found")
	ErrStorageInconsistency = errors.New("storage inconsistency")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
)
