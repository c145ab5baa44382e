package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrUnprocessable is used for semantic validation failures (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable")
	// ErrUnknownHead indicates a head identifier outside the configured taxonomy
	ErrUnknownHead = errors.New("unknown_head")
	// ErrUnknownSubhead indicates a subhead not listed under the target head
	ErrUnknownSubhead = errors.New("unknown_subhead")
	// ErrBadPattern indicates a user-supplied pattern that does not compile
	ErrBadPattern = errors.New("bad_pattern")
	// ErrNoHistory indicates an undo request with an empty snapshot stack
	ErrNoHistory = errors.New("no_history")
)
