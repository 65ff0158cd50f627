package scheduling

import "errors"

// Domain errors surfaced by the resolver and the lifecycle guards.
// Handlers map these to 400 responses; ownership and lookup failures
// are handled at the HTTP layer as 403/404.
var (
	// ErrInvalidInput marks malformed availability data, e.g. a window
	// whose start is not before its end.
	ErrInvalidInput = errors.New("invalid availability data")

	// ErrInvalidTransition marks a state change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidStatus marks a status value outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid status value")
)
