package booking

import (
	"errors"
)

// Typed failures surfaced by the booking service. Controllers translate them
// to HTTP statuses with errors.Is; anything else is a server error.
var (
	// ErrBookingNotFound means the reference resolved to no booking.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrDuplicateTracking means a booking with the tracking id already
	// exists. The existing record is left untouched.
	ErrDuplicateTracking = errors.New("tracking id already exists")

	// ErrInvalidStatus means the requested status is not a member of the
	// status enum.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition means the state machine has no edge from the
	// current status to the requested one.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrStatusConflict means a concurrent writer changed the booking
	// between read and apply. Nothing was written; the caller may retry.
	ErrStatusConflict = errors.New("booking was modified concurrently")

	// ErrValidation covers malformed input that survived request parsing.
	ErrValidation = errors.New("validation failed")
)
