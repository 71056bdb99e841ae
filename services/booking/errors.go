package booking

import (
	"errors"
	"fmt"

	"petcare/models"
)

var (
	// ErrNotFound is returned when the booking does not exist.
	ErrNotFound = errors.New("booking not found")
	// ErrConflict means another writer committed first. Retrying is the caller's call.
	ErrConflict = errors.New("booking was modified concurrently")
	// ErrEvidenceRequired rejects a completion request without proof attachments.
	ErrEvidenceRequired = errors.New("completion request requires at least one attachment")
	// ErrInvalidStatusFilter rejects a listing filter that names no known status.
	ErrInvalidStatusFilter = errors.New("unknown booking status filter")
)

// InvalidTransitionError is returned when the booking's current status does
// not allow the requested one.
type InvalidTransitionError struct {
	Current   models.BookingStatus
	Requested models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.Current, e.Requested)
}

// Is matches any InvalidTransitionError; use errors.As for the statuses.
func (e *InvalidTransitionError) Is(target error) bool {
	_, ok := target.(*InvalidTransitionError)
	return ok
}

// ErrInvalidTransition is a match-all target for errors.Is.
var ErrInvalidTransition = &InvalidTransitionError{}
