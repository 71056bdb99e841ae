package bookingRepo

import (
	"context"
	"errors"

	"petcare/models"
)

var (
	// ErrNotFound is returned when no booking carries the requested id.
	ErrNotFound = errors.New("booking not found")
	// ErrVersionConflict is returned when the stored version moved since it was read.
	ErrVersionConflict = errors.New("booking version changed concurrently")
)

// BookingRepository persists bookings. Status changes go exclusively through
// ConditionalUpdate; bookings are never deleted.
type BookingRepository interface {
	// GetByID loads the booking and its current version.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Create inserts a new booking at version 1.
	Create(ctx context.Context, booking *models.Booking) error
	// ConditionalUpdate applies mutation only if the stored version equals
	// expectedVersion, incrementing it. It returns the new version.
	ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, mutation models.BookingMutation) (int64, error)
	// ListByParticipant returns up to limit bookings where participantID is
	// the client or the provider, newest first. An empty status matches all.
	ListByParticipant(ctx context.Context, participantID string, status models.BookingStatus, limit int) ([]models.Booking, error)
}
