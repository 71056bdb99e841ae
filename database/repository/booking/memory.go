package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"petcare/models"
)

// MemoryBookingRepo is an in-process BookingRepository. The mutex only models
// the atomicity a database gives a single conditional write; callers still go
// through the version check.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := b.Clone()
	return &out, nil
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("error creating booking: id %s already exists", booking.ID)
	}
	prepareForInsert(booking)
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *MemoryBookingRepo) ConditionalUpdate(_ context.Context, id string, expectedVersion int64, mutation models.BookingMutation) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return 0, ErrNotFound
	}
	if b.Version != expectedVersion {
		return 0, ErrVersionConflict
	}
	mutation.Apply(&b)
	b.Version++
	r.bookings[id] = b
	return b.Version, nil
}

func (r *MemoryBookingRepo) ListByParticipant(_ context.Context, participantID string, status models.BookingStatus, limit int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if !b.IsParticipant(participantID) {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
