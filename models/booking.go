package models

import (
	"fmt"
	"time"
)

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingPending             BookingStatus = "PENDING"
	BookingConfirmed           BookingStatus = "CONFIRMED"
	BookingInProgress          BookingStatus = "IN_PROGRESS"
	BookingCompletionRequested BookingStatus = "COMPLETION_REQUESTED"
	BookingCompleted           BookingStatus = "COMPLETED"
	BookingCancelled           BookingStatus = "CANCELLED"
)

// bookingTransitions is the only graph a booking may move along.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:             {BookingConfirmed, BookingCancelled},
	BookingConfirmed:           {BookingInProgress, BookingCancelled},
	BookingInProgress:          {BookingCompletionRequested},
	BookingCompletionRequested: {BookingCompleted},
	BookingCompleted:           {},
	BookingCancelled:           {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := bookingTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// CompletionEvidence is forwarded untouched to the completion review step.
type CompletionEvidence struct {
	Notes       string   `bson:"notes" json:"notes"`
	Attachments []string `bson:"attachments" json:"attachments"`
}

// Booking is a service booking between a client and a provider. It is created
// PENDING by checkout and afterwards only changes through lifecycle transitions.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	ClientID       string        `bson:"clientId" json:"clientId"`
	ProviderID     string        `bson:"providerId" json:"providerId"`
	Status         BookingStatus `bson:"status" json:"status"`
	ScheduledStart time.Time     `bson:"scheduledStart" json:"scheduledStart"`
	GrandTotal     float64       `bson:"grandTotal" json:"grandTotal"`

	ConfirmedAt           *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	StartedAt             *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletionRequestedAt *time.Time `bson:"completionRequestedAt,omitempty" json:"completionRequestedAt,omitempty"`
	CompletedAt           *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt           *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	// LateFlag and MinutesLate are fixed when the IN_PROGRESS transition commits.
	LateFlag    bool `bson:"lateFlag" json:"lateFlag"`
	MinutesLate int  `bson:"minutesLate" json:"minutesLate,omitempty"`

	CancelledBy     string              `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledByRole Role                `bson:"cancelledByRole,omitempty" json:"cancelledByRole,omitempty"`
	Evidence        *CompletionEvidence `bson:"evidence,omitempty" json:"evidence,omitempty"`

	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsParticipant reports whether principalID is the client or the provider.
func (b Booking) IsParticipant(principalID string) bool {
	return principalID != "" && (principalID == b.ClientID || principalID == b.ProviderID)
}

// BookingMutation is the set of fields one transition writes. Nil pointers
// are left untouched. The version bump is applied by the store.
type BookingMutation struct {
	Status                BookingStatus
	ConfirmedAt           *time.Time
	StartedAt             *time.Time
	CompletionRequestedAt *time.Time
	CompletedAt           *time.Time
	CancelledAt           *time.Time
	LateFlag              *bool
	MinutesLate           *int
	CancelledBy           string
	CancelledByRole       Role
	Evidence              *CompletionEvidence
	UpdatedAt             time.Time
}

// Apply writes the mutation onto b. It does not touch Version.
func (m BookingMutation) Apply(b *Booking) {
	if m.Status != "" {
		b.Status = m.Status
	}
	if m.ConfirmedAt != nil {
		t := *m.ConfirmedAt
		b.ConfirmedAt = &t
	}
	if m.StartedAt != nil {
		t := *m.StartedAt
		b.StartedAt = &t
	}
	if m.CompletionRequestedAt != nil {
		t := *m.CompletionRequestedAt
		b.CompletionRequestedAt = &t
	}
	if m.CompletedAt != nil {
		t := *m.CompletedAt
		b.CompletedAt = &t
	}
	if m.CancelledAt != nil {
		t := *m.CancelledAt
		b.CancelledAt = &t
	}
	if m.LateFlag != nil {
		b.LateFlag = *m.LateFlag
	}
	if m.MinutesLate != nil {
		b.MinutesLate = *m.MinutesLate
	}
	if m.CancelledBy != "" {
		b.CancelledBy = m.CancelledBy
	}
	if m.CancelledByRole != "" {
		b.CancelledByRole = m.CancelledByRole
	}
	if m.Evidence != nil {
		ev := CompletionEvidence{
			Notes:       m.Evidence.Notes,
			Attachments: append([]string(nil), m.Evidence.Attachments...),
		}
		b.Evidence = &ev
	}
	if !m.UpdatedAt.IsZero() {
		b.UpdatedAt = m.UpdatedAt
	}
}

// Clone returns a deep copy so callers never share pointer fields with a store.
func (b Booking) Clone() Booking {
	out := b
	copyTime := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := *t
		return &v
	}
	out.ConfirmedAt = copyTime(b.ConfirmedAt)
	out.StartedAt = copyTime(b.StartedAt)
	out.CompletionRequestedAt = copyTime(b.CompletionRequestedAt)
	out.CompletedAt = copyTime(b.CompletedAt)
	out.CancelledAt = copyTime(b.CancelledAt)
	if b.Evidence != nil {
		ev := CompletionEvidence{
			Notes:       b.Evidence.Notes,
			Attachments: append([]string(nil), b.Evidence.Attachments...),
		}
		out.Evidence = &ev
	}
	return out
}
