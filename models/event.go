package models

import "time"

// BookingEventType names a committed lifecycle transition.
type BookingEventType string

const (
	EventBookingConfirmed           BookingEventType = "booking.confirmed"
	EventBookingStarted             BookingEventType = "booking.started"
	EventBookingCancelled           BookingEventType = "booking.cancelled"
	EventBookingCompletionRequested BookingEventType = "booking.completion_requested"
	EventBookingCompleted           BookingEventType = "booking.completed"
)

// BookingEvent is emitted after a transition commits. Delivery is best effort.
type BookingEvent struct {
	ID          string              `json:"id"`
	Type        BookingEventType    `json:"type"`
	BookingID   string              `json:"bookingId"`
	ClientID    string              `json:"clientId"`
	ProviderID  string              `json:"providerId"`
	Status      BookingStatus       `json:"status"`
	Version     int64               `json:"version"`
	ActorID     string              `json:"actorId,omitempty"`
	LateFlag    bool                `json:"lateFlag,omitempty"`
	MinutesLate int                 `json:"minutesLate,omitempty"`
	Evidence    *CompletionEvidence `json:"evidence,omitempty"`
	OccurredAt  time.Time           `json:"occurredAt"`
}
