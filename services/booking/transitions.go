package booking

import (
	"time"

	"petcare/models"
)

// actorRule decides which principal may drive a transition.
type actorRule int

const (
	providerOnly actorRule = iota
	clientOnly
	eitherParticipant
	noActor
)

func (r actorRule) allows(b models.Booking, principalID string) bool {
	switch r {
	case noActor:
		return true
	case providerOnly:
		return principalID != "" && principalID == b.ProviderID
	case clientOnly:
		return principalID != "" && principalID == b.ClientID
	case eitherParticipant:
		return b.IsParticipant(principalID)
	}
	return false
}

type mutationInput struct {
	booking  models.Booking
	actor    *models.Principal
	evidence *models.CompletionEvidence
	now      time.Time
	grace    time.Duration
}

type transition struct {
	name   string
	to     models.BookingStatus
	actor  actorRule
	event  models.BookingEventType
	mutate func(in mutationInput) models.BookingMutation
}

var (
	confirmTransition = transition{
		name:  "confirm",
		to:    models.BookingConfirmed,
		actor: providerOnly,
		event: models.EventBookingConfirmed,
		mutate: func(in mutationInput) models.BookingMutation {
			return models.BookingMutation{ConfirmedAt: &in.now}
		},
	}

	cancelTransition = transition{
		name:  "cancel",
		to:    models.BookingCancelled,
		actor: eitherParticipant,
		event: models.EventBookingCancelled,
		mutate: func(in mutationInput) models.BookingMutation {
			m := models.BookingMutation{CancelledAt: &in.now}
			if in.actor != nil {
				m.CancelledBy = in.actor.ID
				m.CancelledByRole = in.actor.Role
			}
			return m
		},
	}

	startTransition = transition{
		name:  "start",
		to:    models.BookingInProgress,
		actor: providerOnly,
		event: models.EventBookingStarted,
		mutate: func(in mutationInput) models.BookingMutation {
			late := IsLate(in.booking.ConfirmedAt, in.now, in.grace)
			minutes := MinutesLate(in.booking.ConfirmedAt, in.now, in.grace)
			return models.BookingMutation{StartedAt: &in.now, LateFlag: &late, MinutesLate: &minutes}
		},
	}

	requestCompletionTransition = transition{
		name:  "request_completion",
		to:    models.BookingCompletionRequested,
		actor: providerOnly,
		event: models.EventBookingCompletionRequested,
		mutate: func(in mutationInput) models.BookingMutation {
			return models.BookingMutation{CompletionRequestedAt: &in.now, Evidence: in.evidence}
		},
	}

	confirmCompletionTransition = transition{
		name:  "confirm_completion",
		to:    models.BookingCompleted,
		actor: clientOnly,
		event: models.EventBookingCompleted,
		mutate: func(in mutationInput) models.BookingMutation {
			return models.BookingMutation{CompletedAt: &in.now}
		},
	}

	finalizeCompletionTransition = transition{
		name:  "finalize_completion",
		to:    models.BookingCompleted,
		actor: noActor,
		event: models.EventBookingCompleted,
		mutate: func(in mutationInput) models.BookingMutation {
			return models.BookingMutation{CompletedAt: &in.now}
		},
	}
)

// IsLate reports whether a start at startedAt falls outside the grace window
// after confirmation. Exactly at the boundary is on time. A booking with no
// recorded confirmation is never late.
func IsLate(confirmedAt *time.Time, startedAt time.Time, grace time.Duration) bool {
	if confirmedAt == nil {
		return false
	}
	return startedAt.Sub(*confirmedAt) > grace
}

// MinutesLate is the whole minutes between confirmation and a late start.
// On-time starts report zero.
func MinutesLate(confirmedAt *time.Time, startedAt time.Time, grace time.Duration) int {
	if !IsLate(confirmedAt, startedAt, grace) {
		return 0
	}
	return int(startedAt.Sub(*confirmedAt) / time.Minute)
}
