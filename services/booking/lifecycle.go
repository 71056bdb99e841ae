package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petcare/metrics"
	"petcare/models"
	"petcare/services/access"
	"petcare/services/notification"

	bookingRepo "petcare/database/repository/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultGraceWindow is how long after confirmation a start still counts as on time.
const DefaultGraceWindow = 15 * time.Minute

const (
	DefaultListLimit = 20
	MaxListLimit     = 50
)

// Lifecycle performs guarded, version-checked booking transitions.
type Lifecycle struct {
	repo     bookingRepo.BookingRepository
	notifier notification.EventNotifier
	logger   *zap.Logger
	metrics  *metrics.Metrics
	grace    time.Duration
	now      func() time.Time
}

type Option func(*Lifecycle)

func WithLogger(logger *zap.Logger) Option {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Lifecycle) { l.metrics = m }
}

func WithGraceWindow(d time.Duration) Option {
	return func(l *Lifecycle) {
		if d > 0 {
			l.grace = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests around the grace window.
func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) {
		if now != nil {
			l.now = now
		}
	}
}

func NewLifecycle(repo bookingRepo.BookingRepository, notifier notification.EventNotifier, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		repo:     repo,
		notifier: notifier,
		logger:   zap.NewNop(),
		grace:    DefaultGraceWindow,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Confirm moves a PENDING booking to CONFIRMED. Only the provider may confirm.
func (l *Lifecycle) Confirm(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error) {
	return l.apply(ctx, bookingID, rc, confirmTransition, nil)
}

// Cancel moves a PENDING or CONFIRMED booking to CANCELLED. Either participant may cancel.
func (l *Lifecycle) Cancel(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error) {
	return l.apply(ctx, bookingID, rc, cancelTransition, nil)
}

// Start moves a CONFIRMED booking to IN_PROGRESS and fixes its late flag.
func (l *Lifecycle) Start(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error) {
	return l.apply(ctx, bookingID, rc, startTransition, nil)
}

// RequestCompletion moves an IN_PROGRESS booking to COMPLETION_REQUESTED and
// stores the provider's evidence for review.
func (l *Lifecycle) RequestCompletion(ctx context.Context, bookingID string, rc access.RequestContext, evidence models.CompletionEvidence) (*models.Booking, error) {
	return l.apply(ctx, bookingID, rc, requestCompletionTransition, &evidence)
}

// ConfirmCompletion lets the client approve a completion request.
func (l *Lifecycle) ConfirmCompletion(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error) {
	return l.apply(ctx, bookingID, rc, confirmCompletionTransition, nil)
}

// FinalizeCompletion completes a booking on behalf of an external settlement
// or review flow. No participant check applies.
func (l *Lifecycle) FinalizeCompletion(ctx context.Context, bookingID string) (*models.Booking, error) {
	return l.apply(ctx, bookingID, access.RequestContext{}, finalizeCompletionTransition, nil)
}

// Get returns the booking to either participant.
func (l *Lifecycle) Get(ctx context.Context, bookingID string, rc access.RequestContext) (*models.Booking, error) {
	b, err := l.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParticipant(rc.PrincipalID()) {
		return nil, access.Deny(access.ReasonNotParticipant, "principal is not on booking %s", bookingID)
	}
	return b, nil
}

// List returns the caller's bookings, as client or provider, newest first.
// An empty status lists every status. limit is clamped to [1, MaxListLimit]
// with DefaultListLimit when unset.
func (l *Lifecycle) List(ctx context.Context, rc access.RequestContext, status models.BookingStatus, limit int) ([]models.Booking, error) {
	principalID := rc.PrincipalID()
	if principalID == "" {
		return nil, access.Deny(access.ReasonNotParticipant, "listing bookings requires a principal")
	}
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatusFilter
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	bookings, err := l.repo.ListByParticipant(ctx, principalID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", principalID, err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (l *Lifecycle) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := l.repo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	return b, nil
}

func (l *Lifecycle) apply(ctx context.Context, bookingID string, rc access.RequestContext, t transition, evidence *models.CompletionEvidence) (*models.Booking, error) {
	started := time.Now()
	booking, err := l.transition(ctx, bookingID, rc, t, evidence)
	l.metrics.ObserveTransition(t.name, outcomeOf(err), started)

	fields := []zap.Field{
		zap.String("transition", t.name),
		zap.String("booking_id", bookingID),
		zap.String("actor_id", rc.PrincipalID()),
	}
	switch {
	case err == nil:
		l.logger.Info("booking transition committed", append(fields,
			zap.String("status", string(booking.Status)),
			zap.Int64("version", booking.Version))...)
	case errors.Is(err, ErrConflict):
		l.logger.Warn("booking transition lost a concurrent update", fields...)
	default:
		l.logger.Debug("booking transition rejected", append(fields, zap.Error(err))...)
	}
	return booking, err
}

func (l *Lifecycle) transition(ctx context.Context, bookingID string, rc access.RequestContext, t transition, evidence *models.CompletionEvidence) (*models.Booking, error) {
	current, err := l.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !t.actor.allows(*current, rc.PrincipalID()) {
		return nil, access.Deny(access.ReasonNotParticipant, "principal may not %s booking %s", t.name, bookingID)
	}

	if !current.Status.CanTransitionTo(t.to) {
		return nil, &InvalidTransitionError{Current: current.Status, Requested: t.to}
	}

	if t.to == models.BookingCompletionRequested && (evidence == nil || len(evidence.Attachments) == 0) {
		return nil, ErrEvidenceRequired
	}

	// Stores keep millisecond precision; truncating keeps the returned
	// booking identical to what a later read sees.
	now := l.now().UTC().Truncate(time.Millisecond)
	mutation := t.mutate(mutationInput{
		booking:  *current,
		actor:    rc.Principal,
		evidence: evidence,
		now:      now,
		grace:    l.grace,
	})
	mutation.Status = t.to
	mutation.UpdatedAt = now

	newVersion, err := l.repo.ConditionalUpdate(ctx, bookingID, current.Version, mutation)
	switch {
	case errors.Is(err, bookingRepo.ErrVersionConflict):
		return nil, ErrConflict
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("update booking %s: %w", bookingID, err)
	}

	updated := current.Clone()
	mutation.Apply(&updated)
	updated.Version = newVersion

	l.publish(ctx, t.event, updated, rc.PrincipalID(), now)
	return &updated, nil
}

// publish is best effort: the transition has already committed.
func (l *Lifecycle) publish(ctx context.Context, eventType models.BookingEventType, b models.Booking, actorID string, at time.Time) {
	if l.notifier == nil {
		return
	}
	event := models.BookingEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		BookingID:  b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Status:     b.Status,
		Version:    b.Version,
		ActorID:    actorID,
		OccurredAt: at,
	}
	switch eventType {
	case models.EventBookingStarted:
		event.LateFlag = b.LateFlag
		event.MinutesLate = b.MinutesLate
	case models.EventBookingCompletionRequested:
		event.Evidence = b.Evidence
	}

	if err := l.notifier.Publish(context.WithoutCancel(ctx), event); err != nil {
		l.metrics.ObservePublishFailure(string(eventType))
		l.logger.Error("failed to publish booking event",
			zap.String("event_id", event.ID),
			zap.String("type", string(eventType)),
			zap.String("booking_id", b.ID),
			zap.Error(err))
	}
}

func outcomeOf(err error) string {
	var authzErr *access.AuthorizationError
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEvidenceRequired):
		return "evidence_required"
	case errors.As(err, &authzErr):
		return "not_participant"
	default:
		return "error"
	}
}
