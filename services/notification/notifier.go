package notification

import (
	"context"
	"errors"

	"petcare/models"

	"go.uber.org/zap"
)

// EventNotifier hands committed booking events to whoever is listening.
// Implementations must not assume the caller retries.
type EventNotifier interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

// LogNotifier writes every event to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(_ context.Context, event models.BookingEvent) error {
	n.logger.Info("booking event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("booking_id", event.BookingID),
		zap.String("status", string(event.Status)),
		zap.Int64("version", event.Version),
		zap.String("actor_id", event.ActorID),
		zap.Bool("late", event.LateFlag),
	)
	return nil
}

// MultiNotifier fans an event out to every notifier. All of them are tried;
// the returned error joins the individual failures.
type MultiNotifier []EventNotifier

func (m MultiNotifier) Publish(ctx context.Context, event models.BookingEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
