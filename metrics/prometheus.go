package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	AuthorizationDecisions *prometheus.CounterVec
	BookingTransitions     *prometheus.CounterVec
	TransitionDuration     *prometheus.HistogramVec
	EventPublishFailures   *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuthorizationDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_decisions_total",
			Help:      "Authorization pipeline outcomes per operation",
		}, []string{"operation", "outcome", "reason"}),
		BookingTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transition attempts by outcome",
		}, []string{"transition", "outcome"}),
		TransitionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_transition_duration_seconds",
			Help:      "Time taken to run a booking transition",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transition"}),
		EventPublishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_events_publish_failures_total",
			Help:      "Domain events that could not be handed to the notifier",
		}, []string{"type"}),
	}
}

// ObserveAuthorization records one pipeline decision. Safe on a nil receiver.
func (m *Metrics) ObserveAuthorization(operation, outcome, reason string) {
	if m == nil {
		return
	}
	m.AuthorizationDecisions.WithLabelValues(operation, outcome, reason).Inc()
}

// ObserveTransition records one transition attempt. Safe on a nil receiver.
func (m *Metrics) ObserveTransition(transition, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(transition, outcome).Inc()
	m.TransitionDuration.WithLabelValues(transition).Observe(time.Since(started).Seconds())
}

// ObservePublishFailure records an event the notifier rejected. Safe on a nil receiver.
func (m *Metrics) ObservePublishFailure(eventType string) {
	if m == nil {
		return
	}
	m.EventPublishFailures.WithLabelValues(eventType).Inc()
}
