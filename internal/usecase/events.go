package usecase

import (
	"context"
	"fmt"
	"time"

	"FreightIQ/internal/domain/models"
	domrepo "FreightIQ/internal/domain/repository"
	applogger "FreightIQ/pkg/logger"

	"github.com/google/uuid"
)

// Notifier pushes a logged event to an external HTTP endpoint.
type Notifier interface {
	NotifyEvent(ctx context.Context, ev models.TrainingEvent) error
}

// EventRecorder logs booking/decline events to the store and fans them out
// to the optional Kafka publisher and webhook notifier. Only the store
// write can fail the request; fan-out is best-effort.
type EventRecorder struct {
	store    domrepo.EventStore
	pub      domrepo.EventPublisher
	notifier Notifier
	metrics  domrepo.Metrics
	logger   *applogger.Logger
}

func NewEventRecorder(store domrepo.EventStore, metrics domrepo.Metrics, logger *applogger.Logger) *EventRecorder {
	return &EventRecorder{store: store, metrics: metrics, logger: logger}
}

// SetPublisher attaches the optional Kafka event publisher.
func (r *EventRecorder) SetPublisher(pub domrepo.EventPublisher) { r.pub = pub }

// SetNotifier attaches the optional webhook notifier.
func (r *EventRecorder) SetNotifier(n Notifier) { r.notifier = n }

func (r *EventRecorder) ConfirmBooking(ctx context.Context, req models.ConfirmBookingRequest) (models.TrainingEvent, error) {
	ev := models.TrainingEvent{
		ID:          uuid.NewString(),
		Type:        models.EventBooking,
		RequestID:   req.RequestID,
		CustomerID:  req.CustomerID,
		ForwarderID: req.ForwarderID,
		BookingID:   req.BookingID,
		FinalPrice:  req.FinalPrice,
		LoggedAt:    time.Now().UTC(),
	}
	if err := r.store.LogBooking(ctx, ev); err != nil {
		r.metrics.RecordError("log_booking")
		return models.TrainingEvent{}, fmt.Errorf("log booking: %w", err)
	}
	r.metrics.RecordEvent("booking")
	r.fanOut(ctx, ev)
	return ev, nil
}

func (r *EventRecorder) DeclineQuote(ctx context.Context, req models.DeclineQuoteRequest) (models.TrainingEvent, error) {
	ev := models.TrainingEvent{
		ID:          uuid.NewString(),
		Type:        models.EventDecline,
		RequestID:   req.RequestID,
		CustomerID:  req.CustomerID,
		ForwarderID: req.ForwarderID,
		Reason:      req.Reason,
		LoggedAt:    time.Now().UTC(),
	}
	if err := r.store.LogDecline(ctx, ev); err != nil {
		r.metrics.RecordError("log_decline")
		return models.TrainingEvent{}, fmt.Errorf("log decline: %w", err)
	}
	r.metrics.RecordEvent("decline")
	r.fanOut(ctx, ev)
	return ev, nil
}

// Health reports the backing store's health.
func (r *EventRecorder) Health(ctx context.Context) error {
	return r.store.Health(ctx)
}

func (r *EventRecorder) fanOut(ctx context.Context, ev models.TrainingEvent) {
	if r.pub != nil {
		if err := r.pub.Publish(ctx, ev); err != nil {
			r.metrics.RecordError("publish_event")
			if r.logger != nil {
				r.logger.Warn("event publish failed", applogger.String("event_id", ev.ID), applogger.Error(err))
			}
		}
	}
	if r.notifier != nil {
		if err := r.notifier.NotifyEvent(ctx, ev); err != nil {
			r.metrics.RecordError("notify_event")
			if r.logger != nil {
				r.logger.Warn("event webhook failed", applogger.String("event_id", ev.ID), applogger.Error(err))
			}
		}
	}
}
