package repository

import (
	"context"

	"FreightIQ/internal/domain/models"
)

// EventStore owns the persisted booking/decline events and the aggregate
// counter document. All writes are serialized by the implementation.
type EventStore interface {
	RecordQuoteRequest(ctx context.Context) error
	LogBooking(ctx context.Context, ev models.TrainingEvent) error
	LogDecline(ctx context.Context, ev models.TrainingEvent) error
	Analytics(ctx context.Context, windowDays int) (models.AnalyticsSnapshot, models.RecentWindow, error)
	Health(ctx context.Context) error
	Close() error
}

// EventPublisher ships training events to an external sink (Kafka).
// Publishing is best-effort: failures never fail the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.TrainingEvent) error
	Close() error
}

// Metrics records operational counters for the quoting service.
type Metrics interface {
	RecordQuote(route string, price float64)
	RecordEvent(kind string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
