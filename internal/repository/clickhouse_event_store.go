package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"FreightIQ/internal/domain/models"
	domrepo "FreightIQ/internal/domain/repository"
	pkgch "FreightIQ/pkg/clickhouse"
	applogger "FreightIQ/pkg/logger"
	"FreightIQ/pkg/util"
)

const (
	eventsTable   = "freightiq.training_events"
	requestsTable = "freightiq.quote_requests"
)

// SchemaStatements returns idempotent DDL for the event tables.
func SchemaStatements() []string {
	return []string{
		`CREATE DATABASE IF NOT EXISTS freightiq`,
		`CREATE TABLE IF NOT EXISTS ` + eventsTable + ` (
            logged_at    DateTime,
            id           String,
            type         String,
            request_id   String,
            customer_id  String,
            forwarder_id String,
            booking_id   String,
            final_price  Float64,
            reason       String
        ) ENGINE = MergeTree() ORDER BY (type, logged_at)`,
		`CREATE TABLE IF NOT EXISTS ` + requestsTable + ` (
            requested_at DateTime
        ) ENGINE = MergeTree() ORDER BY requested_at`,
	}
}

// CHEventStore implements EventStore backed by ClickHouse. Unlike the file
// store, writes need no serialization here; the database handles concurrent
// inserts.
type CHEventStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHEventStore(ch *pkgch.Client, l *applogger.Logger) *CHEventStore {
	return &CHEventStore{db: ch.DB(), l: l}
}

func (s *CHEventStore) RecordQuoteRequest(ctx context.Context) error {
	q := fmt.Sprintf("INSERT INTO %s (requested_at) VALUES (?)", requestsTable)
	if _, err := s.db.ExecContext(ctx, q, time.Now().UTC()); err != nil {
		return fmt.Errorf("record quote request: %w", err)
	}
	return nil
}

func (s *CHEventStore) LogBooking(ctx context.Context, ev models.TrainingEvent) error {
	return s.insertEvent(ctx, ev)
}

func (s *CHEventStore) LogDecline(ctx context.Context, ev models.TrainingEvent) error {
	return s.insertEvent(ctx, ev)
}

func (s *CHEventStore) insertEvent(ctx context.Context, ev models.TrainingEvent) error {
	start := time.Now()
	q := fmt.Sprintf(`INSERT INTO %s
        (logged_at, id, type, request_id, customer_id, forwarder_id, booking_id, final_price, reason)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, eventsTable)
	_, err := s.db.ExecContext(ctx, q,
		ev.LoggedAt,
		ev.ID,
		string(ev.Type),
		ev.RequestID,
		ev.CustomerID,
		ev.ForwarderID,
		ev.BookingID,
		ev.FinalPrice,
		ev.Reason,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse insert event error",
				applogger.String("type", string(ev.Type)),
				applogger.String("request_id", ev.RequestID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert event: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse insert event ok",
			applogger.String("type", string(ev.Type)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHEventStore) Analytics(ctx context.Context, windowDays int) (models.AnalyticsSnapshot, models.RecentWindow, error) {
	var snap models.AnalyticsSnapshot
	recent := models.RecentWindow{Days: windowDays}

	reqQ := fmt.Sprintf("SELECT count() FROM %s", requestsTable)
	if err := s.db.QueryRowContext(ctx, reqQ).Scan(&snap.TotalRequests); err != nil {
		return snap, recent, fmt.Errorf("count requests: %w", err)
	}

	totalQ := fmt.Sprintf(`SELECT
        countIf(type = 'booking'), countIf(type = 'decline'),
        countIf(type = 'booking' AND logged_at >= ?),
        countIf(type = 'decline' AND logged_at >= ?)
        FROM %s`, eventsTable)
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)
	if err := s.db.QueryRowContext(ctx, totalQ, cutoff, cutoff).Scan(
		&snap.TotalBookings, &snap.TotalDeclines, &recent.Bookings, &recent.Declines,
	); err != nil {
		return snap, recent, fmt.Errorf("count events: %w", err)
	}

	snap.WinRate = chWinRate(snap.TotalBookings, snap.TotalDeclines)
	recent.WinRate = chWinRate(recent.Bookings, recent.Declines)
	return snap, recent, nil
}

func (s *CHEventStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHEventStore) Close() error {
	return nil // pool is owned by pkg/clickhouse
}

func chWinRate(bookings, declines int64) float64 {
	total := bookings + declines
	if total == 0 {
		return 0
	}
	return util.Round3(float64(bookings) / float64(total))
}

var _ domrepo.EventStore = (*CHEventStore)(nil)
