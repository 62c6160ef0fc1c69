package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"FreightIQ/internal/domain/models"
	"FreightIQ/internal/domain/repository"
	applogger "FreightIQ/pkg/logger"
	"FreightIQ/pkg/util"
)

// eventsDocument is the on-disk layout of the raw event log.
type eventsDocument struct {
	Bookings []models.TrainingEvent `json:"bookings"`
	Declines []models.TrainingEvent `json:"declines"`
}

type mutationKind int

const (
	mutRequest mutationKind = iota
	mutBooking
	mutDecline
)

type mutation struct {
	kind  mutationKind
	event models.TrainingEvent
	reply chan error
}

// FileEventStore persists events and counters as two JSON documents. All
// mutations flow through a single writer goroutine, so concurrent calls
// can never lose an update; each document is rewritten wholesale via a
// temp file and rename.
type FileEventStore struct {
	eventsPath    string
	analyticsPath string
	logger        *applogger.Logger

	mu       sync.RWMutex
	events   eventsDocument
	snapshot models.AnalyticsSnapshot

	jobs      chan mutation
	done      chan struct{}
	sendMu    sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

var errStoreClosed = errors.New("event store closed")

func NewFileEventStore(eventsPath, analyticsPath string, queueSize int, logger *applogger.Logger) (*FileEventStore, error) {
	if queueSize <= 0 {
		queueSize = 64
	}
	s := &FileEventStore{
		eventsPath:    eventsPath,
		analyticsPath: analyticsPath,
		logger:        logger,
		jobs:          make(chan mutation, queueSize),
		done:          make(chan struct{}),
	}

	for _, p := range []string{eventsPath, analyticsPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir: %w", err)
			}
		}
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	go s.writerLoop()
	logger.Info("file event store ready",
		applogger.String("events_path", eventsPath),
		applogger.String("analytics_path", analyticsPath),
		applogger.Int("queue_size", queueSize))
	return s, nil
}

func (s *FileEventStore) load() error {
	if b, err := os.ReadFile(s.eventsPath); err == nil {
		if err := json.Unmarshal(b, &s.events); err != nil {
			return fmt.Errorf("parse events document: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read events document: %w", err)
	}

	if b, err := os.ReadFile(s.analyticsPath); err == nil {
		if err := json.Unmarshal(b, &s.snapshot); err != nil {
			return fmt.Errorf("parse analytics document: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read analytics document: %w", err)
	}
	return nil
}

func (s *FileEventStore) writerLoop() {
	defer close(s.done)
	for m := range s.jobs {
		m.reply <- s.apply(m)
	}
}

func (s *FileEventStore) apply(m mutation) error {
	s.mu.Lock()
	switch m.kind {
	case mutRequest:
		s.snapshot.TotalRequests++
	case mutBooking:
		s.events.Bookings = append(s.events.Bookings, m.event)
		s.snapshot.TotalBookings++
	case mutDecline:
		s.events.Declines = append(s.events.Declines, m.event)
		s.snapshot.TotalDeclines++
	}
	s.snapshot.WinRate = winRate(s.snapshot.TotalBookings, s.snapshot.TotalDeclines)
	s.mu.Unlock()

	if m.kind != mutRequest {
		if err := writeJSONFile(s.eventsPath, s.eventsSnapshot()); err != nil {
			return fmt.Errorf("persist events: %w", err)
		}
	}
	if err := writeJSONFile(s.analyticsPath, s.counterSnapshot()); err != nil {
		return fmt.Errorf("persist analytics: %w", err)
	}
	return nil
}

func (s *FileEventStore) eventsSnapshot() eventsDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := eventsDocument{
		Bookings: make([]models.TrainingEvent, len(s.events.Bookings)),
		Declines: make([]models.TrainingEvent, len(s.events.Declines)),
	}
	copy(doc.Bookings, s.events.Bookings)
	copy(doc.Declines, s.events.Declines)
	return doc
}

func (s *FileEventStore) counterSnapshot() models.AnalyticsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *FileEventStore) submit(ctx context.Context, m mutation) error {
	m.reply = make(chan error, 1)

	s.sendMu.RLock()
	if s.closed {
		s.sendMu.RUnlock()
		return errStoreClosed
	}
	select {
	case s.jobs <- m:
		s.sendMu.RUnlock()
	case <-ctx.Done():
		s.sendMu.RUnlock()
		return ctx.Err()
	}

	select {
	case err := <-m.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *FileEventStore) RecordQuoteRequest(ctx context.Context) error {
	return s.submit(ctx, mutation{kind: mutRequest})
}

func (s *FileEventStore) LogBooking(ctx context.Context, ev models.TrainingEvent) error {
	return s.submit(ctx, mutation{kind: mutBooking, event: ev})
}

func (s *FileEventStore) LogDecline(ctx context.Context, ev models.TrainingEvent) error {
	return s.submit(ctx, mutation{kind: mutDecline, event: ev})
}

// Analytics derives the counter snapshot plus a rolling window computed by
// scanning the full event list. Linear in total events; fine at the toy
// scale this store is meant for.
func (s *FileEventStore) Analytics(_ context.Context, windowDays int) (models.AnalyticsSnapshot, models.RecentWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	recent := models.RecentWindow{Days: windowDays}
	for _, ev := range s.events.Bookings {
		if ev.LoggedAt.After(cutoff) {
			recent.Bookings++
		}
	}
	for _, ev := range s.events.Declines {
		if ev.LoggedAt.After(cutoff) {
			recent.Declines++
		}
	}
	recent.WinRate = winRate(recent.Bookings, recent.Declines)

	return s.snapshot, recent, nil
}

func (s *FileEventStore) Health(_ context.Context) error {
	select {
	case <-s.done:
		return errStoreClosed
	default:
		return nil
	}
}

// Close drains pending writes and stops the writer.
func (s *FileEventStore) Close() error {
	s.closeOnce.Do(func() {
		s.sendMu.Lock()
		s.closed = true
		close(s.jobs)
		s.sendMu.Unlock()
		<-s.done
	})
	return nil
}

func winRate(bookings, declines int64) float64 {
	total := bookings + declines
	if total == 0 {
		return 0
	}
	return util.Round3(float64(bookings) / float64(total))
}

func writeJSONFile(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ repository.EventStore = (*FileEventStore)(nil)
