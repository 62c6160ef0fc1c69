package usecase

import (
	"context"
	"testing"
	"time"

	"FreightIQ/internal/domain/models"
	"FreightIQ/pkg/cache"
)

type stubStore struct {
	snapshot models.AnalyticsSnapshot
	recent   models.RecentWindow
	calls    int
}

func (s *stubStore) RecordQuoteRequest(context.Context) error              { return nil }
func (s *stubStore) LogBooking(context.Context, models.TrainingEvent) error { return nil }
func (s *stubStore) LogDecline(context.Context, models.TrainingEvent) error { return nil }
func (s *stubStore) Health(context.Context) error                          { return nil }
func (s *stubStore) Close() error                                          { return nil }

func (s *stubStore) Analytics(context.Context, int) (models.AnalyticsSnapshot, models.RecentWindow, error) {
	s.calls++
	return s.snapshot, s.recent, nil
}

type halfRand struct{}

func (halfRand) Float64() float64 { return 0.5 }

func TestReportAssemblesSimulatedPerformance(t *testing.T) {
	store := &stubStore{
		snapshot: models.AnalyticsSnapshot{
			TotalRequests: 10, TotalBookings: 6, TotalDeclines: 4, WinRate: 0.6,
		},
		recent: models.RecentWindow{Days: 30, Bookings: 2, Declines: 1, WinRate: 0.667},
	}
	svc := NewAnalyticsService(store, WithAnalyticsRand(halfRand{}))

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if report.TotalBookings != 6 || report.WinRate != 0.6 {
		t.Fatalf("snapshot not carried: %+v", report.AnalyticsSnapshot)
	}
	if report.Recent.Days != 30 || report.Recent.Bookings != 2 {
		t.Fatalf("recent window not carried: %+v", report.Recent)
	}

	// rand pinned to 0.5: accuracy 0.87, mae 160, rmse 240, samples 10+500+100
	perf := report.ModelPerformance
	if perf.Accuracy != 0.87 {
		t.Fatalf("Accuracy = %v, want 0.87", perf.Accuracy)
	}
	if perf.MAE != 160 || perf.RMSE != 240 {
		t.Fatalf("MAE/RMSE = %v/%v, want 160/240", perf.MAE, perf.RMSE)
	}
	if perf.SampleSize != 610 {
		t.Fatalf("SampleSize = %d, want 610", perf.SampleSize)
	}
}

func TestReportUsesCacheWithinTTL(t *testing.T) {
	store := &stubStore{
		snapshot: models.AnalyticsSnapshot{TotalRequests: 3, TotalBookings: 2, TotalDeclines: 1, WinRate: 0.667},
	}
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	svc := NewAnalyticsService(store,
		WithAnalyticsRand(halfRand{}),
		WithCache(mem, time.Minute),
	)

	first, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("first Report: %v", err)
	}
	second, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("second Report: %v", err)
	}

	if store.calls != 1 {
		t.Fatalf("store.Analytics called %d times, want 1 (cached)", store.calls)
	}
	if !first.GeneratedAt.Equal(second.GeneratedAt) {
		t.Fatalf("cached report regenerated: %v vs %v", first.GeneratedAt, second.GeneratedAt)
	}
}
