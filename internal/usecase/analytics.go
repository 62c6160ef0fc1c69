package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"FreightIQ/internal/domain/models"
	domrepo "FreightIQ/internal/domain/repository"
	domsvc "FreightIQ/internal/domain/service"
	"FreightIQ/pkg/cache"
	"FreightIQ/pkg/util"
)

const analyticsWindowDays = 30

// AnalyticsService assembles the dashboard report: persisted counters, a
// 30-day rolling window, and a simulated model-performance block. The
// performance block is randomly generated on purpose — it mimics an ML
// scoreboard without any model behind it.
type AnalyticsService struct {
	store    domrepo.EventStore
	cache    cache.Service
	cacheTTL time.Duration
	rand     domsvc.Rand
	now      func() time.Time
}

type AnalyticsOption func(*AnalyticsService)

// WithCache enables short-TTL caching of the assembled report.
func WithCache(c cache.Service, ttl time.Duration) AnalyticsOption {
	return func(s *AnalyticsService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithAnalyticsRand(r domsvc.Rand) AnalyticsOption {
	return func(s *AnalyticsService) { s.rand = r }
}

func WithAnalyticsClock(now func() time.Time) AnalyticsOption {
	return func(s *AnalyticsService) { s.now = now }
}

func NewAnalyticsService(store domrepo.EventStore, opts ...AnalyticsOption) *AnalyticsService {
	s := &AnalyticsService{
		store: store,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const reportCacheKey = "analytics:report"

func (s *AnalyticsService) Report(ctx context.Context) (models.AnalyticsReport, error) {
	if s.cache != nil {
		var raw string
		if err := s.cache.Get(ctx, reportCacheKey, &raw); err == nil {
			var cached models.AnalyticsReport
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	snapshot, recent, err := s.store.Analytics(ctx, analyticsWindowDays)
	if err != nil {
		return models.AnalyticsReport{}, fmt.Errorf("analytics snapshot: %w", err)
	}

	report := models.AnalyticsReport{
		AnalyticsSnapshot: snapshot,
		Recent:            recent,
		ModelPerformance:  s.simulatedPerformance(snapshot),
		GeneratedAt:       s.now().UTC(),
	}

	if s.cache != nil {
		if b, err := json.Marshal(report); err == nil {
			_ = s.cache.Set(ctx, reportCacheKey, string(b), s.cacheTTL)
		}
	}
	return report, nil
}

func (s *AnalyticsService) simulatedPerformance(snapshot models.AnalyticsSnapshot) models.ModelPerformance {
	return models.ModelPerformance{
		Accuracy:   util.Round3(0.82 + s.rand.Float64()*0.1),
		MAE:        util.RoundCents(120 + s.rand.Float64()*80),
		RMSE:       util.RoundCents(180 + s.rand.Float64()*120),
		SampleSize: int(snapshot.TotalBookings+snapshot.TotalDeclines) + 500 + int(s.rand.Float64()*200),
	}
}
