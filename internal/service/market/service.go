package market

import (
	"context"
	"math"
	"math/rand"
	"time"

	"FreightIQ/internal/domain/models"
	domsvc "FreightIQ/internal/domain/service"
	"FreightIQ/pkg/util"
)

// Service is the mock LCI connector: static route metadata blended with
// randomized current-conditions sampling. Outputs are non-reproducible
// across calls by default; inject a pinned Rand for deterministic tests.
type Service struct {
	rand  domsvc.Rand
	now   func() time.Time
	delay time.Duration
}

type Option func(*Service)

func WithRand(r domsvc.Rand) Option {
	return func(s *Service) { s.rand = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		delay: 80 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) MarketData(ctx context.Context, origin, destination, cargoType string) (models.MarketData, error) {
	if err := util.SleepCtx(ctx, s.delay); err != nil {
		return models.MarketData{}, err
	}

	meta := metaFor(origin + "-" + destination)
	now := s.now()

	congestion := 0.3
	if hr := now.Hour(); hr >= 9 && hr < 17 {
		congestion += 0.2
	}
	congestion = util.Clamp(congestion+s.rand.Float64()*0.3, 0, 1)

	doy := float64(now.YearDay())
	fuel := fuelBaseline + 50*math.Sin(2*math.Pi*doy/365) + (s.rand.Float64()*40 - 20)
	index := indexBaseline + 150*math.Sin(2*math.Pi*doy/365+math.Pi/4) + (s.rand.Float64()*120 - 60)

	ci := 0.5 + 0.3*meta.Popularity - 0.2*congestion + competitionBonus(meta.CompetitionLevel)
	ci = util.Clamp(ci+(s.rand.Float64()*0.1-0.05), 0, 1)

	adjustment := -0.2*(ci-0.5) + 0.15*congestion +
		0.1*(fuel-fuelBaseline)/fuelBaseline +
		0.05*(index-indexBaseline)/indexBaseline

	vol := meta.HistoricalVolatility
	if congestion > 0.7 {
		vol += 0.05
	}
	if meta.Popularity < 0.5 {
		vol += 0.03
	}
	vol = util.Clamp(vol+s.rand.Float64()*0.05, 0.05, 0.5)

	return models.MarketData{
		CompetitivenessIndex: ci,
		Adjustment:           util.Round3(adjustment),
		Volatility:           vol,
		RoutePopularity:      meta.Popularity,
		CongestionLevel:      congestion,
		BunkerFuelPrice:      fuel,
		ShanghaiIndex:        index,
		DataQuality:          0.7 + s.rand.Float64()*0.3,
	}, nil
}

var _ domsvc.MarketSource = (*Service)(nil)
