package market

import (
	"context"
	"math"
	"testing"
	"time"
)

type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

// offHours is outside the 09:00-17:00 congestion window.
var offHours = time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC)

func newTestService(sample float64, at time.Time) *Service {
	return NewService(
		WithRand(fixedRand{v: sample}),
		WithClock(func() time.Time { return at }),
		WithDelay(0),
	)
}

func TestMarketDataRangesHoldAcrossSamples(t *testing.T) {
	for _, sample := range []float64{0, 0.1, 0.5, 0.9, 0.999} {
		for _, hr := range []int{3, 12} {
			at := time.Date(2026, time.July, 1, hr, 0, 0, 0, time.UTC)
			md, err := newTestService(sample, at).MarketData(context.Background(), "Shanghai", "Rotterdam", "general")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if md.CompetitivenessIndex < 0 || md.CompetitivenessIndex > 1 {
				t.Errorf("ci out of range: %v", md.CompetitivenessIndex)
			}
			if md.Volatility < 0.05 || md.Volatility > 0.5 {
				t.Errorf("volatility out of range: %v", md.Volatility)
			}
			if md.CongestionLevel < 0 || md.CongestionLevel > 1 {
				t.Errorf("congestion out of range: %v", md.CongestionLevel)
			}
			if md.DataQuality < 0.5 || md.DataQuality > 1 {
				t.Errorf("data quality out of range: %v", md.DataQuality)
			}
		}
	}
}

func TestCongestionBusinessHoursUplift(t *testing.T) {
	busy := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	quiet, _ := newTestService(0, offHours).MarketData(context.Background(), "Busan", "Oakland", "general")
	peak, _ := newTestService(0, busy).MarketData(context.Background(), "Busan", "Oakland", "general")
	if math.Abs((peak.CongestionLevel-quiet.CongestionLevel)-0.2) > 1e-9 {
		t.Fatalf("business-hour uplift = %v, want 0.2", peak.CongestionLevel-quiet.CongestionLevel)
	}
}

func TestAdjustmentFormula(t *testing.T) {
	// With a zero rand sample every noise term bottoms out, making each
	// intermediate fully deterministic.
	md, err := newTestService(0, offHours).MarketData(context.Background(), "Busan", "Oakland", "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	congestion := 0.3
	doy := float64(offHours.YearDay())
	fuel := 450 + 50*math.Sin(2*math.Pi*doy/365) - 20
	index := 1200 + 150*math.Sin(2*math.Pi*doy/365+math.Pi/4) - 60
	// Busan-Oakland: popularity 0.45, low competition -> bonus 0
	ci := 0.5 + 0.3*0.45 - 0.2*congestion - 0.05

	want := -0.2*(ci-0.5) + 0.15*congestion + 0.1*(fuel-450)/450 + 0.05*(index-1200)/1200
	want = math.Round(want*1000) / 1000
	if math.Abs(md.Adjustment-want) > 1e-9 {
		t.Fatalf("Adjustment = %v, want %v", md.Adjustment, want)
	}
}

func TestVolatilityLowPopularityBump(t *testing.T) {
	// Busan-Oakland popularity 0.45 < 0.5 gets the +0.03 bump.
	md, _ := newTestService(0, offHours).MarketData(context.Background(), "Busan", "Oakland", "general")
	if math.Abs(md.Volatility-(0.18+0.03)) > 1e-9 {
		t.Fatalf("Volatility = %v, want 0.21", md.Volatility)
	}
}

func TestUnknownRouteUsesDefaultMeta(t *testing.T) {
	md, _ := newTestService(0, offHours).MarketData(context.Background(), "Atlantis", "Lemuria", "general")
	if md.RoutePopularity != 0.5 {
		t.Fatalf("RoutePopularity = %v, want default 0.5", md.RoutePopularity)
	}
}

func TestMarketDataHonorsCancellation(t *testing.T) {
	s := NewService(WithRand(fixedRand{0}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.MarketData(ctx, "A", "B", "general"); err == nil {
		t.Fatalf("expected context error")
	}
}
