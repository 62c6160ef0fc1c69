package rates

import (
	"context"
	"math"
	"testing"

	"FreightIQ/internal/domain/models"
)

// fixedRand always returns the same value, pinning the jitter factor.
type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

func newTestService(jitterSample float64) *Service {
	return NewService(WithRand(fixedRand{v: jitterSample}), WithDelay(0))
}

func TestCostDataKnownRouteMidpoint(t *testing.T) {
	// jitter sample 0.5 -> factor 1.0, so the output is the deterministic
	// midpoint of the +/-10% band.
	s := newTestService(0.5)
	req := models.QuoteRequest{
		Origin:      "Shanghai",
		Destination: "Los Angeles",
		CargoType:   models.CargoGeneral,
		Weight:      1000,
		Volume:      5,
		ServiceType: models.ServiceStandard,
		ForwarderID: "forwarder-001",
	}
	cd, err := s.CostData(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10000*0.15 + (1000/1000)*1200 + 5*80, then the 0.95 forwarder discount
	want := (10000*0.15 + 1200 + 5*80.0) * 0.95
	if math.Abs(cd.BaseCost-want) > 0.01 {
		t.Fatalf("BaseCost = %v, want %v", cd.BaseCost, want)
	}
	if cd.Route != "Shanghai-Los Angeles" {
		t.Fatalf("Route = %q", cd.Route)
	}
	if cd.Currency != "USD" {
		t.Fatalf("Currency = %q", cd.Currency)
	}
}

func TestCostDataJitterBand(t *testing.T) {
	req := models.QuoteRequest{
		Origin:      "Shanghai",
		Destination: "Los Angeles",
		CargoType:   models.CargoGeneral,
		Weight:      1000,
		Volume:      5,
		ForwarderID: "forwarder-001",
	}
	mid := (10000*0.15 + 1200 + 5*80.0) * 0.95
	for _, sample := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
		cd, err := newTestService(sample).CostData(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cd.BaseCost < mid*0.9-0.01 || cd.BaseCost > mid*1.1+0.01 {
			t.Errorf("sample %v: BaseCost %v outside [%v, %v]", sample, cd.BaseCost, mid*0.9, mid*1.1)
		}
	}
}

func TestSurchargesAreAdditive(t *testing.T) {
	// hazardous + heavy cargo + express on top of fuel + security must be
	// the sum of fractions, not compounded.
	s := newTestService(0.5)
	req := models.QuoteRequest{
		Origin:      "Busan",
		Destination: "Oakland",
		CargoType:   models.CargoHazardous,
		Weight:      1500,
		Volume:      10,
		ServiceType: models.ServiceExpress,
	}
	cd, err := s.CostData(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := 9100*0.13 + 1.5*1100 + 10*75.0
	wantFrac := 0.08 + 0.02 + 0.15 + 0.05 + 0.20
	if math.Abs(cd.Surcharges-base*wantFrac) > 0.01 {
		t.Fatalf("Surcharges = %v, want %v", cd.Surcharges, base*wantFrac)
	}
	if math.Abs(cd.TotalCost-(cd.BaseCost+cd.Surcharges)) > 0.01 {
		t.Fatalf("TotalCost = %v, want base+surcharges = %v", cd.TotalCost, cd.BaseCost+cd.Surcharges)
	}
}

func TestUnknownRouteFallsBackToDefault(t *testing.T) {
	s := newTestService(0.5)
	cd, err := s.CostData(context.Background(), models.QuoteRequest{
		Origin:      "Nowhere",
		Destination: "Elsewhere",
		CargoType:   models.CargoGeneral,
		Weight:      500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 12000*0.13 + 0.5*1150
	if math.Abs(cd.BaseCost-want) > 0.01 {
		t.Fatalf("BaseCost = %v, want default profile %v", cd.BaseCost, want)
	}
}

func TestUnknownCargoAndForwarderAreNeutral(t *testing.T) {
	s := newTestService(0.5)
	base, err := s.CostData(context.Background(), models.QuoteRequest{
		Origin: "Singapore", Destination: "Hamburg",
		CargoType: models.CargoGeneral, Weight: 800, ForwarderID: "forwarder-999",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	odd, err := s.CostData(context.Background(), models.QuoteRequest{
		Origin: "Singapore", Destination: "Hamburg",
		CargoType: "antimatter", Weight: 800, ForwarderID: "forwarder-999",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.BaseCost != odd.BaseCost || base.Surcharges != odd.Surcharges {
		t.Fatalf("unknown cargo type changed the price: %+v vs %+v", base, odd)
	}
}

func TestRouteDirectionMatters(t *testing.T) {
	s := newTestService(0.5)
	out, _ := s.CostData(context.Background(), models.QuoteRequest{
		Origin: "Shanghai", Destination: "Rotterdam", CargoType: models.CargoGeneral, Weight: 1000,
	})
	back, _ := s.CostData(context.Background(), models.QuoteRequest{
		Origin: "Rotterdam", Destination: "Shanghai", CargoType: models.CargoGeneral, Weight: 1000,
	})
	if out.BaseCost == back.BaseCost {
		t.Fatalf("expected asymmetric rates, both = %v", out.BaseCost)
	}
}

func TestCostDataHonorsCancellation(t *testing.T) {
	s := NewService(WithRand(fixedRand{0.5}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.CostData(ctx, models.QuoteRequest{Origin: "A", Destination: "B", Weight: 1}); err == nil {
		t.Fatalf("expected context error")
	}
}
