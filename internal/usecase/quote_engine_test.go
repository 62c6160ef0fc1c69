package usecase

import (
	"math"
	"testing"
	"time"

	"FreightIQ/internal/domain/models"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPredictPipelineArithmetic(t *testing.T) {
	engine := NewQuoteEngine(WithEngineClock(fixedClock(time.March)))

	cost := models.CostData{BaseCost: 1000, Surcharges: 100}
	market := models.MarketData{
		Adjustment:           0.05,
		CompetitivenessIndex: 0.6,
		Volatility:           0.2,
		RoutePopularity:      0.8,
	}
	req := models.QuoteRequest{
		CargoType:   models.CargoGeneral,
		ServiceType: models.ServiceStandard,
		Weight:      500,
		Volume:      10,
	}

	pred := engine.Predict(cost, market, req)

	// base: 1000 * 1.05 + 100 = 1150
	// optimize: tier standard (empty id) * (1 + 0.06) * (1 + 0.01 March)
	want := 1150.0 * 1.06 * 1.01
	want = math.Round(want*100) / 100
	if !almostEqual(pred.Price, want) {
		t.Fatalf("Price = %v, want %v", pred.Price, want)
	}

	// popularity > 0.7 bumps confidence to 0.85
	if !almostEqual(pred.Confidence, 0.85) {
		t.Fatalf("Confidence = %v, want 0.85", pred.Confidence)
	}

	// band: (1 - 0.85) * 0.3 = 4.5%, rounds to 5
	if pred.Band.Percentage != 5 {
		t.Fatalf("Band.Percentage = %d, want 5", pred.Band.Percentage)
	}
	if !(pred.Band.Lower <= pred.Price && pred.Price <= pred.Band.Upper) {
		t.Fatalf("band [%v,%v] does not contain price %v", pred.Band.Lower, pred.Band.Upper, pred.Price)
	}

	margin := pred.Price - cost.BaseCost
	if !almostEqual(pred.Margin.Absolute, math.Round(margin*100)/100) {
		t.Fatalf("Margin.Absolute = %v, want %v", pred.Margin.Absolute, margin)
	}
	if !almostEqual(pred.MLAdjustment, pred.Margin.Absolute) {
		t.Fatalf("MLAdjustment = %v, want %v", pred.MLAdjustment, pred.Margin.Absolute)
	}
	if pred.Margin.MinMargin >= pred.Margin.MaxMargin {
		t.Fatalf("margin window inverted: [%v,%v]", pred.Margin.MinMargin, pred.Margin.MaxMargin)
	}
}

func TestConfidenceStaysInRange(t *testing.T) {
	engine := NewQuoteEngine(WithEngineClock(fixedClock(time.June)))
	cost := models.CostData{BaseCost: 2000, Surcharges: 150}

	cargos := []string{
		models.CargoGeneral, models.CargoHazardous, models.CargoRefrigerated,
		models.CargoOversized, models.CargoFragile, "unknown",
	}
	weights := []float64{10, 900, 1500, 2500, 10000}
	vols := []float64{0.05, 0.2, 0.35, 0.5}

	for _, cargo := range cargos {
		for _, w := range weights {
			for _, v := range vols {
				market := models.MarketData{Volatility: v, RoutePopularity: 0.4}
				req := models.QuoteRequest{CargoType: cargo, Weight: w, ServiceType: models.ServiceStandard}
				pred := engine.Predict(cost, market, req)
				if pred.Confidence < 0.5 || pred.Confidence > 0.95 {
					t.Fatalf("cargo=%s weight=%v vol=%v: confidence %v out of [0.5,0.95]",
						cargo, w, v, pred.Confidence)
				}
				if math.IsNaN(pred.Price) || math.IsInf(pred.Price, 0) {
					t.Fatalf("cargo=%s weight=%v vol=%v: price %v", cargo, w, v, pred.Price)
				}
				if !(pred.Band.Lower <= pred.Price && pred.Price <= pred.Band.Upper) {
					t.Fatalf("band [%v,%v] does not contain %v", pred.Band.Lower, pred.Band.Upper, pred.Price)
				}
			}
		}
	}
}

func TestZeroBaseCostMarginPercentage(t *testing.T) {
	engine := NewQuoteEngine(WithEngineClock(fixedClock(time.January)))
	pred := engine.Predict(models.CostData{BaseCost: 0, Surcharges: 50}, models.MarketData{}, models.QuoteRequest{
		CargoType: models.CargoGeneral, Weight: 100, ServiceType: models.ServiceStandard,
	})
	if pred.Margin.Percentage != 0 {
		t.Fatalf("Margin.Percentage = %v, want 0 for zero base cost", pred.Margin.Percentage)
	}
	if math.IsNaN(pred.Price) || math.IsInf(pred.Price, 0) {
		t.Fatalf("price = %v", pred.Price)
	}
}

func TestCustomerTierFollowsIDLength(t *testing.T) {
	engine := NewQuoteEngine(WithEngineClock(fixedClock(time.April)))
	cost := models.CostData{BaseCost: 1000}
	market := models.MarketData{}
	base := func(customerID string) float64 {
		req := models.QuoteRequest{
			CargoType: models.CargoGeneral, Weight: 100,
			ServiceType: models.ServiceStandard, CustomerID: customerID,
		}
		return engine.Predict(cost, market, req).Price
	}

	// IDs whose lengths are congruent mod 4 share a tier.
	if base("abcd") != base("wxyz") {
		t.Fatal("same-length customer ids should price identically")
	}
	if base("abcd") != base("") {
		t.Fatal("length 4 should wrap to the standard tier")
	}

	// Tier multipliers decrease with (len % 4): standard > silver > gold > platinum.
	p0, p1, p2, p3 := base(""), base("a"), base("ab"), base("abc")
	if !(p0 > p1 && p1 > p2 && p2 > p3) {
		t.Fatalf("tier prices not strictly decreasing: %v %v %v %v", p0, p1, p2, p3)
	}
	if !almostEqual(p1/p0, 0.98) || !almostEqual(p2/p0, 0.95) || !almostEqual(p3/p0, 0.92) {
		t.Fatalf("tier ratios = %v %v %v, want 0.98 0.95 0.92", p1/p0, p2/p0, p3/p0)
	}
}

func TestSeasonalAdjustmentVariesByMonth(t *testing.T) {
	cost := models.CostData{BaseCost: 1000}
	req := models.QuoteRequest{CargoType: models.CargoGeneral, Weight: 100, ServiceType: models.ServiceStandard}

	jan := NewQuoteEngine(WithEngineClock(fixedClock(time.January))).Predict(cost, models.MarketData{}, req)
	oct := NewQuoteEngine(WithEngineClock(fixedClock(time.October))).Predict(cost, models.MarketData{}, req)

	// January carries -2%, October +10%.
	if !almostEqual(jan.Price, 980) {
		t.Fatalf("January price = %v, want 980", jan.Price)
	}
	if !almostEqual(oct.Price, 1100) {
		t.Fatalf("October price = %v, want 1100", oct.Price)
	}
}
