package usecase

import (
	"math"
	"time"

	"FreightIQ/internal/domain/models"
	"FreightIQ/pkg/util"
)

// Pricing multiplier tables. Unknown keys fall back to 1.0.
var cargoMultipliers = map[string]float64{
	models.CargoGeneral:      1.0,
	models.CargoHazardous:    1.3,
	models.CargoRefrigerated: 1.2,
	models.CargoOversized:    1.4,
	models.CargoFragile:      1.1,
}

var serviceMultipliers = map[string]float64{
	models.ServiceStandard: 1.0,
	models.ServiceExpress:  1.3,
	models.ServiceEconomy:  0.8,
	models.ServicePremium:  1.5,
}

// customerTiers is order-sensitive: the tier is selected by
// len(customerID) % 4. Identifiers of equal length share a tier. This
// mirrors the upstream system exactly and is a documented quirk, not a
// lookup by customer identity.
var customerTiers = []struct {
	Name       string
	Multiplier float64
}{
	{"standard", 1.0},
	{"silver", 0.98},
	{"gold", 0.95},
	{"platinum", 0.92},
}

// seasonalAdjustments is indexed by calendar month (January = 0).
var seasonalAdjustments = [12]float64{
	-0.02, -0.01, 0.01, 0.02, 0.03, 0.05,
	0.04, 0.06, 0.08, 0.10, 0.07, 0.03,
}

// QuoteEngine is the pricing pipeline. It is a pure function of its inputs:
// all randomness lives in the upstream cost and market collaborators.
type QuoteEngine struct {
	now func() time.Time
}

type EngineOption func(*QuoteEngine)

// WithEngineClock pins the clock used for the seasonal adjustment.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *QuoteEngine) { e.now = now }
}

func NewQuoteEngine(opts ...EngineOption) *QuoteEngine {
	e := &QuoteEngine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict runs the full pipeline: base prediction, optimization adjustment,
// confidence scoring, confidence band and margin range.
func (e *QuoteEngine) Predict(cost models.CostData, market models.MarketData, req models.QuoteRequest) models.Prediction {
	price := e.basePrediction(cost, market, req)
	price = e.optimize(price, market, req.CustomerID)

	conf := confidenceScore(market, req)
	bandPct := (1 - conf) * 0.3

	margin := price - cost.BaseCost
	marginPct := 0.0
	if cost.BaseCost != 0 {
		marginPct = margin / cost.BaseCost * 100
	}

	return models.Prediction{
		Price:      price,
		Confidence: conf,
		Band: models.ConfidenceBand{
			Lower:      util.RoundCents(price * (1 - bandPct)),
			Upper:      util.RoundCents(price * (1 + bandPct)),
			Percentage: int(math.Round(bandPct * 100)),
		},
		Margin: models.MarginRange{
			Absolute:   util.RoundCents(margin),
			Percentage: util.RoundCents(marginPct),
			MinMargin:  util.RoundCents(margin * 0.8),
			MaxMargin:  util.RoundCents(margin * 1.2),
		},
		MLAdjustment: util.RoundCents(price - cost.BaseCost),
	}
}

func (e *QuoteEngine) basePrediction(cost models.CostData, market models.MarketData, req models.QuoteRequest) float64 {
	p := cost.BaseCost
	p *= multiplierOrNeutral(cargoMultipliers, req.CargoType)
	if req.Weight > 1000 {
		p *= 1.1
	}
	if req.Volume > 50 {
		p *= 1.05
	}
	p *= multiplierOrNeutral(serviceMultipliers, req.ServiceType)
	p *= 1 + market.Adjustment
	p += cost.Surcharges
	return util.RoundCents(p)
}

func (e *QuoteEngine) optimize(price float64, market models.MarketData, customerID string) float64 {
	tier := customerTiers[len(customerID)%len(customerTiers)]
	price *= tier.Multiplier
	price *= 1 + 0.1*market.CompetitivenessIndex
	price *= 1 + seasonalAdjustments[e.now().Month()-1]
	return util.RoundCents(price)
}

func confidenceScore(market models.MarketData, req models.QuoteRequest) float64 {
	conf := 0.8
	if market.Volatility > 0.3 {
		conf -= 0.1
	}
	if req.CargoType == models.CargoHazardous || req.CargoType == models.CargoOversized {
		conf -= 0.05
	}
	if req.Weight > 2000 {
		conf -= 0.05
	}
	if market.RoutePopularity > 0.7 {
		conf += 0.05
	}
	return util.Clamp(conf, 0.5, 0.95)
}

func multiplierOrNeutral(table map[string]float64, key string) float64 {
	if m, ok := table[key]; ok {
		return m
	}
	return 1.0
}
