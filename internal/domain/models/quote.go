package models

import "time"

// Cargo types known to the pricing tables. Anything else degrades to
// neutral multipliers instead of erroring.
const (
	CargoGeneral      = "general"
	CargoHazardous    = "hazardous"
	CargoRefrigerated = "refrigerated"
	CargoOversized    = "oversized"
	CargoFragile      = "fragile"
	CargoHighValue    = "high-value"
)

const (
	ServiceStandard = "standard"
	ServiceExpress  = "express"
	ServiceEconomy  = "economy"
	ServicePremium  = "premium"
)

// QuoteRequest carries the shipment parameters for a single quote.
type QuoteRequest struct {
	Origin      string
	Destination string
	CargoType   string
	Weight      float64 // kg
	Volume      float64 // m^3
	ServiceType string
	CustomerID  string
	ForwarderID string
}

// Route returns the directional "origin-destination" lookup key.
func (r QuoteRequest) Route() string {
	return r.Origin + "-" + r.Destination
}

// CostData is the RMS connector output: base cost plus accumulated
// surcharges for one request. Derived per request, never persisted.
type CostData struct {
	BaseCost    float64   `json:"baseCost"`
	Surcharges  float64   `json:"surcharges"`
	TotalCost   float64   `json:"totalCost"`
	Currency    string    `json:"currency"`
	Route       string    `json:"route"`
	ForwarderID string    `json:"forwarderId"`
	Timestamp   time.Time `json:"timestamp"`
}

// MarketData is the LCI connector output: synthetic current-market
// indicators for a route. Derived per request, never persisted.
type MarketData struct {
	CompetitivenessIndex float64 `json:"competitivenessIndex"`
	Adjustment           float64 `json:"adjustment"`
	Volatility           float64 `json:"volatility"`
	RoutePopularity      float64 `json:"routePopularity"`
	CongestionLevel      float64 `json:"congestionLevel"`
	BunkerFuelPrice      float64 `json:"bunkerFuelPrice"`
	ShanghaiIndex        float64 `json:"shanghaiIndex"`
	DataQuality          float64 `json:"dataQuality"`
}

// ConfidenceBand is a symmetric percentage interval around the predicted
// price. Not a statistical prediction interval.
type ConfidenceBand struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Percentage int     `json:"percentage"`
}

// MarginRange is a fixed +/-20% window around the point-estimate margin.
type MarginRange struct {
	Absolute   float64 `json:"absolute"`
	Percentage float64 `json:"percentage"`
	MinMargin  float64 `json:"minMargin"`
	MaxMargin  float64 `json:"maxMargin"`
}

// Prediction is the pipeline output returned to the caller. Ephemeral.
type Prediction struct {
	Price        float64        `json:"predictedPrice"`
	Confidence   float64        `json:"confidence"`
	Band         ConfidenceBand `json:"confidenceBand"`
	Margin       MarginRange    `json:"marginRange"`
	MLAdjustment float64        `json:"mlAdjustment"`
}

// Breakdown itemizes the quote for display.
type Breakdown struct {
	BaseCost         float64 `json:"baseCost"`
	Surcharges       float64 `json:"surcharges"`
	TotalCost        float64 `json:"totalCost"`
	MarketAdjustment float64 `json:"marketAdjustment"`
	MLAdjustment     float64 `json:"mlAdjustment"`
	Route            string  `json:"route"`
	Currency         string  `json:"currency"`
}

// Quote is the full predict-rate response body.
type Quote struct {
	RequestID string    `json:"requestId"`
	Prediction
	Breakdown Breakdown `json:"breakdown"`
	Timestamp time.Time `json:"timestamp"`
}
