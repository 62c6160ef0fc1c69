package service

import (
	"context"

	"FreightIQ/internal/domain/models"
)

// Rand is the injectable randomness capability. The default implementation
// is unseeded; tests pin it for deterministic output.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// CostSource produces per-request cost data (the mock RMS connector).
type CostSource interface {
	CostData(ctx context.Context, req models.QuoteRequest) (models.CostData, error)
}

// MarketSource produces per-request market indicators (the mock LCI connector).
type MarketSource interface {
	MarketData(ctx context.Context, origin, destination, cargoType string) (models.MarketData, error)
}
