package usecase

import (
	"context"
	"fmt"
	"time"

	"FreightIQ/internal/domain/models"
	domrepo "FreightIQ/internal/domain/repository"
	domsvc "FreightIQ/internal/domain/service"

	"github.com/google/uuid"
)

// Quoter orchestrates one quote: cost lookup, market signals, pipeline.
type Quoter struct {
	costs   domsvc.CostSource
	market  domsvc.MarketSource
	engine  *QuoteEngine
	store   domrepo.EventStore
	metrics domrepo.Metrics
}

func NewQuoter(
	costs domsvc.CostSource,
	market domsvc.MarketSource,
	engine *QuoteEngine,
	store domrepo.EventStore,
	metrics domrepo.Metrics,
) *Quoter {
	return &Quoter{costs: costs, market: market, engine: engine, store: store, metrics: metrics}
}

// GetQuote produces a full quote for the request. The request counter is
// bumped on every successful quote; counting failures is non-fatal.
func (q *Quoter) GetQuote(ctx context.Context, req models.QuoteRequest) (models.Quote, error) {
	start := time.Now()

	cost, err := q.costs.CostData(ctx, req)
	if err != nil {
		q.metrics.RecordError("cost_lookup")
		return models.Quote{}, fmt.Errorf("cost lookup: %w", err)
	}

	md, err := q.market.MarketData(ctx, req.Origin, req.Destination, req.CargoType)
	if err != nil {
		q.metrics.RecordError("market_data")
		return models.Quote{}, fmt.Errorf("market data: %w", err)
	}

	pred := q.engine.Predict(cost, md, req)

	if err := q.store.RecordQuoteRequest(ctx); err != nil {
		q.metrics.RecordError("record_request")
	}

	q.metrics.RecordQuote(cost.Route, pred.Price)
	q.metrics.RecordLatency("quote", time.Since(start).Seconds())

	return models.Quote{
		RequestID:  uuid.NewString(),
		Prediction: pred,
		Breakdown: models.Breakdown{
			BaseCost:         cost.BaseCost,
			Surcharges:       cost.Surcharges,
			TotalCost:        cost.TotalCost,
			MarketAdjustment: md.Adjustment,
			MLAdjustment:     pred.MLAdjustment,
			Route:            cost.Route,
			Currency:         cost.Currency,
		},
		Timestamp: time.Now().UTC(),
	}, nil
}
