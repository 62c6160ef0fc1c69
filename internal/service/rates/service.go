package rates

import (
	"context"
	"math/rand"
	"time"

	"FreightIQ/internal/domain/models"
	domsvc "FreightIQ/internal/domain/service"
	"FreightIQ/pkg/util"
)

// Service is the mock RMS connector: it resolves a static rate card per
// route, applies a +/-10% perturbation and accumulates surcharges.
type Service struct {
	rand  domsvc.Rand
	delay time.Duration
}

type Option func(*Service)

// WithRand injects the randomness source.
func WithRand(r domsvc.Rand) Option {
	return func(s *Service) { s.rand = r }
}

// WithDelay sets the simulated upstream latency.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CostData resolves the route profile, computes the jittered base cost and
// the additive surcharge total. Unknown cargo/service/forwarder values
// degrade to neutral multipliers; the only failure mode is cancellation.
func (s *Service) CostData(ctx context.Context, req models.QuoteRequest) (models.CostData, error) {
	if err := util.SleepCtx(ctx, s.delay); err != nil {
		return models.CostData{}, err
	}

	route := req.Route()
	p := profileFor(route)

	base := p.DistanceKm*p.PerKm + (req.Weight/1000)*p.PerTon + req.Volume*p.PerCubicMeter
	jitter := 0.9 + s.rand.Float64()*0.2
	base = base * jitter * forwarderMultiplier(req.ForwarderID)

	frac := fuelSurcharge + securitySurcharge
	switch req.CargoType {
	case models.CargoHazardous:
		frac += hazardousSurcharge
	case models.CargoRefrigerated:
		frac += refrigeratedSurcharge
	}
	if req.Weight > heavyCargoThresholdKg {
		frac += heavyCargoSurcharge
	}
	if req.ServiceType == models.ServiceExpress {
		frac += expressSurcharge
	}

	baseCost := util.RoundCents(base)
	surcharges := util.RoundCents(base * frac)

	return models.CostData{
		BaseCost:    baseCost,
		Surcharges:  surcharges,
		TotalCost:   util.RoundCents(baseCost + surcharges),
		Currency:    "USD",
		Route:       route,
		ForwarderID: req.ForwarderID,
		Timestamp:   time.Now().UTC(),
	}, nil
}

var _ domsvc.CostSource = (*Service)(nil)
