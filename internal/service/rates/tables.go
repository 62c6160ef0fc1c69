package rates

// RouteProfile holds the static rate card for one directional lane.
// Direction matters: "Shanghai-Rotterdam" and "Rotterdam-Shanghai" are
// distinct keys and may carry asymmetric rates.
type RouteProfile struct {
	DistanceKm    float64
	PerKm         float64
	PerTon        float64
	PerCubicMeter float64
}

const defaultRouteKey = "default"

var routeProfiles = map[string]RouteProfile{
	"Shanghai-Los Angeles": {DistanceKm: 10000, PerKm: 0.15, PerTon: 1200, PerCubicMeter: 80},
	"Los Angeles-Shanghai": {DistanceKm: 10000, PerKm: 0.12, PerTon: 950, PerCubicMeter: 65},
	"Shanghai-Rotterdam":   {DistanceKm: 19500, PerKm: 0.11, PerTon: 1350, PerCubicMeter: 90},
	"Rotterdam-Shanghai":   {DistanceKm: 19500, PerKm: 0.09, PerTon: 1050, PerCubicMeter: 70},
	"Singapore-Hamburg":    {DistanceKm: 16800, PerKm: 0.12, PerTon: 1280, PerCubicMeter: 85},
	"Shenzhen-Long Beach":  {DistanceKm: 11200, PerKm: 0.14, PerTon: 1180, PerCubicMeter: 78},
	"Busan-Oakland":        {DistanceKm: 9100, PerKm: 0.13, PerTon: 1100, PerCubicMeter: 75},
	"Ningbo-New York":      {DistanceKm: 18900, PerKm: 0.13, PerTon: 1420, PerCubicMeter: 95},
	defaultRouteKey:        {DistanceKm: 12000, PerKm: 0.13, PerTon: 1150, PerCubicMeter: 80},
}

// Surcharge fractions of base cost. Summed, never compounded.
const (
	fuelSurcharge         = 0.08
	securitySurcharge     = 0.02
	hazardousSurcharge    = 0.15
	refrigeratedSurcharge = 0.12
	heavyCargoSurcharge   = 0.05
	expressSurcharge      = 0.20

	heavyCargoThresholdKg = 1000
)

// Forwarder-specific base cost multipliers. Unknown forwarders pay list rate.
var forwarderMultipliers = map[string]float64{
	"forwarder-001": 0.95, // volume discount agreement
	"forwarder-007": 0.97,
}

func profileFor(route string) RouteProfile {
	if p, ok := routeProfiles[route]; ok {
		return p
	}
	return routeProfiles[defaultRouteKey]
}

func forwarderMultiplier(id string) float64 {
	if m, ok := forwarderMultipliers[id]; ok {
		return m
	}
	return 1.0
}
