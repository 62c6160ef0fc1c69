package market

// routeMeta is the static LCI metadata for one directional lane.
type routeMeta struct {
	Popularity           float64 // [0,1]
	HistoricalVolatility float64
	CompetitionLevel     string // high, medium, low
}

const defaultRouteKey = "default"

var routeMetadata = map[string]routeMeta{
	"Shanghai-Los Angeles": {Popularity: 0.9, HistoricalVolatility: 0.25, CompetitionLevel: "high"},
	"Los Angeles-Shanghai": {Popularity: 0.6, HistoricalVolatility: 0.2, CompetitionLevel: "medium"},
	"Shanghai-Rotterdam":   {Popularity: 0.85, HistoricalVolatility: 0.3, CompetitionLevel: "high"},
	"Rotterdam-Shanghai":   {Popularity: 0.55, HistoricalVolatility: 0.22, CompetitionLevel: "medium"},
	"Singapore-Hamburg":    {Popularity: 0.7, HistoricalVolatility: 0.2, CompetitionLevel: "medium"},
	"Shenzhen-Long Beach":  {Popularity: 0.8, HistoricalVolatility: 0.28, CompetitionLevel: "high"},
	"Busan-Oakland":        {Popularity: 0.45, HistoricalVolatility: 0.18, CompetitionLevel: "low"},
	"Ningbo-New York":      {Popularity: 0.65, HistoricalVolatility: 0.24, CompetitionLevel: "medium"},
	defaultRouteKey:        {Popularity: 0.5, HistoricalVolatility: 0.2, CompetitionLevel: "medium"},
}

func metaFor(route string) routeMeta {
	if m, ok := routeMetadata[route]; ok {
		return m
	}
	return routeMetadata[defaultRouteKey]
}

func competitionBonus(level string) float64 {
	switch level {
	case "high":
		return 0.2
	case "medium":
		return 0.1
	default:
		return 0
	}
}

// Baselines for the synthetic fuel price and shipping index. The pricing
// adjustment formula normalizes against these same constants.
const (
	fuelBaseline  = 450.0
	indexBaseline = 1200.0
)
