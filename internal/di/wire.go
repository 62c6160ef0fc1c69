//go:build wireinject
// +build wireinject

package di

import (
	"FreightIQ/pkg/config"
	"FreightIQ/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Stores and connectors
		ProvideEventStore,
		ProvideCostSource,
		ProvideMarketSource,

		// Use cases
		ProvideQuoteEngine,
		ProvideQuoter,
		ProvideEventRecorder,
		ProvideAnalytics,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
