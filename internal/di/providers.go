package di

import (
	"context"
	"fmt"
	"time"

	domrepo "FreightIQ/internal/domain/repository"
	domsvc "FreightIQ/internal/domain/service"
	"FreightIQ/internal/handler/api"
	"FreightIQ/internal/handler/ws"
	"FreightIQ/internal/notify"
	internalrepo "FreightIQ/internal/repository"
	"FreightIQ/internal/service/market"
	"FreightIQ/internal/service/rates"
	"FreightIQ/internal/usecase"
	"FreightIQ/pkg/cache"
	pkgch "FreightIQ/pkg/clickhouse"
	"FreightIQ/pkg/config"
	xhttp "FreightIQ/pkg/http"
	pkgkafka "FreightIQ/pkg/kafka"
	applogger "FreightIQ/pkg/logger"
	"FreightIQ/pkg/metrics"
	"FreightIQ/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the clickhouse
// backend is selected; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Store.Backend != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideEventStore selects the store backend.
func ProvideEventStore(cfg *config.Config, ch *pkgch.Client, logger *applogger.Logger) (domrepo.EventStore, error) {
	if cfg.Store.Backend == "clickhouse" {
		return internalrepo.NewCHEventStore(ch, logger), nil
	}
	return internalrepo.NewFileEventStore(
		cfg.Store.EventsPath,
		cfg.Store.AnalyticsPath,
		cfg.Store.QueueSize,
		logger,
	)
}

// ProvideKafkaProducer creates a Kafka producer when enabled; nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideCache builds the analytics cache: layered when redis is configured,
// in-memory otherwise, nil when caching is off.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(redisCache), nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideCostSource creates the mock rate-management connector.
func ProvideCostSource(cfg *config.Config) domsvc.CostSource {
	return rates.NewService(rates.WithDelay(cfg.Simulation.RMSDelay))
}

// ProvideMarketSource creates the mock logistics-conditions connector.
func ProvideMarketSource(cfg *config.Config) domsvc.MarketSource {
	return market.NewService(market.WithDelay(cfg.Simulation.LCIDelay))
}

// ProvideQuoteEngine creates the pricing pipeline.
func ProvideQuoteEngine() *usecase.QuoteEngine {
	return usecase.NewQuoteEngine()
}

// ProvideQuoter creates the quote orchestrator.
func ProvideQuoter(
	costs domsvc.CostSource,
	marketSrc domsvc.MarketSource,
	engine *usecase.QuoteEngine,
	store domrepo.EventStore,
	m domrepo.Metrics,
) *usecase.Quoter {
	return usecase.NewQuoter(costs, marketSrc, engine, store, m)
}

// ProvideEventRecorder creates the event recorder with optional fan-out.
func ProvideEventRecorder(
	cfg *config.Config,
	store domrepo.EventStore,
	m domrepo.Metrics,
	logger *applogger.Logger,
	producer *pkgkafka.Producer,
) *usecase.EventRecorder {
	recorder := usecase.NewEventRecorder(store, m, logger)
	if producer != nil {
		recorder.SetPublisher(internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic))
	}
	if cfg.Webhook.Enabled && cfg.Webhook.URL != "" {
		var opts []notify.Option
		if cfg.Webhook.Timeout > 0 {
			opts = append(opts, notify.WithTimeout(cfg.Webhook.Timeout))
		}
		recorder.SetNotifier(notify.NewWebhookNotifier(cfg.Webhook.URL, logger, opts...))
	}
	return recorder
}

// ProvideAnalytics creates the analytics assembler.
func ProvideAnalytics(cfg *config.Config, store domrepo.EventStore, c cache.Service) *usecase.AnalyticsService {
	var opts []usecase.AnalyticsOption
	if c != nil {
		ttl := cfg.Cache.AnalyticsTTL
		if ttl <= 0 {
			ttl = 15 * time.Second
		}
		opts = append(opts, usecase.WithCache(c, ttl))
	}
	return usecase.NewAnalyticsService(store, opts...)
}

// compositeHandler registers every sub-handler's routes.
type compositeHandler struct {
	handlers []xhttp.Handler
}

func (h compositeHandler) RegisterRoutes(e *echo.Echo) {
	for _, sub := range h.handlers {
		sub.RegisterRoutes(e)
	}
}

// ProvideHandler assembles the HTTP surface: the quoting API plus the
// optional market-feed WebSocket.
func ProvideHandler(
	cfg *config.Config,
	logger *applogger.Logger,
	quoter *usecase.Quoter,
	recorder *usecase.EventRecorder,
	analytics *usecase.AnalyticsService,
	marketSrc domsvc.MarketSource,
) xhttp.Handler {
	handlers := []xhttp.Handler{
		api.NewQuotesHandler(logger, quoter, recorder, analytics),
	}
	if cfg.MarketFeed.Enabled {
		handlers = append(handlers, ws.NewMarketFeedHandler(logger, marketSrc, cfg.MarketFeed.Interval))
	}
	return compositeHandler{handlers: handlers}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store domrepo.EventStore,
	producer *pkgkafka.Producer,
	ch *pkgch.Client,
	c cache.Service,
) *server.App {
	app := server.New(cfg, logger, handler, store)
	app.SetProducer(producer)
	app.SetClickHouse(ch)
	app.SetCache(c)
	return app
}
