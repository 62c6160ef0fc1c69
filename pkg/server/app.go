package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "FreightIQ/internal/domain/repository"
	"FreightIQ/pkg/cache"
	pkgch "FreightIQ/pkg/clickhouse"
	"FreightIQ/pkg/config"
	xhttp "FreightIQ/pkg/http"
	pkgkafka "FreightIQ/pkg/kafka"
	applogger "FreightIQ/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	store      domrepo.EventStore
	httpServer *xhttp.Server

	producer *pkgkafka.Producer
	chClient *pkgch.Client
	cache    cache.Service
}

// New creates a new App instance with its required dependencies.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, store domrepo.EventStore) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		store:   store,
	}
}

// SetProducer attaches the optional Kafka producer for closing on shutdown.
func (a *App) SetProducer(p *pkgkafka.Producer) { a.producer = p }

// SetClickHouse attaches the optional ClickHouse client.
func (a *App) SetClickHouse(c *pkgch.Client) { a.chClient = c }

// SetCache attaches the optional cache service.
func (a *App) SetCache(c cache.Service) { a.cache = c }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Aggregate error logs through Kafka when a producer is wired.
	if a.producer != nil {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.Topic + ".logs",
			Publisher:      a.producer,
		})
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("freight rate api started",
		applogger.String("environment", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("store_backend", a.cfg.Store.Backend),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services: HTTP first so no new writes
// arrive, then the store so queued events are drained to disk.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("event store close error", applogger.Error(err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	if a.producer != nil {
		a.logger.RemoveCollector()
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
