package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/memory"
	postgres_adapter "listing-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/core/normalize"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	"listing-service/pkg/fluentlog"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_consumer"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App wires the adapters to the core and manages their lifecycle.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	rawListingsListener port.EventListenerPort
	reportsProducer     *rabbitmq_producer.Publisher
}

// NewApp is the composition root: every dependency is created and
// connected here.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// Loggers first; everything else reports through them.
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlog.NewClient(fluentlog.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// Storage: PostgreSQL when configured, otherwise the in-memory
	// fixture store so the service still answers searches.
	var storage port.ListingStoragePort
	var dbPool *pgxpool.Pool
	if appConfig.Database.URL != "" {
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		storageAdapter, err := postgres_adapter.NewListingStorageAdapter(dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres storage adapter", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
		}
		storage = storageAdapter
		appLogger.Info("Postgres storage adapter initialized.", nil)
	} else {
		storage = memory.NewListingStore(memory.SeedListings())
		appLogger.Warn("DATABASE_URL is not set. Serving the built-in fixture set from memory.", nil)
	}

	normalizer := normalize.New(time.Now)

	// RabbitMQ is optional; without a broker the service runs
	// search-only and skips the feed intake path.
	var rawListingsListener port.EventListenerPort
	var reportsProducer *rabbitmq_producer.Publisher
	var reporter port.IngestReporterPort

	if appConfig.RabbitMQ.URL != "" {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
		connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			closePool(dbPool)
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.ExchangeListings,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,

			Logger: rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		}
		reportsProducer, err = rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			closePool(dbPool)
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)

		reporterAdapter, err := rabbitmq_adapter.NewIngestReporterAdapter(reportsProducer, constants.RoutingKeyIngestReports)
		if err != nil {
			appLogger.Error("Failed to create ingest reporter", err, nil)
			closePool(dbPool)
			return nil, err
		}
		reporter = reporterAdapter

		ingestUseCase := usecase.NewIngestListingsUseCase(storage, reporter)

		consumerCfg := rabbitmq_consumer.ConsumerConfig{
			Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			QueueName:           constants.QueueRawListings,
			DurableQueue:        true,
			DeclareQueue:        true,
			ExchangeNameForBind: constants.ExchangeListings,
			RoutingKeyForBind:   constants.RoutingKeyRawListings,
			PrefetchCount:       1,
			ConsumerTag:         "raw-listing-ingest-adapter",
		}
		rawListingsListener, err = rabbitmq_adapter.NewRawListingConsumerAdapter(consumerCfg, ingestUseCase, baseLogger, connManager)
		if err != nil {
			appLogger.Error("Failed to create Raw Listings listener", err, nil)
			closePool(dbPool)
			return nil, err
		}
		appLogger.Info("Raw Listings Events Listener initialized.", nil)
	} else {
		appLogger.Warn("RABBITMQ_URL is not set. Feed intake is disabled.", nil)
	}

	searchUseCase := usecase.NewSearchListingsUseCase(storage, normalizer)
	getUseCase := usecase.NewGetListingUseCase(storage, normalizer)
	appLogger.Info("All use cases initialized.", nil)

	searchCache := rest.NewSearchCache(appConfig.Rest.SearchCacheTTL)
	listingsHandler := rest.NewListingsHandler(searchUseCase, getUseCase, searchCache)

	apiServer := rest.NewServer(appConfig.Rest.PORT, listingsHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:              appConfig,
		dbPool:              dbPool,
		apiServer:           apiServer,
		rawListingsListener: rawListingsListener,
		reportsProducer:     reportsProducer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run starts every component and blocks until a shutdown signal or a
// component failure.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.rawListingsListener != nil {
			if err := a.rawListingsListener.Close(); err != nil {
				a.logger.Error("Error closing raw listings listener", err, nil)
			}
		}

		if a.reportsProducer != nil {
			if err := a.reportsProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Plain stdout; fluent may already be unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	if a.rawListingsListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener_name": "Raw Listings Events Listener"})
			listenerLogger.Info("Starting listener...", nil)

			if err := a.rawListingsListener.Start(appCtx); err != nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("raw listings listener error: %w", err)
			} else {
				listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
			}
		}()
	}

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()

	return nil
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
