package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	messagingport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/dispatch"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/rules"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/saga"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/transfer"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/remote"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/retry"
	timeprovider "github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/config"
)

const serviceName = "transaction-ledger"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Production: cfg.Environment == config.Production,
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Service:    serviceName,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	tp := timeprovider.NewUTCClock()

	// Metrics
	registry := prometheus.NewRegistry()
	var appMetrics coreport.Metrics = metrics.NewNoopMetrics()
	if cfg.Metrics.Enabled {
		promMetrics := metrics.NewPrometheusMetrics(cfg.Metrics.Namespace)
		if err := promMetrics.Register(registry); err != nil {
			fatal(appLogger, "Failed to register metrics", err)
		}
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		appMetrics = promMetrics
	}

	// Database
	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	dbManager := database.NewManager(database.FromSettings(cfg.Database), appLogger, tp)
	if _, err := dbManager.Connect(rootCtx); err != nil {
		fatal(appLogger, "Failed to connect to database", err)
	}
	if err := dbManager.Migrate(rootCtx); err != nil {
		fatal(appLogger, "Failed to run migrations", err)
	}
	uow := dbManager.UnitOfWork()

	// Messaging
	broadcaster := messaging.NewBroadcaster(messaging.BroadcasterConfig{
		BufferSize:       cfg.Broker.BroadcastBuffer,
		SubscriberBuffer: cfg.Broker.SubscriberBuffer,
	}, appLogger)

	var redisClient *redis.Client
	var brokerPublisher messagingport.BrokerPublisher
	if cfg.Broker.Enabled {
		redisClient, err = messaging.NewRedisClient(rootCtx, messaging.BrokerConfig{
			Addr:     cfg.Broker.Addr,
			Password: cfg.Broker.Password,
			DB:       cfg.Broker.DB,
			PoolSize: cfg.Broker.PoolSize,
			// Blocking reads must outlive the block duration
			ReadTimeout: cfg.Broker.BlockDuration + 5*time.Second,
		})
		if err != nil {
			fatal(appLogger, "Failed to connect to broker", err)
		}
		brokerPublisher = messaging.NewRedisPublisher(redisClient, cfg.Broker.StreamMaxLen)
	}

	publishRetry := retry.DefaultConfig()
	publishRetry.MaxAttempts = cfg.Broker.PublishRetries
	if cfg.Broker.PublishRetryInterval > 0 {
		publishRetry.RetryInterval = cfg.Broker.PublishRetryInterval
	}
	publisher := messaging.NewEventPublisher(broadcaster, brokerPublisher, publishRetry, appLogger, appMetrics)

	// Use cases
	validator := rules.NewTransferValidator()
	coordinator := saga.NewCoordinator(
		uow.GetTransactionRepository(rootCtx),
		publisher,
		validator,
		tp,
		appLogger,
		appMetrics,
	)
	dispatcher := dispatch.NewDispatcher(coordinator, publisher, appLogger, appMetrics, cfg.Broker.MaxInFlight)

	breaker := remote.BreakerConfig{
		Timeout:          cfg.Remote.Timeout,
		FailureThreshold: cfg.Remote.FailureThreshold,
		OpenTimeout:      cfg.Remote.OpenTimeout,
	}
	httpClient := &http.Client{Timeout: cfg.Remote.Timeout + time.Second}
	accountClient := remote.NewAccountClient(cfg.Remote.AccountURL, httpClient, breaker, tp, appLogger, appMetrics)
	paymentClient := remote.NewPaymentClient(cfg.Remote.PaymentURL, httpClient, breaker, tp, appLogger, appMetrics)
	orchestrator := transfer.NewOrchestrator(uow, accountClient, paymentClient, validator, tp, appLogger, appMetrics)

	// Inbound streams
	subscriberCtx, stopSubscribers := context.WithCancel(rootCtx)
	var subscribers sync.WaitGroup
	if redisClient != nil {
		startSubscribers(subscriberCtx, &subscribers, redisClient, cfg.Broker, dispatcher, appLogger)
	}

	// HTTP
	healthChecks := map[string]handler.HealthCheck{"database": dbManager.Ping}
	if redisClient != nil {
		healthChecks["broker"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, routes.Handlers{
		Transaction: handler.NewTransactionHandler(orchestrator, appLogger),
		EventStream: handler.NewEventStreamHandler(broadcaster, 15*time.Second, appLogger),
		Health:      handler.NewHealthHandler(healthChecks, 2*time.Second, appLogger),
	})
	if cfg.Metrics.Enabled {
		routes.SetupMetrics(router, cfg.Metrics.Path, registry)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":   server.Addr,
			"env":    cfg.Environment,
			"broker": cfg.Broker.Enabled,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(appLogger, "Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	// Stop reading new messages, then let issued sagas finish
	stopSubscribers()
	subscribers.Wait()
	dispatcher.Wait()

	if err := broadcaster.Close(ctx); err != nil {
		appLogger.Warn("Broadcaster did not drain before shutdown", map[string]any{"error": err.Error()})
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Warn("Failed to close broker connection", map[string]any{"error": err.Error()})
		}
	}
	if err := dbManager.Close(); err != nil {
		appLogger.Warn("Failed to close database", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// startSubscribers starts one consumer-group reader per inbound topic
func startSubscribers(
	ctx context.Context,
	wg *sync.WaitGroup,
	client *redis.Client,
	settings config.BrokerConfig,
	dispatcher *dispatch.Dispatcher,
	appLogger coreport.Logger,
) {
	consumer := settings.Consumer
	if consumer == "" {
		consumer = consumerName()
	}

	handlers := map[string]messaging.Handler{
		dispatch.TopicCustomerEvents:  messaging.JSONHandler[entity.SagaEvent](dispatcher.HandleCustomerEvent),
		dispatch.TopicAccountEvents:   messaging.JSONHandler[entity.AccountEvent](dispatcher.HandleAccountEvent),
		dispatch.TopicAccountFailures: messaging.JSONHandler[entity.AccountEvent](dispatcher.HandleAccountFailure),
	}

	for stream, h := range handlers {
		sub := messaging.NewSubscriber(client, messaging.SubscriberConfig{
			Stream:        stream,
			Group:         settings.Group,
			Consumer:      consumer,
			Handler:       h,
			BatchSize:     settings.BatchSize,
			BlockDuration: settings.BlockDuration,
			ClaimMinIdle:  settings.ClaimMinIdle,
		}, appLogger)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sub.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				appLogger.Error("Subscriber stopped", map[string]any{
					"stream": stream,
					"error":  err.Error(),
				})
			}
		}()
	}
}

// consumerName identifies this process within the consumer group
func consumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return serviceName + "-" + uuid.NewString()
	}
	return host
}

func fatal(appLogger coreport.Logger, msg string, err error) {
	appLogger.Error(msg, map[string]any{"error": err.Error()})
	_ = appLogger.Flush()
	os.Exit(1)
}
