package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Transaction *handler.TransactionHandler
	EventStream *handler.EventStreamHandler
	Health      *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers) {
	transactionRoutes := router.Group("/v1/transaction")
	{
		transactionRoutes.POST("/fund-transfer", handlers.Transaction.FundTransfer)

		// Registered before the :transactId wildcard so it is never parsed as an id
		if handlers.EventStream != nil {
			transactionRoutes.GET("/events", handlers.EventStream.StreamEvents)
		}

		transactionRoutes.GET("/:transactId", handlers.Transaction.GetTransaction)
	}

	if handlers.Health != nil {
		router.GET("/health", handlers.Health.Health)
	}
}

// SetupMetrics exposes the gatherer's metrics on path
func SetupMetrics(router *gin.Engine, path string, gatherer prometheus.Gatherer) {
	router.GET(path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS())
}
