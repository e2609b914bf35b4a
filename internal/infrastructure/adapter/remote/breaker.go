package remote

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// Remote call results used for metrics
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailure  = "failure"
	ResultOpen     = "circuit_open"
)

// BreakerConfig configures the circuit breaker and timeout around a remote service
type BreakerConfig struct {
	// Timeout bounds a single call (default: 5s)
	Timeout time.Duration
	// MaxRequests allowed while half-open (default: 1)
	MaxRequests uint32
	// Interval clears the closed-state counts periodically; zero never clears them
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing (default: 30s)
	OpenTimeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker (default: 5)
	FailureThreshold uint32
}

// guard runs calls to one remote service through a circuit breaker
type guard struct {
	service string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
	tp      coreport.TimeProvider
	logger  coreport.Logger
	metrics coreport.Metrics
}

func newGuard(
	service string,
	config BreakerConfig,
	tp coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *guard {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxRequests == 0 {
		config.MaxRequests = 1
	}
	if config.OpenTimeout <= 0 {
		config.OpenTimeout = 30 * time.Second
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}

	g := &guard{
		service: service,
		timeout: config.Timeout,
		tp:      tp,
		logger:  logger,
		metrics: metrics,
	}

	g.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        service,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		// Answers the service gave on purpose do not count against its health
		IsSuccessful: func(err error) bool {
			return err == nil || isClientAnswer(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", map[string]any{
				"service": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return g
}

// call runs fn with the configured timeout and maps breaker rejections to downstream errors
func (g *guard) call(ctx context.Context, fn func(ctx context.Context) error) error {
	start := g.tp.Now()
	ctx, cancel := g.tp.WithTimeout(ctx, coreport.Duration(g.timeout))
	defer cancel()

	_, err := g.cb.Execute(func() (any, error) {
		return nil, fn(ctx)
	})

	result := ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = ResultOpen
		err = errs.NewDownstreamError(g.service, 0, "circuit breaker is open", errs.ErrCircuitOpen)
	case isClientAnswer(err):
		result = ResultRejected
	default:
		result = ResultFailure
	}
	g.metrics.RemoteCall(g.service, result, g.tp.Since(start))

	return err
}

func (g *guard) state() gobreaker.State {
	return g.cb.State()
}

// isClientAnswer reports whether err is a deliberate 4xx answer rather than an outage
func isClientAnswer(err error) bool {
	if errs.IsNotFoundError(err) {
		return true
	}
	var downstream *errs.DownstreamError
	return errors.As(err, &downstream) && downstream.IsClientError()
}
