package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// Config holds configuration for retry operations
type Config struct {
	MaxAttempts   int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // 0.0-1.0 share of the backoff added at random
}

// DefaultConfig returns the default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   5,
		RetryInterval: 100 * time.Millisecond,
		MaxInterval:   2 * time.Second,
		JitterFactor:  0.2,
	}
}

// Do runs operation until it succeeds, returns a non-retryable error, runs out of attempts
// or ctx is done. A nil retryable treats every error as retryable.
func Do(
	ctx context.Context,
	config Config,
	operation func(ctx context.Context) error,
	retryable func(err error) bool,
	logger coreport.Logger,
	label string,
) error {
	attempts := config.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		backoff := Backoff(attempt, config)
		logger.Warn("Operation failed, retrying", map[string]any{
			"operation":    label,
			"attempt":      attempt + 1,
			"max_attempts": attempts,
			"error":        err.Error(),
			"retry_after":  backoff.String(),
		})

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			logger.Warn("Retry canceled by context", map[string]any{
				"operation": label,
				"attempts":  attempt + 1,
				"error":     ctx.Err().Error(),
			})
			return errors.Join(err, ctx.Err())
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"operation": label,
		"attempts":  attempts,
		"error":     err.Error(),
	})
	return err
}

// Backoff computes the delay before the next attempt with exponential increase and jitter
func Backoff(attempt int, config Config) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))
	if backoff > config.MaxInterval || backoff <= 0 {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		jitter := time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
		backoff += jitter
	}

	return backoff
}

// IsTransientError reports whether an infrastructure error is worth another attempt
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "i/o timeout") ||
		strings.Contains(errMsg, "too many connections") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "loading") ||
		strings.Contains(errMsg, "eof")
}
