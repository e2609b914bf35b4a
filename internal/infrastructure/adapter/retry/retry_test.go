package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		RetryInterval: time.Millisecond,
		MaxInterval:   2 * time.Millisecond,
	}
}

func TestDo(t *testing.T) {
	log := logger.NewNoopLogger()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(3), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		}, IsTransientError, log, "test")

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		permanent := errors.New("unknown destination")
		err := Do(context.Background(), fastConfig(5), func(ctx context.Context) error {
			calls++
			return permanent
		}, IsTransientError, log, "test")

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(2), func(ctx context.Context) error {
			calls++
			return errors.New("i/o timeout")
		}, nil, log, "test")

		assert.EqualError(t, err, "i/o timeout")
		assert.Equal(t, 2, calls)
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := Config{MaxAttempts: 5, RetryInterval: time.Second, MaxInterval: time.Second}

		err := Do(ctx, cfg, func(ctx context.Context) error {
			cancel()
			return errors.New("timeout")
		}, nil, log, "test")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoff(t *testing.T) {
	cfg := Config{RetryInterval: 100 * time.Millisecond, MaxInterval: time.Second}

	assert.Equal(t, 100*time.Millisecond, Backoff(0, cfg))
	assert.Equal(t, 400*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, time.Second, Backoff(10, cfg))

	cfg.JitterFactor = 0.5
	got := Backoff(0, cfg)
	assert.GreaterOrEqual(t, got, 100*time.Millisecond)
	assert.LessOrEqual(t, got, 150*time.Millisecond)
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, IsTransientError(nil))
	assert.False(t, IsTransientError(context.Canceled))
	assert.True(t, IsTransientError(errors.New("dial tcp: connection refused")))
	assert.True(t, IsTransientError(errors.New("unexpected EOF")))
	assert.False(t, IsTransientError(errors.New("WRONGTYPE Operation against a key")))
}
