package time

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

func TestUTCClock(t *testing.T) {
	clock := NewUTCClock()

	assert.Equal(t, time.UTC, clock.Now().Location())

	past := time.Now().Add(-time.Second)
	assert.GreaterOrEqual(t, clock.Since(past), core.Second)

	ctx, cancel := clock.WithTimeout(context.Background(), core.Millisecond)
	defer cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	clock := NewManualClock(start)

	assert.True(t, clock.Now().Equal(start))
	assert.Equal(t, time.UTC, clock.Now().Location())

	clock.Advance(core.Minute)
	assert.Equal(t, core.Minute, clock.Since(start))

	ctx, cancel := clock.WithTimeout(context.Background(), core.Minute)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.True(t, deadline.After(time.Now()))
}
