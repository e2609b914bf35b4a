package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
)

func receive(t *testing.T, ch <-chan *entity.SagaEvent) *entity.SagaEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "subscriber channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestBroadcaster_FanOut(t *testing.T) {
	b := NewBroadcaster(BroadcasterConfig{BufferSize: 4}, logger.NewNoopLogger())
	defer b.Close(context.Background())

	first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()
	assert.Equal(t, 2, b.SubscriberCount())

	event := &entity.SagaEvent{CorrelationID: "evt-1", Status: entity.EventTransactionInitiated}
	require.NoError(t, b.TryPublish(event))

	assert.Same(t, event, receive(t, first))
	assert.Same(t, event, receive(t, second))
}

func TestBroadcaster_FullBufferRejects(t *testing.T) {
	b := NewBroadcaster(BroadcasterConfig{BufferSize: 1, SubscriberBuffer: 1}, logger.NewNoopLogger())
	defer b.Close(context.Background())

	// Nobody reads this subscriber, so the delivery loop stalls and the backlog fills up.
	_, cancel := b.Subscribe()
	defer cancel()

	var rejected error
	for i := 0; i < 10 && rejected == nil; i++ {
		rejected = b.TryPublish(&entity.SagaEvent{CorrelationID: "evt"})
	}

	require.Error(t, rejected)
	assert.True(t, errs.IsEmitError(rejected))
	assert.ErrorIs(t, rejected, ErrBufferFull)

	_, rejectedCount := b.Stats()
	assert.Equal(t, int64(1), rejectedCount)
}

func TestBroadcaster_CancelDetaches(t *testing.T) {
	b := NewBroadcaster(BroadcasterConfig{}, logger.NewNoopLogger())
	defer b.Close(context.Background())

	_, cancel := b.Subscribe()
	cancel()
	cancel()

	assert.Equal(t, 0, b.SubscriberCount())
	assert.NoError(t, b.TryPublish(&entity.SagaEvent{CorrelationID: "evt"}))
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster(BroadcasterConfig{}, logger.NewNoopLogger())
	ch, _ := b.Subscribe()

	require.NoError(t, b.TryPublish(&entity.SagaEvent{CorrelationID: "before-close"}))
	require.NoError(t, b.Close(context.Background()))

	ev := receive(t, ch)
	assert.Equal(t, "before-close", ev.CorrelationID)
	_, open := <-ch
	assert.False(t, open)

	err := b.TryPublish(&entity.SagaEvent{CorrelationID: "after-close"})
	assert.ErrorIs(t, err, errs.ErrBroadcasterClosed)

	late, _ := b.Subscribe()
	_, open = <-late
	assert.False(t, open)

	assert.NoError(t, b.Close(context.Background()))
}

func TestBroadcaster_CloseHonoursContext(t *testing.T) {
	b := NewBroadcaster(BroadcasterConfig{BufferSize: 4, SubscriberBuffer: 1}, logger.NewNoopLogger())
	_, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < 3; i++ {
		_ = b.TryPublish(&entity.SagaEvent{CorrelationID: "stuck"})
	}

	ctx, stop := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer stop()
	assert.ErrorIs(t, b.Close(ctx), context.DeadlineExceeded)
}
