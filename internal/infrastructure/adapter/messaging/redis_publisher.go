package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/messaging"
)

// Outbound streams
const (
	StreamTransactSuccess = "transact-event-success"
	StreamTransactFailure = "transact-event-failure"
)

// ErrUnknownDestination is returned for a destination with no stream bound to it
var ErrUnknownDestination = errors.New("unknown publish destination")

// RedisPublisher appends saga events to Redis streams
type RedisPublisher struct {
	client  redis.Cmdable
	streams map[string]string
	maxLen  int64
}

// NewRedisPublisher creates a publisher bound to the success and failure streams.
// maxLen caps each stream approximately; zero leaves it unbounded.
func NewRedisPublisher(client redis.Cmdable, maxLen int64) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		streams: map[string]string{
			messaging.DestinationSuccess: StreamTransactSuccess,
			messaging.DestinationFailure: StreamTransactFailure,
		},
		maxLen: maxLen,
	}
}

// PublishTo appends the event to the stream bound to destination
func (p *RedisPublisher) PublishTo(ctx context.Context, destination string, event *entity.SagaEvent) error {
	stream, ok := p.streams[destination]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDestination, destination)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event":          payload,
			"correlation_id": event.CorrelationID,
			"status":         string(event.Status),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", stream, err)
	}
	return nil
}

// StreamFor returns the stream bound to destination
func (p *RedisPublisher) StreamFor(destination string) (string, bool) {
	stream, ok := p.streams[destination]
	return stream, ok
}
