package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// SubscriberConfig configures a consumer-group reader on one stream
type SubscriberConfig struct {
	Stream        string
	Group         string
	Consumer      string
	Handler       Handler
	BatchSize     int64
	BlockDuration time.Duration
	ErrorBackoff  time.Duration
	// ClaimMinIdle is how long a message stays unacknowledged before it is delivered again
	ClaimMinIdle time.Duration
}

// Subscriber reads a stream through a consumer group and acknowledges handled messages
type Subscriber struct {
	client        *redis.Client
	stream        string
	group         string
	consumer      string
	handler       Handler
	batchSize     int64
	blockDuration time.Duration
	errorBackoff  time.Duration
	claimMinIdle  time.Duration
	claimCursor   string
	logger        coreport.Logger
}

// NewSubscriber creates a subscriber with defaults for unset batching options
func NewSubscriber(client *redis.Client, config SubscriberConfig, logger coreport.Logger) *Subscriber {
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = 5 * time.Second
	}
	if config.ErrorBackoff <= 0 {
		config.ErrorBackoff = time.Second
	}
	if config.ClaimMinIdle <= 0 {
		config.ClaimMinIdle = 30 * time.Second
	}

	return &Subscriber{
		client:        client,
		stream:        config.Stream,
		group:         config.Group,
		consumer:      config.Consumer,
		handler:       config.Handler,
		batchSize:     config.BatchSize,
		blockDuration: config.BlockDuration,
		errorBackoff:  config.ErrorBackoff,
		claimMinIdle:  config.ClaimMinIdle,
		claimCursor:   "0-0",
		logger:        logger,
	}
}

// Start creates the consumer group if needed and reads until ctx is done
func (s *Subscriber) Start(ctx context.Context) error {
	if err := s.ensureGroup(ctx); err != nil {
		return err
	}

	s.logger.Info("Subscriber started", map[string]any{
		"stream":   s.stream,
		"group":    s.group,
		"consumer": s.consumer,
	})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Subscriber stopping", map[string]any{"stream": s.stream})
			return ctx.Err()
		default:
		}

		if _, err := s.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("Error reading messages", map[string]any{
				"stream": s.stream,
				"error":  err.Error(),
			})
			select {
			case <-time.After(s.errorBackoff):
			case <-ctx.Done():
			}
		}
	}
}

// Poll retries messages left pending for longer than the claim idle time, then reads one
// batch of new messages. It returns how many messages were acknowledged.
func (s *Subscriber) Poll(ctx context.Context) (int, error) {
	reclaimed, err := s.reclaim(ctx)
	if err != nil {
		return 0, err
	}

	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.group,
		Consumer: s.consumer,
		Streams:  []string{s.stream, ">"},
		Count:    s.batchSize,
		Block:    s.blockDuration,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return reclaimed, nil
	}
	if err != nil {
		return reclaimed, fmt.Errorf("failed to read from stream %s: %w", s.stream, err)
	}

	acked := reclaimed
	for _, stream := range streams {
		acked += s.handleBatch(ctx, stream.Messages)
	}
	return acked, nil
}

// reclaim takes over idle pending messages of the group, including those of consumers that went away,
// and runs them through the handler again
func (s *Subscriber) reclaim(ctx context.Context) (int, error) {
	messages, next, err := s.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   s.stream,
		Group:    s.group,
		Consumer: s.consumer,
		MinIdle:  s.claimMinIdle,
		Start:    s.claimCursor,
		Count:    s.batchSize,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to claim pending messages on %s: %w", s.stream, err)
	}
	s.claimCursor = next

	if len(messages) > 0 {
		s.logger.Info("Redelivering pending messages", map[string]any{
			"stream": s.stream,
			"count":  len(messages),
		})
	}
	return s.handleBatch(ctx, messages), nil
}

// handleBatch processes messages in order and acknowledges the handled ones
func (s *Subscriber) handleBatch(ctx context.Context, messages []redis.XMessage) int {
	acked := 0
	for _, message := range messages {
		if !s.process(ctx, message) {
			continue
		}
		if err := s.client.XAck(ctx, s.stream, s.group, message.ID).Err(); err != nil {
			s.logger.Error("Failed to ack message", map[string]any{
				"stream":     s.stream,
				"message_id": message.ID,
				"error":      err.Error(),
			})
			continue
		}
		acked++
	}
	return acked
}

// process runs the handler and reports whether the message should be acknowledged
func (s *Subscriber) process(ctx context.Context, message redis.XMessage) bool {
	payload, ok := message.Values["event"].(string)
	if !ok {
		s.logger.Warn("Dropping message without event payload", map[string]any{
			"stream":     s.stream,
			"message_id": message.ID,
		})
		return true
	}

	err := s.handler(ctx, []byte(payload))
	switch {
	case err == nil:
		return true
	case errors.Is(err, errs.ErrInvalidEvent):
		s.logger.Warn("Dropping undecodable message", map[string]any{
			"stream":     s.stream,
			"message_id": message.ID,
			"error":      err.Error(),
		})
		return true
	default:
		s.logger.Error("Failed to process message", map[string]any{
			"stream":     s.stream,
			"message_id": message.ID,
			"error":      err.Error(),
		})
		return false
	}
}

func (s *Subscriber) ensureGroup(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, s.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s on %s: %w", s.group, s.stream, err)
	}
	return nil
}
