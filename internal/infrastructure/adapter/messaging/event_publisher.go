package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/retry"
)

// Publish results used for metrics
const (
	PublishAccepted = "accepted"
	PublishRejected = "rejected"
)

// EventPublisher emits every saga event to the in-process broadcast and to the broker
type EventPublisher struct {
	broadcast messaging.Broadcaster
	broker    messaging.BrokerPublisher
	retry     retry.Config
	logger    coreport.Logger
	metrics   coreport.Metrics
}

// NewEventPublisher creates a publisher; a nil broker disables downstream delivery
func NewEventPublisher(
	broadcast messaging.Broadcaster,
	broker messaging.BrokerPublisher,
	retryConfig retry.Config,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *EventPublisher {
	return &EventPublisher{
		broadcast: broadcast,
		broker:    broker,
		retry:     retryConfig,
		logger:    logger,
		metrics:   metrics,
	}
}

// Publish hands the event to the broadcast without blocking, then delivers it to the
// destination selected by its error flag. Both outcomes are reported in the returned error.
func (p *EventPublisher) Publish(ctx context.Context, event *entity.SagaEvent) error {
	if event == nil {
		return fmt.Errorf("%w: cannot publish a nil event", errs.ErrInvalidEvent)
	}

	localErr := p.broadcast.TryPublish(event)
	p.observe(DestinationBroadcast, event, localErr)

	if p.broker == nil {
		return localErr
	}

	destination := messaging.DestinationFor(event)
	brokerErr := retry.Do(ctx, p.retry, func(ctx context.Context) error {
		return p.broker.PublishTo(ctx, destination, event)
	}, retry.IsTransientError, p.logger, "publish "+destination)
	if brokerErr != nil {
		brokerErr = errs.NewEmitError(destination, event.CorrelationID, brokerErr)
	}
	p.observe(destination, event, brokerErr)

	return errors.Join(localErr, brokerErr)
}

func (p *EventPublisher) observe(destination string, event *entity.SagaEvent, err error) {
	if err == nil {
		p.metrics.EventPublished(destination, PublishAccepted)
		p.logger.Debug("Event published", map[string]any{
			"destination":    destination,
			"correlation_id": event.CorrelationID,
			"status":         string(event.Status),
		})
		return
	}

	p.metrics.EventPublished(destination, PublishRejected)
	p.logger.Warn("Event was not published", map[string]any{
		"destination":    destination,
		"correlation_id": event.CorrelationID,
		"status":         string(event.Status),
		"error":          err.Error(),
	})
}
