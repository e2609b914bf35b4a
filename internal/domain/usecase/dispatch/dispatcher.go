package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/rules"
)

// Inbound topics
const (
	TopicCustomerEvents  = "customer-transfer-events"
	TopicAccountEvents   = "account-payment-events"
	TopicAccountFailures = "account-payment-failures"
)

// Dispatch results used for logging and metrics
const (
	ResultIssued    = "issued"
	ResultPublished = "published"
	ResultSkipped   = "skipped"
	ResultResumed   = "resumed"
	ResultFailed    = "failed"
)

// Dispatcher routes decoded inbound events to the saga coordinator
type Dispatcher struct {
	coordinator usecase.SagaCoordinator
	publisher   messaging.EventPublisher
	logger      coreport.Logger
	metrics     coreport.Metrics

	slots    chan struct{}
	inflight sync.WaitGroup
}

// NewDispatcher creates a dispatcher running at most maxInFlight customer events at once
func NewDispatcher(
	coordinator usecase.SagaCoordinator,
	publisher messaging.EventPublisher,
	logger coreport.Logger,
	metrics coreport.Metrics,
	maxInFlight int,
) *Dispatcher {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	return &Dispatcher{
		coordinator: coordinator,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		slots:       make(chan struct{}, maxInFlight),
	}
}

// HandleCustomerEvent issues InitiateFromUpstreamCreate without waiting for it to finish.
// It returns once the call is issued, so the message can be acknowledged.
func (d *Dispatcher) HandleCustomerEvent(ctx context.Context, event *entity.SagaEvent) error {
	if event == nil {
		d.metrics.EventDispatched(TopicCustomerEvents, ResultFailed)
		return fmt.Errorf("%w: customer event is nil", errs.ErrInvalidEvent)
	}

	select {
	case d.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	sagaCtx := context.WithoutCancel(ctx)
	d.inflight.Add(1)
	go func() {
		defer func() {
			<-d.slots
			d.inflight.Done()
		}()

		_, err := d.coordinator.InitiateFromUpstreamCreate(sagaCtx, event)
		d.record(TopicCustomerEvents, event.CorrelationID, err)
	}()

	d.metrics.EventDispatched(TopicCustomerEvents, ResultIssued)
	return nil
}

// HandleAccountEvent completes the referenced transaction and publishes the result
// to the success or failure destination according to its error flag.
func (d *Dispatcher) HandleAccountEvent(ctx context.Context, event *entity.AccountEvent) error {
	result, err := d.coordinator.CompleteFromUpstreamPayment(ctx, event)
	if err != nil {
		return d.resolve(TopicAccountEvents, event.OriginID(), err)
	}
	return d.publish(ctx, TopicAccountEvents, result.WithCorrelationID(event.OriginID()))
}

// HandleAccountFailure compensates a transfer the account service already reported as failed
func (d *Dispatcher) HandleAccountFailure(ctx context.Context, event *entity.AccountEvent) error {
	if event == nil {
		d.metrics.EventDispatched(TopicAccountFailures, ResultFailed)
		return fmt.Errorf("%w: account failure event is nil", errs.ErrInvalidEvent)
	}

	reason := event.ErrorMessage
	if reason == "" {
		reason = rules.ReasonPaymentFailure
	}
	origin := &entity.SagaEvent{CorrelationID: event.OriginID(), Status: event.Status}

	result, err := d.coordinator.Compensate(ctx, origin, event.Payment.ToTransferRequest(), reason, entity.EventTransactionFailed)
	if err != nil {
		return d.resolve(TopicAccountFailures, origin.CorrelationID, err)
	}
	return d.publish(ctx, TopicAccountFailures, result)
}

// Wait blocks until every issued customer event has finished
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// publish hands a result to the publisher and records the outcome
func (d *Dispatcher) publish(ctx context.Context, topic string, result *entity.SagaEvent) error {
	if err := d.publisher.Publish(ctx, result); err != nil {
		d.record(topic, result.CorrelationID, err)
		return err
	}
	d.metrics.EventDispatched(topic, ResultPublished)
	return nil
}

// resolve decides whether a coordinator error should stop acknowledgement of the message.
// Unknown transactions and replays are logged and the stream moves on.
func (d *Dispatcher) resolve(topic, correlationID string, err error) error {
	d.record(topic, correlationID, err)
	switch {
	case errs.IsNotFoundError(err), errs.IsDuplicateEventError(err), errs.IsTransactionClosedError(err):
		return nil
	default:
		return err
	}
}

// record logs and counts the outcome of one dispatched event
func (d *Dispatcher) record(topic, correlationID string, err error) {
	fields := map[string]any{
		"topic":          topic,
		"correlation_id": correlationID,
	}

	switch {
	case err == nil:
		d.logger.Debug("Event dispatched", fields)
		return
	case errs.IsNotFoundError(err):
		fields["error"] = err.Error()
		d.logger.Warn("Event references unknown transaction, resuming", fields)
		d.metrics.EventDispatched(topic, ResultResumed)
	case errs.IsDuplicateEventError(err), errs.IsTransactionClosedError(err):
		fields["error"] = err.Error()
		d.logger.Info("Event skipped", fields)
		d.metrics.EventDispatched(topic, ResultSkipped)
	default:
		for k, v := range errs.LogFields(err) {
			fields[k] = v
		}
		d.logger.Error("Event processing failed", fields)
		d.metrics.EventDispatched(topic, ResultFailed)
	}
}
