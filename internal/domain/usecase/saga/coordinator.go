package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/rules"
)

const metricsPath = "event"

// Coordinator applies the saga state transitions for broker-originated triggers
type Coordinator struct {
	transactionRepo persistence.TransactionRepository
	publisher       messaging.EventPublisher
	validator       *rules.TransferValidator
	idempotency     *IdempotencyHandler
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	metrics         coreport.Metrics
}

// NewCoordinator creates a new saga coordinator
func NewCoordinator(
	transactionRepo persistence.TransactionRepository,
	publisher messaging.EventPublisher,
	validator *rules.TransferValidator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Coordinator {
	return &Coordinator{
		transactionRepo: transactionRepo,
		publisher:       publisher,
		validator:       validator,
		idempotency:     NewIdempotencyHandler(transactionRepo),
		timeProvider:    timeProvider,
		logger:          logger,
		metrics:         metrics,
	}
}

// InitiateFromUpstreamCreate records a transfer announced by the customer service as INITIATED
// and publishes the result. Rejected events are compensated and the failure event is published.
func (c *Coordinator) InitiateFromUpstreamCreate(ctx context.Context, event *entity.SagaEvent) (*entity.SagaEvent, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: customer event is nil", errs.ErrInvalidEvent)
	}
	correlationID := event.CorrelationID

	existing, found, err := c.idempotency.CheckIdempotency(ctx, correlationID)
	if err != nil {
		return nil, err
	}
	if found {
		c.logger.Info("Customer event already applied, skipping", map[string]any{
			"correlation_id": correlationID,
			"transaction_id": existing.ID,
			"status":         existing.Status,
		})
		c.metrics.SagaStep(metricsPath, "initiate", "duplicate")
		return nil, errs.NewDuplicateEventError(correlationID, existing.ID)
	}

	if event.Closed || event.Request == nil {
		return c.compensateAndPublish(ctx, event, event.Request, rules.ReasonEventClosedOrEmpty)
	}
	if err := c.checkInitiate(event); err != nil {
		return c.compensateAndPublish(ctx, event, event.Request, reasonOf(err))
	}

	txn, err := entity.NewTransferTransaction(event.Request, entity.StatusInitiated, correlationID, c.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := c.transactionRepo.Create(ctx, txn); err != nil {
		if errs.IsDuplicateTransactionError(err) {
			// a concurrent delivery of the same event won the insert
			return nil, errs.NewDuplicateEventError(correlationID, 0)
		}
		c.logger.Error("Failed to record initiated transaction", map[string]any{
			"correlation_id": correlationID,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to record initiated transaction: %w", err)
	}

	req := event.Request.WithTransactionID(txn.ID).WithStatus(entity.StatusInitiated)
	result := entity.NewSuccessEvent(correlationID, req, entity.EventTransactionInitiated, false, c.timeProvider.Now())

	c.logger.Info("Transaction initiated from customer event", map[string]any{
		"correlation_id": correlationID,
		"transaction_id": txn.ID,
		"amount":         entity.FormatAmount(txn.Amount),
	})
	c.metrics.SagaStep(metricsPath, "initiate", string(entity.StatusInitiated))

	if err := c.publisher.Publish(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// CompleteFromUpstreamPayment closes the referenced transaction as COMPLETED, or compensates it.
// A transaction id unknown to the ledger is a NotFoundError and nothing is written.
func (c *Coordinator) CompleteFromUpstreamPayment(ctx context.Context, event *entity.AccountEvent) (*entity.SagaEvent, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: account event is nil", errs.ErrInvalidEvent)
	}
	origin := &entity.SagaEvent{CorrelationID: event.OriginID(), Status: event.Status}

	req := event.Payment.ToTransferRequest()
	if req == nil {
		return c.Compensate(ctx, origin, nil, rules.ReasonEventClosedOrEmpty, entity.EventTransactionFailed)
	}
	if err := c.validator.CheckIdentity(req); err != nil {
		return c.Compensate(ctx, origin, req, reasonOf(err), entity.EventTransactionFailed)
	}
	if err := c.validator.CheckPaymentStatus(event.Status); err != nil {
		return c.Compensate(ctx, origin, req, reasonOf(err), entity.EventTransactionFailed)
	}

	stored, err := c.transactionRepo.GetByID(ctx, req.TransactionID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			c.logger.Warn("Payment event references unknown transaction", map[string]any{
				"correlation_id": origin.CorrelationID,
				"transaction_id": req.TransactionID,
			})
			return nil, errs.NewTransactionNotFoundError(req.TransactionID)
		}
		return nil, fmt.Errorf("failed to load transaction %d: %w", req.TransactionID, err)
	}

	if stored.IsTerminal() {
		c.logger.Warn("Payment event targets a closed transaction, ignoring", map[string]any{
			"correlation_id": origin.CorrelationID,
			"transaction_id": stored.ID,
			"status":         stored.Status,
		})
		c.metrics.SagaStep(metricsPath, "complete", "closed")
		return nil, errs.NewTransactionClosedError(stored.ID, string(stored.Status))
	}

	if err := c.validator.CheckAccountsMatch(stored, req); err != nil {
		return c.Compensate(ctx, origin, req, reasonOf(err), entity.EventTransactionFailed)
	}
	if err := c.validator.CheckAmount(req.Amount); err != nil {
		return c.Compensate(ctx, origin, req, reasonOf(err), entity.EventTransactionFailed)
	}

	if err := stored.MarkAsCompleted(c.timeProvider, req.Amount, req.Description); err != nil {
		return nil, err
	}
	if err := c.transactionRepo.Update(ctx, stored); err != nil {
		c.logger.Error("Failed to complete transaction", map[string]any{
			"correlation_id": origin.CorrelationID,
			"transaction_id": stored.ID,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to complete transaction %d: %w", stored.ID, err)
	}

	c.logger.Info("Transaction completed from payment event", map[string]any{
		"correlation_id": origin.CorrelationID,
		"transaction_id": stored.ID,
	})
	c.metrics.SagaStep(metricsPath, "complete", string(entity.StatusCompleted))

	return entity.NewSuccessEvent(
		origin.CorrelationID,
		req.WithStatus(entity.StatusCompleted),
		entity.EventTransactionCompleted,
		true,
		c.timeProvider.Now(),
	), nil
}

// Compensate records the attempt as a FAILED, closed ledger row and returns the failure event.
// An open row found by transaction id or correlation id is closed in place; otherwise a new row is created.
// Repeating the call for an already FAILED row writes nothing and returns the same failure event.
func (c *Coordinator) Compensate(
	ctx context.Context,
	event *entity.SagaEvent,
	req *entity.TransferRequest,
	reason string,
	failureStatus entity.EventStatus,
) (*entity.SagaEvent, error) {
	var correlationID string
	if event != nil {
		correlationID = event.CorrelationID
	}

	var failedReq *entity.TransferRequest
	if req != nil {
		failedReq = req.WithStatus(entity.StatusFailed)
	}

	txn, err := c.findCompensationTarget(ctx, req, correlationID)
	if err != nil {
		return nil, err
	}

	switch {
	case txn == nil:
		txn = entity.NewFailedTransaction(failedReq, correlationID, reason, c.timeProvider)
		if err := c.transactionRepo.Create(ctx, txn); err != nil {
			c.logger.Error("Failed to record compensated transaction", map[string]any{
				"correlation_id": correlationID,
				"reason":         reason,
				"error":          err.Error(),
			})
			return nil, fmt.Errorf("failed to record compensated transaction: %w", err)
		}
	case txn.Status == entity.StatusFailed:
		c.logger.Info("Transaction already compensated", map[string]any{
			"correlation_id": correlationID,
			"transaction_id": txn.ID,
			"reason":         txn.ErrorMessage,
		})
	case txn.IsTerminal():
		c.logger.Warn("Compensation targets a completed transaction, ignoring", map[string]any{
			"correlation_id": correlationID,
			"transaction_id": txn.ID,
			"reason":         reason,
		})
		return nil, errs.NewTransactionClosedError(txn.ID, string(txn.Status))
	default:
		if err := txn.MarkAsFailed(c.timeProvider, reason); err != nil {
			return nil, err
		}
		if err := c.transactionRepo.Update(ctx, txn); err != nil {
			c.logger.Error("Failed to compensate transaction", map[string]any{
				"correlation_id": correlationID,
				"transaction_id": txn.ID,
				"error":          err.Error(),
			})
			return nil, fmt.Errorf("failed to compensate transaction %d: %w", txn.ID, err)
		}
	}

	if failedReq != nil {
		failedReq = failedReq.WithTransactionID(txn.ID)
	}

	c.logger.Warn("Transaction compensated", map[string]any{
		"correlation_id": correlationID,
		"transaction_id": txn.ID,
		"reason":         reason,
		"status":         failureStatus,
	})
	c.metrics.SagaStep(metricsPath, "compensate", string(entity.StatusFailed))

	return entity.NewFailureEvent(correlationID, failedReq, failureStatus, reason, c.timeProvider.Now()), nil
}

// checkInitiate applies the customer event rules after the emptiness check
func (c *Coordinator) checkInitiate(event *entity.SagaEvent) error {
	if err := c.validator.CheckIdentity(event.Request); err != nil {
		return err
	}
	if err := c.validator.CheckCustomerStatus(event.Status); err != nil {
		return err
	}
	return c.validator.CheckAmount(event.Request.Amount)
}

// compensateAndPublish compensates a rejected customer event and publishes the failure
func (c *Coordinator) compensateAndPublish(
	ctx context.Context,
	event *entity.SagaEvent,
	req *entity.TransferRequest,
	reason string,
) (*entity.SagaEvent, error) {
	result, err := c.Compensate(ctx, event, req, reason, entity.EventTransactionFailed)
	if err != nil {
		return nil, err
	}
	if err := c.publisher.Publish(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// findCompensationTarget returns the open or closed row the compensation applies to, or nil
func (c *Coordinator) findCompensationTarget(
	ctx context.Context,
	req *entity.TransferRequest,
	correlationID string,
) (*entity.Transaction, error) {
	if req != nil && req.TransactionID != 0 {
		txn, err := c.transactionRepo.GetByID(ctx, req.TransactionID)
		if err == nil {
			return txn, nil
		}
		if !errs.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load transaction %d: %w", req.TransactionID, err)
		}
	}

	txn, found, err := c.idempotency.CheckIdempotency(ctx, correlationID)
	if err != nil || !found {
		return nil, err
	}
	return txn, nil
}

// reasonOf extracts the business reason carried by a validation error
func reasonOf(err error) string {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}
	return err.Error()
}
