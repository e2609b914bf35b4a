package transfer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/client"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/rules"
)

const metricsPath = "http"

// Orchestrator runs the request/response variant of the transfer saga
type Orchestrator struct {
	uow          persistence.UnitOfWork
	accounts     client.AccountClient
	payments     client.PaymentClient
	validator    *rules.TransferValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewOrchestrator creates a new synchronous transfer orchestrator
func NewOrchestrator(
	uow persistence.UnitOfWork,
	accounts client.AccountClient,
	payments client.PaymentClient,
	validator *rules.TransferValidator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Orchestrator {
	return &Orchestrator{
		uow:          uow,
		accounts:     accounts,
		payments:     payments,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// TransferFunds validates the request against the account service, records it as CREATED,
// delivers it through the payment service and closes it as COMPLETED.
// A payment failure after the record is committed closes the record as FAILED.
func (o *Orchestrator) TransferFunds(ctx context.Context, req *entity.TransferRequest) (*entity.TransactionResponse, error) {
	if req == nil {
		return nil, errs.ErrEmptyRequest
	}

	sender, recipient, err := o.lookupCounterparties(ctx, req)
	if err != nil {
		o.logger.Warn("Transfer counterparties could not be resolved", map[string]any{
			"sender_account_id":    req.SenderAccountID,
			"recipient_account_id": req.RecipientAccountID,
			"error":                err.Error(),
		})
		o.metrics.SagaStep(metricsPath, "lookup", "failed")
		return nil, err
	}

	txn, err := o.recordTransfer(ctx, sender, recipient, req)
	if err != nil {
		return nil, err
	}

	payment, err := o.payments.MakeTransfer(ctx, entity.NewPaymentRequest(txn, req))
	if err == nil && payment == nil {
		err = errs.NewDownstreamError("payment-delivery", 0, "payment delivery is empty", nil)
	}
	if err != nil {
		o.compensate(ctx, txn, err)
		return nil, err
	}

	if err := txn.MarkAsCompleted(o.timeProvider, txn.Amount, txn.Description); err != nil {
		return nil, err
	}
	if err := o.uow.GetTransactionRepository(ctx).Update(ctx, txn); err != nil {
		o.logger.Error("Failed to complete delivered transfer", map[string]any{
			"transaction_id": txn.ID,
			"payment_id":     payment.PaymentID,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to complete transaction %d: %w", txn.ID, err)
	}

	o.logger.Info("Transfer completed", map[string]any{
		"transaction_id": txn.ID,
		"payment_id":     payment.PaymentID,
		"amount":         entity.FormatAmount(txn.Amount),
	})
	o.metrics.SagaStep(metricsPath, "transfer", string(entity.StatusCompleted))

	resp := txn.ToResponse(req)
	return &resp, nil
}

// GetTransaction returns a single ledger row
func (o *Orchestrator) GetTransaction(ctx context.Context, transactionID uint64) (*entity.Transaction, error) {
	txn, err := o.uow.GetTransactionRepository(ctx).GetByID(ctx, transactionID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.NewTransactionNotFoundError(transactionID)
		}
		return nil, err
	}
	return txn, nil
}

// lookupCounterparties fetches sender and recipient details concurrently
func (o *Orchestrator) lookupCounterparties(
	ctx context.Context,
	req *entity.TransferRequest,
) (*entity.CustomerResponse, *entity.CustomerResponse, error) {
	var sender, recipient *entity.CustomerResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sender, err = o.fetchCustomer(gctx, req.SenderAccountID, rules.ReasonSenderNotFound)
		return err
	})
	g.Go(func() error {
		var err error
		recipient, err = o.fetchCustomer(gctx, req.RecipientAccountID, rules.ReasonRecipientNotFound)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sender, recipient, nil
}

// fetchCustomer resolves one account, turning an absent answer into a not found error
func (o *Orchestrator) fetchCustomer(ctx context.Context, accountID uint64, notFoundMessage string) (*entity.CustomerResponse, error) {
	id := fmt.Sprintf("%d", accountID)
	if accountID == 0 {
		return nil, errs.NewNotFoundError("customer", id, notFoundMessage)
	}

	customer, err := o.accounts.GetCustomerAccountDetails(ctx, accountID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.NewNotFoundError("customer", id, notFoundMessage)
		}
		return nil, err
	}
	if customer == nil {
		return nil, errs.NewNotFoundError("customer", id, notFoundMessage)
	}
	return customer, nil
}

// recordTransfer validates and inserts the CREATED row inside a local database transaction
func (o *Orchestrator) recordTransfer(
	ctx context.Context,
	sender, recipient *entity.CustomerResponse,
	req *entity.TransferRequest,
) (*entity.Transaction, error) {
	txCtx, err := o.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	txn, err := o.insertValidated(txCtx, sender, recipient, req)
	if err != nil {
		if rbErr := o.uow.Rollback(txCtx); rbErr != nil {
			o.logger.Error("Failed to roll back transfer", map[string]any{
				"error": rbErr.Error(),
			})
		}
		if errs.IsValidationError(err) {
			o.logger.Info("Transfer rejected", map[string]any{
				"sender_id":         req.SenderID,
				"sender_account_id": req.SenderAccountID,
				"amount":            entity.FormatAmount(req.Amount),
				"reason":            err.Error(),
			})
			o.metrics.SagaStep(metricsPath, "validate", "rejected")
		}
		return nil, err
	}

	if err := o.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	o.metrics.SagaStep(metricsPath, "record", string(entity.StatusCreated))
	return txn, nil
}

// insertValidated applies the shared rules and writes the row through the transactional repository
func (o *Orchestrator) insertValidated(
	txCtx context.Context,
	sender, recipient *entity.CustomerResponse,
	req *entity.TransferRequest,
) (*entity.Transaction, error) {
	if err := o.validator.ValidateTransfer(sender, recipient, req); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransferTransaction(req, entity.StatusCreated, "", o.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := o.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}
	return txn, nil
}

// compensate closes a committed row as FAILED after the payment service rejected it.
// The write outlives the caller's context so a disconnected client cannot leave the row CREATED.
func (o *Orchestrator) compensate(ctx context.Context, txn *entity.Transaction, cause error) {
	ctx = context.WithoutCancel(ctx)
	o.logger.Warn("Payment delivery failed, compensating transfer", map[string]any{
		"transaction_id": txn.ID,
		"error":          cause.Error(),
	})

	if err := txn.MarkAsFailed(o.timeProvider, cause.Error()); err != nil {
		return
	}
	if err := o.uow.GetTransactionRepository(ctx).Update(ctx, txn); err != nil {
		o.logger.Error("Failed to compensate transfer", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return
	}
	o.metrics.SagaStep(metricsPath, "compensate", string(entity.StatusFailed))
}
