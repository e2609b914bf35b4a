package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/usecase/rules"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/client"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/persistence"
)

type txKey struct{}

var createdAt = time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)

type orchestratorMocks struct {
	uow      *persistence.MockUnitOfWork
	repo     *persistence.MockTransactionRepository
	accounts *client.MockAccountClient
	payments *client.MockPaymentClient
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, orchestratorMocks) {
	t.Helper()

	m := orchestratorMocks{
		uow:      persistence.NewMockUnitOfWork(t),
		repo:     persistence.NewMockTransactionRepository(t),
		accounts: client.NewMockAccountClient(t),
		payments: client.NewMockPaymentClient(t),
	}
	m.uow.EXPECT().GetTransactionRepository(mock.Anything).Return(m.repo).Maybe()

	tp := core.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(createdAt).Maybe()

	logger := core.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	metrics := core.NewMockMetrics(t)
	metrics.EXPECT().SagaStep(metricsPath, mock.Anything, mock.Anything).Maybe()

	o := NewOrchestrator(m.uow, m.accounts, m.payments, rules.NewTransferValidator(), tp, logger, metrics)
	return o, m
}

func validRequest() *entity.TransferRequest {
	return &entity.TransferRequest{
		SenderID:           1,
		SenderAccountID:    11,
		RecipientID:        2,
		RecipientAccountID: 22,
		Amount:             decimal.RequireFromString("100.50"),
		Description:        "rent",
	}
}

func expectCounterparties(m orchestratorMocks) {
	m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(11)).
		Return(&entity.CustomerResponse{ID: 1, AccountID: 11}, nil)
	m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(22)).
		Return(&entity.CustomerResponse{ID: 2, AccountID: 22}, nil)
}

func expectCommittedRow(m orchestratorMocks, ctx context.Context, id uint64) context.Context {
	txCtx := context.WithValue(ctx, txKey{}, "tx")
	m.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
	m.repo.EXPECT().Create(txCtx, mock.MatchedBy(func(txn *entity.Transaction) bool {
		return txn.Status == entity.StatusCreated && !txn.Closed
	})).Run(func(ctx context.Context, txn *entity.Transaction) { txn.ID = id }).Return(nil)
	m.uow.EXPECT().Commit(txCtx).Return(nil)
	return txCtx
}

func TestOrchestrator_TransferFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers and completes", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		expectCounterparties(m)
		expectCommittedRow(m, ctx, 7)

		m.payments.EXPECT().MakeTransfer(ctx, mock.MatchedBy(func(p *entity.PaymentRequest) bool {
			return p.TransactionID == 7 && p.AccountID == 11 && p.RecipientAcctID == 22
		})).Return(&entity.PaymentResponse{PaymentID: 70, TransactionID: 7}, nil)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.ID == 7 && txn.Status == entity.StatusCompleted && txn.Closed
		})).Return(nil)

		resp, err := o.TransferFunds(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, uint64(7), resp.TransactionID)
		assert.Equal(t, uint64(11), resp.AccountID)
		assert.Equal(t, uint64(1), resp.CustomerID)
		assert.Equal(t, entity.StatusCompleted, resp.Status)
		assert.True(t, resp.Amount.Equal(decimal.RequireFromString("100.50")))
		assert.True(t, createdAt.Equal(resp.CreatedDate))
	})

	t.Run("empty request", func(t *testing.T) {
		o, _ := newTestOrchestrator(t)

		_, err := o.TransferFunds(ctx, nil)

		assert.ErrorIs(t, err, errs.ErrEmptyRequest)
	})

	t.Run("sender not found", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(11)).
			Return(nil, errs.NewNotFoundError("customer", "11", "account 11 not found"))
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(22)).
			Return(&entity.CustomerResponse{ID: 2, AccountID: 22}, nil).Maybe()

		_, err := o.TransferFunds(ctx, validRequest())

		require.True(t, errs.IsNotFoundError(err))
		assert.Equal(t, rules.ReasonSenderNotFound, err.Error())
	})

	t.Run("receiver missing from response", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(11)).
			Return(&entity.CustomerResponse{ID: 1, AccountID: 11}, nil).Maybe()
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(22)).Return(nil, nil)

		_, err := o.TransferFunds(ctx, validRequest())

		require.True(t, errs.IsNotFoundError(err))
		assert.Equal(t, rules.ReasonRecipientNotFound, err.Error())
	})

	t.Run("account service failure is returned as is", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		downstream := errs.NewDownstreamError("account", 500, "boom", nil)
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, mock.Anything).Return(nil, downstream)

		_, err := o.TransferFunds(ctx, validRequest())

		assert.True(t, errs.IsDownstreamError(err))
	})

	t.Run("validation failure rolls back without a row", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		expectCounterparties(m)
		txCtx := context.WithValue(ctx, txKey{}, "tx")
		m.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		m.uow.EXPECT().Rollback(txCtx).Return(nil)

		req := validRequest()
		req.Amount = decimal.RequireFromString("1.99")
		_, err := o.TransferFunds(ctx, req)

		require.True(t, errs.IsValidationError(err))
		assert.Equal(t, rules.ReasonAmountBelowMinimum, err.Error())
	})

	t.Run("sender account mismatch is rejected", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(11)).
			Return(&entity.CustomerResponse{ID: 1, AccountID: 12}, nil)
		m.accounts.EXPECT().GetCustomerAccountDetails(mock.Anything, uint64(22)).
			Return(&entity.CustomerResponse{ID: 2, AccountID: 22}, nil)
		txCtx := context.WithValue(ctx, txKey{}, "tx")
		m.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		m.uow.EXPECT().Rollback(txCtx).Return(nil)

		_, err := o.TransferFunds(ctx, validRequest())

		assert.Equal(t, rules.ReasonSenderAccountMismatch, err.Error())
	})

	t.Run("payment failure closes the row as FAILED", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		expectCounterparties(m)
		expectCommittedRow(m, ctx, 8)
		delivery := errs.NewDownstreamError("payment-delivery", 503, "unavailable", nil)

		m.payments.EXPECT().MakeTransfer(ctx, mock.Anything).Return(nil, delivery)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.ID == 8 && txn.Status == entity.StatusFailed && txn.Closed &&
				txn.ErrorMessage == delivery.Error()
		})).Return(nil)

		resp, err := o.TransferFunds(ctx, validRequest())

		assert.Nil(t, resp)
		assert.True(t, errs.IsDownstreamError(err))
	})

	t.Run("compensation survives a cancelled caller", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		reqCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		expectCounterparties(m)
		expectCommittedRow(m, reqCtx, 11)

		m.payments.EXPECT().MakeTransfer(reqCtx, mock.Anything).
			RunAndReturn(func(ctx context.Context, p *entity.PaymentRequest) (*entity.PaymentResponse, error) {
				cancel()
				return nil, errs.NewDownstreamError("payment-delivery", 0, "context canceled", ctx.Err())
			})
		m.repo.EXPECT().Update(mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
			mock.MatchedBy(func(txn *entity.Transaction) bool {
				return txn.ID == 11 && txn.Status == entity.StatusFailed
			})).Return(nil)

		_, err := o.TransferFunds(reqCtx, validRequest())

		assert.True(t, errs.IsDownstreamError(err))
	})

	t.Run("empty payment response is a failure", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		expectCounterparties(m)
		expectCommittedRow(m, ctx, 9)

		m.payments.EXPECT().MakeTransfer(ctx, mock.Anything).Return(nil, nil)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusFailed
		})).Return(nil)

		_, err := o.TransferFunds(ctx, validRequest())

		assert.True(t, errs.IsDownstreamError(err))
	})

	t.Run("completion write failure is returned", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		expectCounterparties(m)
		expectCommittedRow(m, ctx, 10)

		m.payments.EXPECT().MakeTransfer(ctx, mock.Anything).Return(&entity.PaymentResponse{PaymentID: 1}, nil)
		m.repo.EXPECT().Update(ctx, mock.Anything).Return(errs.ErrDatabaseConnection)

		_, err := o.TransferFunds(ctx, validRequest())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("begin failure", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		expectCounterparties(m)
		m.uow.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

		_, err := o.TransferFunds(ctx, validRequest())

		assert.ErrorContains(t, err, "failed to begin transaction")
	})
}

func TestOrchestrator_GetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		m.repo.EXPECT().GetByID(ctx, uint64(5)).Return(&entity.Transaction{ID: 5}, nil)

		txn, err := o.GetTransaction(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, uint64(5), txn.ID)
	})

	t.Run("not found", func(t *testing.T) {
		o, m := newTestOrchestrator(t)
		m.repo.EXPECT().GetByID(ctx, uint64(6)).Return(nil, errs.NewNotFoundError("transaction", "6", ""))

		_, err := o.GetTransaction(ctx, 6)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		assert.Equal(t, "transaction 6 not found", err.Error())
	})
}
