package saga

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
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/persistence"
)

var fixedTime = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type coordinatorMocks struct {
	repo      *persistence.MockTransactionRepository
	publisher *messaging.MockEventPublisher
	metrics   *core.MockMetrics
}

func newTestCoordinator(t *testing.T) (*Coordinator, coordinatorMocks) {
	t.Helper()

	m := coordinatorMocks{
		repo:      persistence.NewMockTransactionRepository(t),
		publisher: messaging.NewMockEventPublisher(t),
		metrics:   core.NewMockMetrics(t),
	}
	m.metrics.EXPECT().SagaStep(mock.Anything, mock.Anything, mock.Anything).Maybe()

	tp := core.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(fixedTime).Maybe()

	logger := core.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	return NewCoordinator(m.repo, m.publisher, rules.NewTransferValidator(), tp, logger, m.metrics), m
}

func transferRequest() *entity.TransferRequest {
	return &entity.TransferRequest{
		SenderID:           1,
		SenderAccountID:    11,
		RecipientID:        2,
		RecipientAccountID: 22,
		Amount:             decimal.RequireFromString("150.00"),
		Description:        "invoice 7",
	}
}

func customerEvent(id string) *entity.SagaEvent {
	return &entity.SagaEvent{
		CorrelationID: id,
		Request:       transferRequest(),
		Status:        entity.EventTransferCreated,
	}
}

func paymentEvent(id string, txnID uint64, status entity.EventStatus) *entity.AccountEvent {
	return &entity.AccountEvent{
		EventID:       "acct-" + id,
		CorrelationID: id,
		Status:        status,
		Payment: &entity.PaymentRequest{
			TransactionID:   txnID,
			Amount:          decimal.RequireFromString("140.00"),
			CustomerID:      1,
			AccountID:       11,
			RecipientID:     2,
			RecipientAcctID: 22,
			Description:     "invoice 7 adjusted",
			TransactStatus:  string(entity.StatusInitiated),
		},
	}
}

func notFound(id string) error {
	return errs.NewNotFoundError("transaction", id, "no transaction for event "+id)
}

func assignID(id uint64) func(ctx context.Context, txn *entity.Transaction) {
	return func(ctx context.Context, txn *entity.Transaction) { txn.ID = id }
}

func TestCoordinator_InitiateFromUpstreamCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("records INITIATED and publishes", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-1").Return(nil, notFound("evt-1"))
		m.repo.EXPECT().Create(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusInitiated && !txn.Closed &&
				txn.CorrelationID == "evt-1" && txn.TransactionType == entity.TransactionTypeTransfer &&
				txn.CreatedDate.Equal(fixedTime)
		})).Run(assignID(10)).Return(nil)
		m.publisher.EXPECT().Publish(ctx, mock.MatchedBy(func(e *entity.SagaEvent) bool {
			return e.Status == entity.EventTransactionInitiated && !e.Error && !e.Closed &&
				e.TransactionID() == 10 && e.CorrelationID == "evt-1"
		})).Return(nil)

		result, err := c.InitiateFromUpstreamCreate(ctx, customerEvent("evt-1"))

		require.NoError(t, err)
		assert.Equal(t, uint64(10), result.Request.TransactionID)
		assert.Equal(t, entity.StatusInitiated, result.Request.Status)
	})

	t.Run("replay is a duplicate and writes nothing", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-1").
			Return(&entity.Transaction{ID: 10, Status: entity.StatusInitiated}, nil)

		result, err := c.InitiateFromUpstreamCreate(ctx, customerEvent("evt-1"))

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrDuplicateEvent)
	})

	t.Run("concurrent duplicate insert is a duplicate", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-1").Return(nil, notFound("evt-1"))
		m.repo.EXPECT().Create(ctx, mock.Anything).Return(errs.ErrDuplicateTransaction)

		_, err := c.InitiateFromUpstreamCreate(ctx, customerEvent("evt-1"))

		assert.ErrorIs(t, err, errs.ErrDuplicateEvent)
	})

	rejections := []struct {
		name   string
		event  func() *entity.SagaEvent
		reason string
	}{
		{
			name: "closed event",
			event: func() *entity.SagaEvent {
				e := customerEvent("evt-2")
				e.Closed = true
				return e
			},
			reason: rules.ReasonEventClosedOrEmpty,
		},
		{
			name: "empty event",
			event: func() *entity.SagaEvent {
				e := customerEvent("evt-2")
				e.Request = nil
				return e
			},
			reason: rules.ReasonEventClosedOrEmpty,
		},
		{
			name: "missing recipient account",
			event: func() *entity.SagaEvent {
				e := customerEvent("evt-2")
				e.Request.RecipientAccountID = 0
				return e
			},
			reason: rules.ReasonMissingFields,
		},
		{
			name: "customer reports failure",
			event: func() *entity.SagaEvent {
				e := customerEvent("evt-2")
				e.Status = entity.EventTransferFailed
				return e
			},
			reason: rules.ReasonCustomerFailure,
		},
		{
			name: "amount above maximum",
			event: func() *entity.SagaEvent {
				e := customerEvent("evt-2")
				e.Request.Amount = decimal.NewFromInt(20000)
				return e
			},
			reason: rules.ReasonAmountAboveMaximum,
		},
	}

	for _, tt := range rejections {
		t.Run("compensates "+tt.name, func(t *testing.T) {
			c, m := newTestCoordinator(t)

			var persisted *entity.Transaction
			m.repo.EXPECT().GetByCorrelationID(ctx, "evt-2").Return(nil, notFound("evt-2"))
			m.repo.EXPECT().Create(ctx, mock.Anything).Run(func(ctx context.Context, txn *entity.Transaction) {
				txn.ID = 20
				persisted = txn
			}).Return(nil)
			m.publisher.EXPECT().Publish(ctx, mock.MatchedBy(func(e *entity.SagaEvent) bool {
				// the FAILED row exists before the failure event leaves
				return persisted != nil && e.Error && e.Closed && e.ErrorMessage == tt.reason
			})).Return(nil)

			result, err := c.InitiateFromUpstreamCreate(ctx, tt.event())

			require.NoError(t, err)
			assert.Equal(t, entity.EventTransactionFailed, result.Status)
			assert.Equal(t, tt.reason, result.ErrorMessage)
			require.NotNil(t, persisted)
			assert.Equal(t, entity.StatusFailed, persisted.Status)
			assert.True(t, persisted.Closed)
			assert.Equal(t, tt.reason, persisted.ErrorMessage)
			assert.Equal(t, "evt-2", persisted.CorrelationID)
		})
	}

	t.Run("publish failure is reported with the result", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		emitErr := errs.NewEmitError("broadcast", "evt-3", errors.New("buffer full"))

		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-3").Return(nil, notFound("evt-3"))
		m.repo.EXPECT().Create(ctx, mock.Anything).Run(assignID(30)).Return(nil)
		m.publisher.EXPECT().Publish(ctx, mock.Anything).Return(emitErr)

		result, err := c.InitiateFromUpstreamCreate(ctx, customerEvent("evt-3"))

		assert.ErrorIs(t, err, errs.ErrEmit)
		require.NotNil(t, result)
		assert.Equal(t, uint64(30), result.TransactionID())
	})

	t.Run("nil event is invalid", func(t *testing.T) {
		c, _ := newTestCoordinator(t)

		_, err := c.InitiateFromUpstreamCreate(ctx, nil)

		assert.ErrorIs(t, err, errs.ErrInvalidEvent)
	})
}

func TestCoordinator_CompleteFromUpstreamPayment(t *testing.T) {
	ctx := context.Background()
	initiated := func() *entity.Transaction {
		return &entity.Transaction{
			ID:                 10,
			SenderAccountID:    11,
			RecipientAccountID: 22,
			Amount:             decimal.RequireFromString("150.00"),
			Status:             entity.StatusInitiated,
			CorrelationID:      "evt-1",
		}
	}

	t.Run("completes with confirmed amount", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByID(ctx, uint64(10)).Return(initiated(), nil)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusCompleted && txn.Closed &&
				txn.Amount.Equal(decimal.RequireFromString("140.00")) &&
				txn.Description == "invoice 7 adjusted"
		})).Return(nil)

		result, err := c.CompleteFromUpstreamPayment(ctx, paymentEvent("evt-1", 10, entity.EventPaymentCompleted))

		require.NoError(t, err)
		assert.Equal(t, entity.EventTransactionCompleted, result.Status)
		assert.False(t, result.Error)
		assert.True(t, result.Closed)
		assert.Equal(t, "evt-1", result.CorrelationID)
	})

	t.Run("unknown transaction is not found and writes nothing", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByID(ctx, uint64(99)).Return(nil, errs.NewTransactionNotFoundError(99))

		result, err := c.CompleteFromUpstreamPayment(ctx, paymentEvent("evt-1", 99, entity.EventPaymentCompleted))

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("account mismatch compensates the stored row", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		event := paymentEvent("evt-1", 10, entity.EventPaymentCompleted)
		event.Payment.RecipientAcctID = 23

		m.repo.EXPECT().GetByID(ctx, uint64(10)).Return(initiated(), nil)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.ID == 10 && txn.Status == entity.StatusFailed &&
				txn.ErrorMessage == rules.ReasonAccountMismatch
		})).Return(nil)

		result, err := c.CompleteFromUpstreamPayment(ctx, event)

		require.NoError(t, err)
		assert.True(t, result.Error)
		assert.True(t, result.Closed)
		assert.Equal(t, rules.ReasonAccountMismatch, result.ErrorMessage)
		assert.Equal(t, uint64(10), result.TransactionID())
	})

	t.Run("payment failure compensates", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByID(ctx, uint64(10)).Return(initiated(), nil)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusFailed && txn.ErrorMessage == rules.ReasonPaymentFailure
		})).Return(nil)

		result, err := c.CompleteFromUpstreamPayment(ctx, paymentEvent("evt-1", 10, entity.EventPaymentCancelled))

		require.NoError(t, err)
		assert.Equal(t, rules.ReasonPaymentFailure, result.ErrorMessage)
	})

	t.Run("empty payload compensates by correlation id", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		event := paymentEvent("evt-4", 0, entity.EventPaymentCompleted)
		event.Payment = nil

		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-4").Return(nil, notFound("evt-4"))
		m.repo.EXPECT().Create(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusFailed && txn.ErrorMessage == rules.ReasonEventClosedOrEmpty
		})).Run(assignID(40)).Return(nil)

		result, err := c.CompleteFromUpstreamPayment(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, rules.ReasonEventClosedOrEmpty, result.ErrorMessage)
		assert.Nil(t, result.Request)
	})

	t.Run("closed transaction is left alone", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		completed := initiated()
		completed.Status = entity.StatusCompleted
		completed.Closed = true

		m.repo.EXPECT().GetByID(ctx, uint64(10)).Return(completed, nil)

		_, err := c.CompleteFromUpstreamPayment(ctx, paymentEvent("evt-1", 10, entity.EventPaymentCompleted))

		assert.ErrorIs(t, err, errs.ErrTransactionClosed)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByID(ctx, uint64(10)).Return(nil, errs.ErrDatabaseConnection)

		_, err := c.CompleteFromUpstreamPayment(ctx, paymentEvent("evt-1", 10, entity.EventPaymentCompleted))

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestCoordinator_Compensate(t *testing.T) {
	ctx := context.Background()
	origin := &entity.SagaEvent{CorrelationID: "evt-5"}

	t.Run("creates a FAILED row when none exists", func(t *testing.T) {
		c, m := newTestCoordinator(t)

		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-5").Return(nil, notFound("evt-5"))
		m.repo.EXPECT().Create(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusFailed && txn.Closed && txn.SenderAccountID == 11
		})).Run(assignID(50)).Return(nil)

		result, err := c.Compensate(ctx, origin, transferRequest(), "payment status indicates failure", entity.EventTransactionFailed)

		require.NoError(t, err)
		assert.Equal(t, uint64(50), result.TransactionID())
		assert.Equal(t, entity.StatusFailed, result.Request.Status)
		assert.Equal(t, entity.EventTransactionFailed, result.Status)
	})

	t.Run("repeat call on a FAILED row writes nothing", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		req := transferRequest().WithTransactionID(50)

		m.repo.EXPECT().GetByID(ctx, uint64(50)).Return(&entity.Transaction{
			ID:           50,
			Status:       entity.StatusFailed,
			Closed:       true,
			ErrorMessage: "payment status indicates failure",
		}, nil)

		result, err := c.Compensate(ctx, origin, req, "payment status indicates failure", entity.EventTransactionFailed)

		require.NoError(t, err)
		assert.True(t, result.Error)
		assert.Equal(t, uint64(50), result.TransactionID())
	})

	t.Run("completed row cannot be compensated", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		req := transferRequest().WithTransactionID(60)

		m.repo.EXPECT().GetByID(ctx, uint64(60)).
			Return(&entity.Transaction{ID: 60, Status: entity.StatusCompleted, Closed: true}, nil)

		_, err := c.Compensate(ctx, origin, req, "late failure", entity.EventTransactionFailed)

		assert.ErrorIs(t, err, errs.ErrTransactionClosed)
	})

	t.Run("falls back to correlation id when the id is unknown", func(t *testing.T) {
		c, m := newTestCoordinator(t)
		req := transferRequest().WithTransactionID(70)

		m.repo.EXPECT().GetByID(ctx, uint64(70)).Return(nil, errs.NewTransactionNotFoundError(70))
		m.repo.EXPECT().GetByCorrelationID(ctx, "evt-5").
			Return(&entity.Transaction{ID: 71, Status: entity.StatusInitiated, CorrelationID: "evt-5"}, nil)
		m.repo.EXPECT().Update(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.ID == 71 && txn.Status == entity.StatusFailed
		})).Return(nil)

		result, err := c.Compensate(ctx, origin, req, "payment status indicates failure", entity.EventTransactionFailed)

		require.NoError(t, err)
		assert.Equal(t, uint64(71), result.TransactionID())
	})
}
