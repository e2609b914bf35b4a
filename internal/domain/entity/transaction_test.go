package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/transaction-ledger/mocks/port/core"
)

func sampleRequest() *TransferRequest {
	return &TransferRequest{
		SenderID:           1,
		SenderAccountID:    11,
		RecipientID:        2,
		RecipientAccountID: 22,
		Amount:             decimal.RequireFromString("125.50"),
		Description:        "rent",
	}
}

func TestNewTransferTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("initiated row is open", func(t *testing.T) {
		txn, err := NewTransferTransaction(sampleRequest(), StatusInitiated, "evt-1", mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(11), txn.SenderAccountID)
		assert.Equal(t, uint64(22), txn.RecipientAccountID)
		assert.Equal(t, TransactionTypeTransfer, txn.TransactionType)
		assert.Equal(t, StatusInitiated, txn.Status)
		assert.False(t, txn.Closed)
		assert.Equal(t, "evt-1", txn.CorrelationID)
		assert.Equal(t, fixedTime, txn.CreatedDate)
		assert.Equal(t, "125.50", FormatAmount(txn.Amount))
	})

	t.Run("created row for the synchronous path", func(t *testing.T) {
		txn, err := NewTransferTransaction(sampleRequest(), StatusCreated, "", mockTime)

		require.NoError(t, err)
		assert.Equal(t, StatusCreated, txn.Status)
		assert.Empty(t, txn.CorrelationID)
	})

	t.Run("terminal starting status is rejected", func(t *testing.T) {
		_, err := NewTransferTransaction(sampleRequest(), StatusCompleted, "", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("nil request is empty", func(t *testing.T) {
		_, err := NewTransferTransaction(nil, StatusCreated, "", mockTime)

		assert.ErrorIs(t, err, errs.ErrEmptyRequest)
		assert.True(t, errs.IsNotFoundError(err))
	})
}

func TestNewFailedTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime)

	txn := NewFailedTransaction(sampleRequest(), "evt-2", "account IDs do not match", mockTime)

	assert.Equal(t, StatusFailed, txn.Status)
	assert.True(t, txn.Closed)
	assert.Equal(t, "account IDs do not match", txn.ErrorMessage)
	assert.Equal(t, "evt-2", txn.CorrelationID)
	assert.Equal(t, uint64(11), txn.SenderAccountID)
}

func TestNewFailedTransaction_NilRequest(t *testing.T) {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(time.Time{})

	txn := NewFailedTransaction(nil, "evt-3", "event already closed or empty", mockTime)

	assert.Equal(t, StatusFailed, txn.Status)
	assert.True(t, txn.Closed)
	assert.Zero(t, txn.SenderAccountID)
	assert.True(t, txn.Amount.IsZero())
}

func TestTransaction_StateMachine(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	later := fixedTime.Add(time.Minute)

	tests := []struct {
		name    string
		from    TransactionStatus
		apply   func(txn *Transaction, tp *coremocks.MockTimeProvider) error
		want    TransactionStatus
		wantErr error
	}{
		{
			name: "initiated completes",
			from: StatusInitiated,
			apply: func(txn *Transaction, tp *coremocks.MockTimeProvider) error {
				tp.EXPECT().Now().Return(later)
				return txn.MarkAsCompleted(tp, decimal.RequireFromString("99.999"), "updated")
			},
			want: StatusCompleted,
		},
		{
			name: "created fails",
			from: StatusCreated,
			apply: func(txn *Transaction, tp *coremocks.MockTimeProvider) error {
				tp.EXPECT().Now().Return(later)
				return txn.MarkAsFailed(tp, "payment-delivery call failed")
			},
			want: StatusFailed,
		},
		{
			name: "completed rejects failure",
			from: StatusCompleted,
			apply: func(txn *Transaction, tp *coremocks.MockTimeProvider) error {
				return txn.MarkAsFailed(tp, "late failure")
			},
			want:    StatusCompleted,
			wantErr: errs.ErrTransactionClosed,
		},
		{
			name: "failed rejects completion",
			from: StatusFailed,
			apply: func(txn *Transaction, tp *coremocks.MockTimeProvider) error {
				return txn.MarkAsCompleted(tp, decimal.NewFromInt(5), "late success")
			},
			want:    StatusFailed,
			wantErr: errs.ErrTransactionClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTime := coremocks.NewMockTimeProvider(t)
			txn := &Transaction{ID: 5, Status: tt.from, Closed: tt.from.IsTerminal(), CreatedDate: fixedTime}

			err := tt.apply(txn, mockTime)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, fixedTime, txn.CreatedDate)
			} else {
				require.NoError(t, err)
				assert.Equal(t, later, txn.CreatedDate)
			}
			assert.Equal(t, tt.want, txn.Status)
			assert.Equal(t, txn.Status.IsTerminal(), txn.Closed)
		})
	}
}

func TestTransaction_MarkAsCompletedRoundsAmount(t *testing.T) {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(time.Time{})
	txn := &Transaction{Status: StatusInitiated, ErrorMessage: "stale"}

	require.NoError(t, txn.MarkAsCompleted(mockTime, decimal.RequireFromString("10.005"), "done"))

	assert.Equal(t, "10.01", FormatAmount(txn.Amount))
	assert.Equal(t, "done", txn.Description)
	assert.Empty(t, txn.ErrorMessage)
}

func TestTransaction_ToResponse(t *testing.T) {
	created := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	txn := &Transaction{
		ID:                 9,
		SenderAccountID:    11,
		RecipientAccountID: 22,
		Amount:             decimal.NewFromInt(50),
		TransactionType:    TransactionTypeTransfer,
		Status:             StatusCompleted,
		CreatedDate:        created,
	}

	resp := txn.ToResponse(sampleRequest())

	assert.Equal(t, uint64(9), resp.TransactionID)
	assert.Equal(t, uint64(11), resp.AccountID)
	assert.Equal(t, uint64(1), resp.CustomerID)
	assert.Equal(t, uint64(22), resp.RecipientID)
	assert.Equal(t, "rent", resp.Description)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, created, resp.CreatedDate)
}
