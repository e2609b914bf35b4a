package saga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/persistence"
)

func TestIdempotencyHandler_CheckIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("empty correlation id is never a replay", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)
		h := NewIdempotencyHandler(repo)

		txn, found, err := h.CheckIdempotency(ctx, "")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, txn)
	})

	t.Run("existing row is found", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)
		repo.EXPECT().GetByCorrelationID(ctx, "evt-1").Return(&entity.Transaction{ID: 3}, nil)
		h := NewIdempotencyHandler(repo)

		txn, found, err := h.CheckIdempotency(ctx, "evt-1")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, uint64(3), txn.ID)
	})

	t.Run("absent row is not found", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)
		repo.EXPECT().GetByCorrelationID(ctx, "evt-2").Return(nil, errs.NewNotFoundError("transaction", "evt-2", ""))
		h := NewIdempotencyHandler(repo)

		_, found, err := h.CheckIdempotency(ctx, "evt-2")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := persistence.NewMockTransactionRepository(t)
		repo.EXPECT().GetByCorrelationID(ctx, "evt-3").Return(nil, errs.ErrDatabaseConnection)
		h := NewIdempotencyHandler(repo)

		_, _, err := h.CheckIdempotency(ctx, "evt-3")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}
