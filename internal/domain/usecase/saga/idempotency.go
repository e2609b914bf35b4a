package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/persistence"
)

// IdempotencyHandler detects upstream events that were already applied to the ledger
type IdempotencyHandler struct {
	transactionRepo persistence.TransactionRepository
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(transactionRepo persistence.TransactionRepository) *IdempotencyHandler {
	return &IdempotencyHandler{
		transactionRepo: transactionRepo,
	}
}

// CheckIdempotency looks up the ledger row written for the correlation ID.
// Returns the row, whether it was found, and any error.
// Events without a correlation ID cannot be deduplicated and are reported as not found.
func (h *IdempotencyHandler) CheckIdempotency(
	ctx context.Context,
	correlationID string,
) (*entity.Transaction, bool, error) {
	if correlationID == "" {
		return nil, false, nil
	}

	txn, err := h.transactionRepo.GetByCorrelationID(ctx, correlationID)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check event idempotency: %w", err)
	}

	return txn, true, nil
}
