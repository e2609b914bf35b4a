package persistence

import (
	"context"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// TransactionRepository defines the single-row operations of the transaction ledger
type TransactionRepository interface {
	// Create saves a new transaction and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a row with the same correlation ID already exists
	// - ErrConstraintViolation: If transaction data violates a column constraint
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update overwrites an existing transaction by ID
	// Used to move a transaction to a terminal status
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its ledger ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// GetByCorrelationID retrieves the transaction written for an upstream event
	// Used for idempotency checking of inbound events
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction carries the correlation ID
	// - ErrDatabaseConnection: If database connection fails
	GetByCorrelationID(ctx context.Context, correlationID string) (*entity.Transaction, error)
}
