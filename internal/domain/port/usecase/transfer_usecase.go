package usecase

import (
	"context"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// TransferUseCase defines the synchronous transfer operations exposed over HTTP
type TransferUseCase interface {
	// TransferFunds validates, records and delivers a transfer in one request
	TransferFunds(ctx context.Context, req *entity.TransferRequest) (*entity.TransactionResponse, error)

	// GetTransaction returns a single ledger row
	GetTransaction(ctx context.Context, transactionID uint64) (*entity.Transaction, error)
}
