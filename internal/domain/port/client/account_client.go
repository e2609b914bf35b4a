package client

import (
	"context"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// AccountClient reads customer and account details from the account service
type AccountClient interface {
	// GetCustomerAccountDetails returns the customer owning the account
	//
	// Possible errors:
	// - NotFoundError: If the account service does not know the account
	// - DownstreamError: If the account service rejects the call, fails or times out
	GetCustomerAccountDetails(ctx context.Context, accountID uint64) (*entity.CustomerResponse, error)
}
