package client

import (
	"context"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// PaymentClient hands a committed transfer to the payment-delivery service
type PaymentClient interface {
	// MakeTransfer asks the payment service to move the funds
	//
	// Possible errors:
	// - DownstreamError: If the payment service rejects the call, fails or times out
	MakeTransfer(ctx context.Context, req *entity.PaymentRequest) (*entity.PaymentResponse, error)
}
