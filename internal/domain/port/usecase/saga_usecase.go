package usecase

import (
	"context"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// SagaCoordinator decides the next ledger state for asynchronous saga triggers
type SagaCoordinator interface {
	// InitiateFromUpstreamCreate records a new transfer announced by the customer service
	// and publishes the resulting event. A replay of an applied event returns ErrDuplicateEvent.
	InitiateFromUpstreamCreate(ctx context.Context, event *entity.SagaEvent) (*entity.SagaEvent, error)

	// CompleteFromUpstreamPayment closes a transfer confirmed or rejected by the account service.
	// The returned event is not published; the caller routes it by its error flag.
	CompleteFromUpstreamPayment(ctx context.Context, event *entity.AccountEvent) (*entity.SagaEvent, error)

	// Compensate records the request as FAILED and returns the failure event
	Compensate(
		ctx context.Context,
		event *entity.SagaEvent,
		req *entity.TransferRequest,
		reason string,
		failureStatus entity.EventStatus,
	) (*entity.SagaEvent, error)
}
