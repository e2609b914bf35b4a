package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	tport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// TransactionStatus defines possible status values for a ledger transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusCreated   TransactionStatus = "CREATED"
	StatusInitiated TransactionStatus = "INITIATED"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// TransactionTypeTransfer is the only transaction type recorded by the ledger
const TransactionTypeTransfer = "Transfer"

// IsTerminal reports whether no further transitions are accepted from this status
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transaction represents one row of the transaction ledger
type Transaction struct {
	ID                 uint64            // Assigned by the store on create
	SenderAccountID    uint64            // Account the funds leave
	RecipientAccountID uint64            // Account the funds arrive at
	Description        string            // Free text supplied by the customer
	Amount             decimal.Decimal   // Transfer amount
	TransactionType    string            // Always "Transfer" for now
	Status             TransactionStatus // Saga status
	Closed             bool              // True once Status is terminal
	CorrelationID      string            // Upstream event id, empty for HTTP-originated rows
	ErrorMessage       string            // Compensation reason for FAILED rows
	CreatedDate        time.Time         // Last saga step that touched the row
}

// NewTransferTransaction builds an open ledger row for the request in the given starting status
func NewTransferTransaction(
	req *TransferRequest,
	status TransactionStatus,
	correlationID string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if req == nil {
		return nil, errs.ErrEmptyRequest
	}
	if status != StatusCreated && status != StatusInitiated {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidState, status)
	}

	return &Transaction{
		SenderAccountID:    req.SenderAccountID,
		RecipientAccountID: req.RecipientAccountID,
		Description:        req.Description,
		Amount:             NormalizeAmount(req.Amount),
		TransactionType:    TransactionTypeTransfer,
		Status:             status,
		Closed:             false,
		CorrelationID:      correlationID,
		CreatedDate:        timeProvider.Now(),
	}, nil
}

// NewFailedTransaction builds a closed FAILED row recording a compensated attempt
func NewFailedTransaction(req *TransferRequest, correlationID, reason string, timeProvider tport.TimeProvider) *Transaction {
	txn := &Transaction{
		TransactionType: TransactionTypeTransfer,
		CorrelationID:   correlationID,
		CreatedDate:     timeProvider.Now(),
	}
	if req != nil {
		txn.SenderAccountID = req.SenderAccountID
		txn.RecipientAccountID = req.RecipientAccountID
		txn.Description = req.Description
		txn.Amount = NormalizeAmount(req.Amount)
	}
	txn.Status = StatusFailed
	txn.Closed = true
	txn.ErrorMessage = reason
	return txn
}

// IsTerminal reports whether the transaction reached COMPLETED or FAILED
func (t *Transaction) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// CanTransitionTo reports whether the state machine allows moving to next
func (t *Transaction) CanTransitionTo(next TransactionStatus) bool {
	switch t.Status {
	case StatusCreated, StatusInitiated:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// MarkAsCompleted closes the transaction successfully with the confirmed amount and description
func (t *Transaction) MarkAsCompleted(timeProvider tport.TimeProvider, amount decimal.Decimal, description string) error {
	if !t.CanTransitionTo(StatusCompleted) {
		return errs.NewTransactionClosedError(t.ID, string(t.Status))
	}

	t.Amount = NormalizeAmount(amount)
	t.Description = description
	t.Status = StatusCompleted
	t.Closed = true
	t.ErrorMessage = ""
	t.CreatedDate = timeProvider.Now()
	return nil
}

// MarkAsFailed closes the transaction as compensated
func (t *Transaction) MarkAsFailed(timeProvider tport.TimeProvider, errorMessage string) error {
	if !t.CanTransitionTo(StatusFailed) {
		return errs.NewTransactionClosedError(t.ID, string(t.Status))
	}

	t.Status = StatusFailed
	t.Closed = true
	t.ErrorMessage = errorMessage
	t.CreatedDate = timeProvider.Now()
	return nil
}

// ToResponse combines the stored row with the originating request for API output
func (t *Transaction) ToResponse(req *TransferRequest) TransactionResponse {
	resp := TransactionResponse{
		AccountID:       t.SenderAccountID,
		TransactionID:   t.ID,
		RecipientID:     t.RecipientAccountID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		CreatedDate:     t.CreatedDate,
		Status:          t.Status,
		Description:     t.Description,
	}
	if req != nil {
		resp.CustomerID = req.SenderID
		resp.Description = req.Description
		resp.Amount = req.Amount
	}
	return resp
}
