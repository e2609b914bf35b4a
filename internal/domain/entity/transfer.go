package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest carries one funds transfer through a saga step.
// It is never persisted and is copied rather than mutated between steps.
type TransferRequest struct {
	TransactionID      uint64            `json:"transactId,omitempty"`
	SenderID           uint64            `json:"senderId" validate:"required"`
	SenderAccountID    uint64            `json:"senderAcctId" validate:"required"`
	RecipientID        uint64            `json:"recipientId" validate:"required"`
	RecipientAccountID uint64            `json:"recipientAcctId" validate:"required"`
	Amount             decimal.Decimal   `json:"amount"`
	Description        string            `json:"description"`
	Status             TransactionStatus `json:"transactStatus,omitempty"`
}

// WithTransactionID returns a copy of the request bound to a ledger row
func (r TransferRequest) WithTransactionID(id uint64) *TransferRequest {
	r.TransactionID = id
	return &r
}

// WithStatus returns a copy of the request carrying the given status
func (r TransferRequest) WithStatus(status TransactionStatus) *TransferRequest {
	r.Status = status
	return &r
}

// TransactionResponse is returned by the synchronous transfer path
type TransactionResponse struct {
	AccountID       uint64            `json:"accountId"`
	TransactionID   uint64            `json:"transactionId"`
	CustomerID      uint64            `json:"customerId"`
	RecipientID     uint64            `json:"recipientId"`
	Amount          decimal.Decimal   `json:"amount"`
	TransactionType string            `json:"transactionType"`
	CreatedDate     time.Time         `json:"createdDate"`
	Status          TransactionStatus `json:"status"`
	Description     string            `json:"description"`
}

// CustomerResponse is the account service view of a customer and one of its accounts
type CustomerResponse struct {
	ID        uint64 `json:"id"`
	AccountID uint64 `json:"accountId"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// PaymentRequest is the payload exchanged with the payment-delivery service
type PaymentRequest struct {
	TransactionID   uint64          `json:"transactionId"`
	Amount          decimal.Decimal `json:"amount"`
	CustomerID      uint64          `json:"customerId"`
	AccountID       uint64          `json:"accountId"`
	RecipientID     uint64          `json:"recipientId"`
	RecipientAcctID uint64          `json:"recipientAcctId"`
	Description     string          `json:"description"`
	TransactStatus  string          `json:"transactStatus"`
}

// PaymentResponse is the payment-delivery confirmation
type PaymentResponse struct {
	PaymentID     uint64          `json:"paymentId"`
	TransactionID uint64          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// NewPaymentRequest builds the payment-delivery payload for a committed ledger row
func NewPaymentRequest(txn *Transaction, req *TransferRequest) *PaymentRequest {
	return &PaymentRequest{
		TransactionID:   txn.ID,
		Amount:          txn.Amount,
		CustomerID:      req.SenderID,
		AccountID:       txn.SenderAccountID,
		RecipientID:     req.RecipientID,
		RecipientAcctID: txn.RecipientAccountID,
		Description:     txn.Description,
		TransactStatus:  string(txn.Status),
	}
}

// ToTransferRequest maps a payment payload to the request shape used by the saga
func (p *PaymentRequest) ToTransferRequest() *TransferRequest {
	if p == nil {
		return nil
	}
	return &TransferRequest{
		TransactionID:      p.TransactionID,
		SenderID:           p.CustomerID,
		SenderAccountID:    p.AccountID,
		RecipientID:        p.RecipientID,
		RecipientAccountID: p.RecipientAcctID,
		Amount:             p.Amount,
		Description:        p.Description,
		Status:             TransactionStatus(p.TransactStatus),
	}
}
