package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// FundTransferRequest represents the API request for a synchronous transfer
type FundTransferRequest struct {
	SenderID           uint64      `json:"senderId"`
	SenderAccountID    uint64      `json:"senderAcctId"`
	RecipientID        uint64      `json:"recipientId"`
	RecipientAccountID uint64      `json:"recipientAcctId"`
	Amount             json.Number `json:"amount"`
	Description        string      `json:"description" binding:"max=255"`
}

// ToEntity maps the request body to the domain request
func (r *FundTransferRequest) ToEntity() (*entity.TransferRequest, error) {
	amount, err := entity.ParseAmount(r.Amount.String())
	if err != nil {
		return nil, err
	}
	return &entity.TransferRequest{
		SenderID:           r.SenderID,
		SenderAccountID:    r.SenderAccountID,
		RecipientID:        r.RecipientID,
		RecipientAccountID: r.RecipientAccountID,
		Amount:             amount,
		Description:        r.Description,
	}, nil
}

// TransactionResponse represents one stored ledger row
type TransactionResponse struct {
	TransactID     uint64          `json:"transactId"`
	AccountID      uint64          `json:"accountId"`
	RecipientID    uint64          `json:"recipientId"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	TransactType   string          `json:"transactType"`
	TransactStatus string          `json:"transactStatus"`
	Closed         bool            `json:"closed"`
	ErrorMessage   string          `json:"errorMessage,omitempty"`
	CreatedDate    time.Time       `json:"createdDate"`
	CorrelationID  string          `json:"correlationId,omitempty"`
}

// NewTransactionResponse maps a ledger row to its API representation
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactID:     t.ID,
		AccountID:      t.SenderAccountID,
		RecipientID:    t.RecipientAccountID,
		Description:    t.Description,
		Amount:         t.Amount,
		TransactType:   t.TransactionType,
		TransactStatus: string(t.Status),
		Closed:         t.Closed,
		ErrorMessage:   t.ErrorMessage,
		CreatedDate:    t.CreatedDate,
		CorrelationID:  t.CorrelationID,
	}
}
