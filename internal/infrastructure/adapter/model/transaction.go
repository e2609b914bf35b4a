package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for one ledger row
type Transaction struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	AccountID         uint64          `gorm:"column:account_id;not null;index"`
	RecipientID       uint64          `gorm:"column:recipient_id;not null"`
	Description       string          `gorm:"column:description;type:text"`
	Amount            decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	TransactType      string          `gorm:"column:transact_type;size:32;not null"`
	TransactionStatus string          `gorm:"column:transact_status;size:16;not null;index"`
	Closed            bool            `gorm:"column:closed;not null;default:false"`
	CorrelationID     *string         `gorm:"column:correlation_id;size:128;uniqueIndex:idx_transaction_correlation_id"`
	ErrorMessage      string          `gorm:"column:error_message;type:text"`
	CreatedDate       time.Time       `gorm:"column:created_date;not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transaction"
}
