package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new ledger row and assigns its id to transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	row := toModel(transaction)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if Classify(err) == DuplicateKeyError {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"correlation_id": transaction.CorrelationID,
			})
			return fmt.Errorf("%w: correlation id %s", errs.ErrDuplicateTransaction, transaction.CorrelationID)
		}
		return r.mapError("create", err, map[string]any{
			"correlation_id": transaction.CorrelationID,
		})
	}

	transaction.ID = row.ID
	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": row.ID,
		"status":         row.TransactionStatus,
	})
	return nil
}

// Update overwrites the mutable columns of an existing ledger row
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	row := toModel(transaction)

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]any{
			"amount":          row.Amount,
			"description":     row.Description,
			"transact_status": row.TransactionStatus,
			"closed":          row.Closed,
			"error_message":   row.ErrorMessage,
			"created_date":    row.CreatedDate,
		})

	if result.Error != nil {
		return r.mapError("update", result.Error, map[string]any{
			"transaction_id": transaction.ID,
		})
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"transaction_id": transaction.ID,
		})
		return errs.NewTransactionNotFoundError(transaction.ID)
	}

	r.logger.Debug("Transaction updated", map[string]any{
		"transaction_id": transaction.ID,
		"status":         row.TransactionStatus,
	})
	return nil
}

// GetByID retrieves a ledger row by its id
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewTransactionNotFoundError(id)
		}
		return nil, r.mapError("get", err, map[string]any{"transaction_id": id})
	}
	return toEntity(&row), nil
}

// GetByCorrelationID retrieves the ledger row created for an upstream event
func (r *TransactionRepository) GetByCorrelationID(ctx context.Context, correlationID string) (*entity.Transaction, error) {
	if correlationID == "" {
		return nil, errs.NewNotFoundError("transaction", "", "correlation id is empty")
	}

	var row model.Transaction
	err := r.db.WithContext(ctx).Where("correlation_id = ?", correlationID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("transaction", correlationID,
				fmt.Sprintf("no transaction for event %s", correlationID))
		}
		return nil, r.mapError("get", err, map[string]any{"correlation_id": correlationID})
	}
	return toEntity(&row), nil
}

// mapError logs a database failure and wraps it in the domain taxonomy
func (r *TransactionRepository) mapError(operation string, err error, fields map[string]any) error {
	fields["operation"] = operation
	fields["error"] = err.Error()
	r.logger.Error("Transaction repository operation failed", fields)

	switch Classify(err) {
	case ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	case ConnectionError, LockError:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	default:
		return fmt.Errorf("%w: %s transaction: %s", errs.ErrInternalServer, operation, err.Error())
	}
}

func toModel(t *entity.Transaction) model.Transaction {
	row := model.Transaction{
		ID:                t.ID,
		AccountID:         t.SenderAccountID,
		RecipientID:       t.RecipientAccountID,
		Description:       t.Description,
		Amount:            t.Amount,
		TransactType:      t.TransactionType,
		TransactionStatus: string(t.Status),
		Closed:            t.Closed,
		ErrorMessage:      t.ErrorMessage,
		CreatedDate:       t.CreatedDate,
	}
	if t.CorrelationID != "" {
		id := t.CorrelationID
		row.CorrelationID = &id
	}
	return row
}

func toEntity(row *model.Transaction) *entity.Transaction {
	t := &entity.Transaction{
		ID:                 row.ID,
		SenderAccountID:    row.AccountID,
		RecipientAccountID: row.RecipientID,
		Description:        row.Description,
		Amount:             row.Amount,
		TransactionType:    row.TransactType,
		Status:             entity.TransactionStatus(row.TransactionStatus),
		Closed:             row.Closed,
		ErrorMessage:       row.ErrorMessage,
		CreatedDate:        row.CreatedDate,
	}
	if row.CorrelationID != nil {
		t.CorrelationID = *row.CorrelationID
	}
	return t
}
