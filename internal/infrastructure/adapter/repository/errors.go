package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// PostgreSQL SQLSTATE codes the ledger cares about
const (
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Classify returns the type of a database error, or "" when it is not recognised
func Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return DuplicateKeyError
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ConstraintError
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return DuplicateKeyError
		case pgCheckViolation, pgNotNullViolation:
			return ConstraintError
		case pgSerializationFailure, pgDeadlockDetected:
			return LockError
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint"):
		return DuplicateKeyError
	case strings.Contains(msg, "deadlock") || strings.Contains(msg, "could not serialize access"):
		return LockError
	case strings.Contains(msg, "connection") || strings.Contains(msg, "dial") ||
		strings.Contains(msg, "broken pipe") || strings.Contains(msg, "timeout"):
		return ConnectionError
	case strings.Contains(msg, "violates") || strings.Contains(msg, "constraint"):
		return ConstraintError
	}

	return ""
}
