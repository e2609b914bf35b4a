package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses and logs
const (
	// 4xxx - Client errors
	CodeValidation           = 4001
	CodeInvalidRequest       = 4002
	CodeDuplicateTransaction = 4004
	CodeConstraintViolation  = 4005
	CodeDownstreamClient     = 4006
	CodeNotFound             = 4040
	CodeTransactionNotFound  = 4041
	CodeTransactionClosed    = 4090
	CodeDuplicateEvent       = 4091

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeEmit               = 5001
	CodeDownstream         = 5020
	CodeDownstreamRejected = 5030
)

// Base error types
var (
	// ErrValidation is returned when a business rule rejects a transfer
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced resource is absent
	ErrNotFound = errors.New("resource not found")

	// ErrTransactionNotFound is returned when the requested ledger row doesn't exist
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", ErrNotFound)

	// ErrEmptyRequest is returned when the synchronous path receives no transfer request
	ErrEmptyRequest = fmt.Errorf("%w: transfer fund request must not be empty", ErrNotFound)

	// ErrDownstream is returned when a remote service call fails
	ErrDownstream = errors.New("downstream service failure")

	// ErrCircuitOpen is returned when a remote service is short-circuited
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrEmit is returned when an event could not be emitted
	ErrEmit = errors.New("event emit failed")

	// ErrBroadcasterClosed is returned when publishing on a closed in-process stream
	ErrBroadcasterClosed = errors.New("broadcaster is closed")

	// ErrDuplicateEvent is returned when an upstream event was already applied
	ErrDuplicateEvent = errors.New("event already processed")

	// ErrTransactionClosed is returned when a terminal transaction is asked to transition again
	ErrTransactionClosed = errors.New("transaction already closed")

	// ErrInvalidState is returned when a transaction status is not valid for the operation
	ErrInvalidState = errors.New("invalid transaction state")

	// ErrInvalidEvent is returned when an inbound event cannot be decoded or carries no data
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDuplicateTransaction is returned when the store rejects a row as duplicate
	ErrDuplicateTransaction = errors.New("transaction already exists")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	var downstream *DownstreamError
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidEvent):
		return CodeInvalidRequest
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateEvent):
		return CodeDuplicateEvent
	case errors.Is(err, ErrTransactionClosed):
		return CodeTransactionClosed
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrEmit):
		return CodeEmit
	case errors.Is(err, ErrCircuitOpen):
		return CodeDownstreamRejected
	case errors.As(err, &downstream) && downstream.IsClientError():
		return CodeDownstreamClient
	case errors.Is(err, ErrDownstream):
		return CodeDownstream
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps the error taxonomy onto HTTP status codes
func HTTPStatus(err error) int {
	var downstream *DownstreamError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateEvent), errors.Is(err, ErrTransactionClosed), errors.Is(err, ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.As(err, &downstream) && downstream.IsClientError():
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError describes a business rule that rejected a transfer
type ValidationError struct {
	Reason        string
	TransactionID uint64
	CorrelationID string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return e.Reason
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "validation_error",
		"reason":         e.Reason,
		"transaction_id": e.TransactionID,
		"correlation_id": e.CorrelationID,
		"error_code":     CodeValidation,
	}
}

// NewValidationError creates a validation error with the given reason
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// NotFoundError describes an absent transaction or remote entity
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is checks if the target error is an ErrNotFound, or ErrTransactionNotFound for ledger rows
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	return target == ErrTransactionNotFound && e.Resource == "transaction"
}

// LogFields returns a map of fields for structured logging
func (e *NotFoundError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "not_found",
		"resource":   e.Resource,
		"id":         e.ID,
		"message":    e.Error(),
		"error_code": CodeNotFound,
	}
}

// NewNotFoundError creates a not found error with an explicit message
func NewNotFoundError(resource, id, message string) error {
	return &NotFoundError{Resource: resource, ID: id, Message: message}
}

// NewTransactionNotFoundError creates a not found error for a ledger row
func NewTransactionNotFoundError(transactionID uint64) error {
	return &NotFoundError{
		Resource: "transaction",
		ID:       fmt.Sprintf("%d", transactionID),
		Message:  fmt.Sprintf("transaction %d not found", transactionID),
	}
}

// DownstreamError describes a failed call to a remote service
type DownstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface for DownstreamError
func (e *DownstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s responded %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s call failed: %s", e.Service, e.Message)
}

// Unwrap returns the underlying error
func (e *DownstreamError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrDownstream
func (e *DownstreamError) Is(target error) bool {
	return target == ErrDownstream
}

// IsClientError reports whether the remote service rejected the request with a 4xx
func (e *DownstreamError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// LogFields returns a map of fields for structured logging
func (e *DownstreamError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "downstream_error",
		"service":     e.Service,
		"status_code": e.StatusCode,
		"message":     e.Message,
		"error_code":  ErrorCode(e),
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewDownstreamError creates a downstream error
func NewDownstreamError(service string, statusCode int, message string, err error) error {
	return &DownstreamError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// EmitError describes an event that could not be handed to a sink
type EmitError struct {
	Destination   string
	CorrelationID string
	Err           error
}

// Error implements the error interface for EmitError
func (e *EmitError) Error() string {
	return fmt.Sprintf("failed to emit event %s to %s: %v", e.CorrelationID, e.Destination, e.Err)
}

// Unwrap returns the underlying error
func (e *EmitError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrEmit
func (e *EmitError) Is(target error) bool {
	return target == ErrEmit
}

// LogFields returns a map of fields for structured logging
func (e *EmitError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "emit_error",
		"destination":    e.Destination,
		"correlation_id": e.CorrelationID,
		"error":          e.Err.Error(),
		"error_code":     CodeEmit,
	}
}

// NewEmitError creates an emit error
func NewEmitError(destination, correlationID string, err error) error {
	return &EmitError{Destination: destination, CorrelationID: correlationID, Err: err}
}

// TransactionClosedError is returned when a terminal ledger row is asked to transition
type TransactionClosedError struct {
	TransactionID uint64
	Status        string
}

// Error implements the error interface
func (e *TransactionClosedError) Error() string {
	return fmt.Sprintf("transaction %d is already closed with status %s", e.TransactionID, e.Status)
}

// Is checks if the target error is an ErrTransactionClosed
func (e *TransactionClosedError) Is(target error) bool {
	return target == ErrTransactionClosed
}

// NewTransactionClosedError creates a closed transaction error
func NewTransactionClosedError(transactionID uint64, status string) error {
	return &TransactionClosedError{TransactionID: transactionID, Status: status}
}

// DuplicateEventError is returned when an upstream event replay is detected
type DuplicateEventError struct {
	CorrelationID string
	TransactionID uint64
}

// Error implements the error interface
func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("event %s already applied to transaction %d", e.CorrelationID, e.TransactionID)
}

// Is checks if the target error is an ErrDuplicateEvent
func (e *DuplicateEventError) Is(target error) bool {
	return target == ErrDuplicateEvent
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateEventError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "duplicate_event",
		"correlation_id": e.CorrelationID,
		"transaction_id": e.TransactionID,
		"error_code":     CodeDuplicateEvent,
	}
}

// NewDuplicateEventError creates a duplicate event error
func NewDuplicateEventError(correlationID string, transactionID uint64) error {
	return &DuplicateEventError{CorrelationID: correlationID, TransactionID: transactionID}
}

// IsValidationError checks if the error is a business rule rejection
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDownstreamError checks if the error came from a remote service
func IsDownstreamError(err error) bool {
	return errors.Is(err, ErrDownstream) || errors.Is(err, ErrCircuitOpen)
}

// IsEmitError checks if the error is an emit failure
func IsEmitError(err error) bool {
	return errors.Is(err, ErrEmit)
}

// IsDuplicateEventError checks if the error reports an already applied event
func IsDuplicateEventError(err error) bool {
	return errors.Is(err, ErrDuplicateEvent)
}

// IsTransactionClosedError checks if the error reports a terminal transaction
func IsTransactionClosedError(err error) bool {
	return errors.Is(err, ErrTransactionClosed)
}

// IsDuplicateTransactionError checks if the store rejected a duplicate row
func IsDuplicateTransactionError(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction)
}

// LogFields extracts structured fields from errors that carry them
func LogFields(err error) map[string]any {
	var carrier interface{ LogFields() map[string]any }
	if errors.As(err, &carrier) {
		return carrier.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}
