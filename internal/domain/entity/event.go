package entity

import "time"

// EventStatus mirrors the status enums exchanged with the customer, account and ledger services
type EventStatus string

// Customer service statuses
const (
	EventTransferCreated   EventStatus = "TRANSFER_CREATED"
	EventTransferCompleted EventStatus = "TRANSFER_COMPLETED"
	EventTransferFailed    EventStatus = "TRANSFER_FAILED"
	EventCustomerFailure   EventStatus = "FAILURE"
)

// Account service statuses
const (
	EventPaymentCompleted EventStatus = "PAYMENT_COMPLETED"
	EventPaymentFailed    EventStatus = "PAYMENT_FAILED"
	EventPaymentCancelled EventStatus = "PAYMENT_CANCELLED"
)

// Ledger statuses published downstream
const (
	EventTransactionInitiated EventStatus = "TRANSACTION_INITIATED"
	EventTransactionCompleted EventStatus = "TRANSACTION_COMPLETED"
	EventTransactionFailed    EventStatus = "TRANSACTION_FAILED"
)

// IsCustomerFailure reports whether a customer service status signals a failed transfer
func (s EventStatus) IsCustomerFailure() bool {
	return s == EventTransferFailed || s == EventCustomerFailure
}

// IsPaymentFailure reports whether an account service status signals a failed or cancelled payment
func (s EventStatus) IsPaymentFailure() bool {
	return s == EventPaymentFailed || s == EventPaymentCancelled
}

// SagaEvent is the message exchanged between saga participants.
// A new event is built for every step; events are not modified after construction.
type SagaEvent struct {
	CorrelationID string           `json:"eventId"`
	Request       *TransferRequest `json:"transRequest,omitempty"`
	Status        EventStatus      `json:"status"`
	Error         bool             `json:"error"`
	ErrorMessage  string           `json:"errorMessage,omitempty"`
	Closed        bool             `json:"eventClosed"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// NewSuccessEvent builds a non-error event for a saga step
func NewSuccessEvent(correlationID string, req *TransferRequest, status EventStatus, closed bool, at time.Time) *SagaEvent {
	return &SagaEvent{
		CorrelationID: correlationID,
		Request:       req,
		Status:        status,
		Closed:        closed,
		OccurredAt:    at,
	}
}

// NewFailureEvent builds a closed error event for a compensated saga step
func NewFailureEvent(correlationID string, req *TransferRequest, status EventStatus, reason string, at time.Time) *SagaEvent {
	return &SagaEvent{
		CorrelationID: correlationID,
		Request:       req,
		Status:        status,
		Error:         true,
		ErrorMessage:  reason,
		Closed:        true,
		OccurredAt:    at,
	}
}

// WithCorrelationID returns a copy of the event carrying the given correlation id
func (e SagaEvent) WithCorrelationID(id string) *SagaEvent {
	e.CorrelationID = id
	return &e
}

// TransactionID returns the ledger id referenced by the event, or zero
func (e *SagaEvent) TransactionID() uint64 {
	if e == nil || e.Request == nil {
		return 0
	}
	return e.Request.TransactionID
}

// AccountEvent is the account service notification about a payment attempt
type AccountEvent struct {
	EventID       string          `json:"eventId"`
	CorrelationID string          `json:"customerEventId"`
	Payment       *PaymentRequest `json:"paymentRequest,omitempty"`
	Status        EventStatus     `json:"accountStatus"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	Closed        bool            `json:"eventClosed"`
}

// OriginID returns the id that ties the account event back to the originating transfer
func (e *AccountEvent) OriginID() string {
	if e == nil {
		return ""
	}
	if e.CorrelationID != "" {
		return e.CorrelationID
	}
	return e.EventID
}
