package rules

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
)

// Compensation and rejection reasons shared by the event-driven and synchronous paths
const (
	ReasonEventClosedOrEmpty       = "event already closed or empty"
	ReasonMissingFields            = "missing required transaction fields"
	ReasonCustomerFailure          = "customer status indicates transfer failure"
	ReasonPaymentFailure           = "payment status indicates failure"
	ReasonAccountMismatch          = "account IDs do not match"
	ReasonAmountBelowMinimum       = "transfer must be from $2"
	ReasonAmountAboveMaximum       = "transfer must not exceed $10,000.00"
	ReasonSenderAccountMismatch    = "sender account ID does not match"
	ReasonRecipientAccountMismatch = "receiver account ID does not match"
	ReasonSenderNotFound           = "sender details not found"
	ReasonRecipientNotFound        = "receiver details not found"
)

// Transfer amount bounds, inclusive
var (
	MinTransferAmount = decimal.NewFromInt(2)
	MaxTransferAmount = decimal.NewFromInt(10000)
)

// TransferValidator holds the business rules every saga trigger applies
type TransferValidator struct {
	validate *validator.Validate
}

// NewTransferValidator creates a new TransferValidator
func NewTransferValidator() *TransferValidator {
	return &TransferValidator{validate: validator.New()}
}

// CheckIdentity requires the sender, sender account, recipient and recipient account
func (v *TransferValidator) CheckIdentity(req *entity.TransferRequest) error {
	if req == nil {
		return errs.NewValidationError(ReasonEventClosedOrEmpty)
	}
	if err := v.validate.Struct(req); err != nil {
		return &errs.ValidationError{Reason: ReasonMissingFields, TransactionID: req.TransactionID}
	}
	return nil
}

// CheckAmount enforces the inclusive transfer bounds
func (v *TransferValidator) CheckAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinTransferAmount) {
		return errs.NewValidationError(ReasonAmountBelowMinimum)
	}
	if amount.GreaterThan(MaxTransferAmount) {
		return errs.NewValidationError(ReasonAmountAboveMaximum)
	}
	return nil
}

// CheckCustomerStatus rejects customer service events reporting a failed transfer
func (v *TransferValidator) CheckCustomerStatus(status entity.EventStatus) error {
	if status.IsCustomerFailure() {
		return errs.NewValidationError(ReasonCustomerFailure)
	}
	return nil
}

// CheckPaymentStatus rejects account service events reporting a failed or cancelled payment
func (v *TransferValidator) CheckPaymentStatus(status entity.EventStatus) error {
	if status.IsPaymentFailure() {
		return errs.NewValidationError(ReasonPaymentFailure)
	}
	return nil
}

// CheckAccountsMatch compares the stored ledger row with the request that claims it
func (v *TransferValidator) CheckAccountsMatch(stored *entity.Transaction, req *entity.TransferRequest) error {
	if stored.SenderAccountID != req.SenderAccountID || stored.RecipientAccountID != req.RecipientAccountID {
		return &errs.ValidationError{Reason: ReasonAccountMismatch, TransactionID: stored.ID}
	}
	return nil
}

// CheckCounterparties verifies the account ids the account service answered with
func (v *TransferValidator) CheckCounterparties(sender, recipient *entity.CustomerResponse, req *entity.TransferRequest) error {
	if sender.AccountID != req.SenderAccountID {
		return errs.NewValidationError(ReasonSenderAccountMismatch)
	}
	if recipient.AccountID != req.RecipientAccountID {
		return errs.NewValidationError(ReasonRecipientAccountMismatch)
	}
	return nil
}

// CheckSenderCustomer verifies the sender account belongs to the requesting customer
func (v *TransferValidator) CheckSenderCustomer(sender *entity.CustomerResponse, req *entity.TransferRequest) error {
	if sender.ID != req.SenderID {
		return errs.NewValidationError(fmt.Sprintf("customer id: %d with account details not found", req.SenderID))
	}
	return nil
}

// ValidateTransfer applies the synchronous-path rules: account ids, then amount, then the sender's customer id
func (v *TransferValidator) ValidateTransfer(sender, recipient *entity.CustomerResponse, req *entity.TransferRequest) error {
	if err := v.CheckCounterparties(sender, recipient, req); err != nil {
		return err
	}
	if err := v.CheckAmount(req.Amount); err != nil {
		return err
	}
	return v.CheckSenderCustomer(sender, req)
}
