package payment

import "errors"

// Payment flow errors.
var (
	ErrDraftRequired          = errors.New("reservation draft is required")
	ErrEmptyOrder             = errors.New("order amount must be positive")
	ErrQuoteRequired          = errors.New("payment calculation is required before approval")
	ErrQuoteExpired           = errors.New("payment calculation has expired")
	ErrPaymentInFlight        = errors.New("payment is already being processed")
	ErrMethodRequired         = errors.New("payment method is required")
	ErrBankAccountNotVerified = errors.New("bank account must be verified before payment")
	ErrDepositNotConfirmed    = errors.New("bank transfer deposit must be confirmed before payment")
	ErrAgreementsRequired     = errors.New("terms of service and personal data consent are required")
	ErrGuestIdentityRequired  = errors.New("guest identity is required for non-member payment")
	ErrApprovalRejected       = errors.New("payment approval was rejected")
)
