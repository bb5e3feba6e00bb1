package models

import "time"

// Saved payment method kinds.
const (
	MethodTypeCreditCard  = "CREDIT_CARD"
	MethodTypeBankAccount = "BANK_ACCOUNT"
)

// SavedPaymentMethod is a tokenized payment instrument stored upstream.
// List responses carry masked numbers; the raw lookup returns the unmasked
// credentials used to populate editable form fields.
type SavedPaymentMethod struct {
	ID                int64     `json:"id"`
	MemberID          int64     `json:"memberId"`
	PaymentMethodType string    `json:"paymentMethodType"`
	Alias             string    `json:"alias"`
	CardNumber        string    `json:"cardNumber,omitempty"`
	CardExpiryMonth   string    `json:"cardExpiryMonth,omitempty"`
	CardExpiryYear    string    `json:"cardExpiryYear,omitempty"`
	CardHolderName    string    `json:"cardHolderName,omitempty"`
	CardCVC           string    `json:"cardCvc,omitempty"`
	BankCode          string    `json:"bankCode,omitempty"`
	AccountNumber     string    `json:"accountNumber,omitempty"`
	AccountHolderName string    `json:"accountHolderName,omitempty"`
	AccountPassword   string    `json:"accountPassword,omitempty"`
	IsDefault         bool      `json:"isDefault"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CreateSavedPaymentMethodRequest creates a new saved instrument. The member
// id is taken from the caller's token upstream, never from the body.
type CreateSavedPaymentMethodRequest struct {
	PaymentMethodType string `json:"paymentMethodType"`
	Alias             string `json:"alias"`
	CardNumber        string `json:"cardNumber,omitempty"`
	CardHolderName    string `json:"cardHolderName,omitempty"`
	CardExpiryMonth   string `json:"cardExpiryMonth,omitempty"`
	CardExpiryYear    string `json:"cardExpiryYear,omitempty"`
	CardCVC           string `json:"cardCvc,omitempty"`
	BankCode          string `json:"bankCode,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountPassword   string `json:"accountPassword,omitempty"`
	IsDefault         bool   `json:"isDefault"`
}

// BankAccountVerificationRequest verifies a newly entered account before it
// may be used for approval. Verification does not create a payment record.
type BankAccountVerificationRequest struct {
	BankCode        string `json:"bankCode"`
	AccountNumber   string `json:"accountNumber"`
	AccountPassword string `json:"accountPassword"`
}

// BankAccountVerificationResponse is the verification outcome.
type BankAccountVerificationResponse struct {
	Verified            bool   `json:"verified"`
	AccountHolderName   string `json:"accountHolderName"`
	MaskedAccountNumber string `json:"maskedAccountNumber"`
	BankName            string `json:"bankName"`
	Message             string `json:"message,omitempty"`
}
