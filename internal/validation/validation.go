// Package validation holds the input checks run before anything is sent to
// the payment backend. Checks are format-level only; whether a card or
// account actually works is the PG's call.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidCardNumber   = errors.New("card number must be 16 digits")
	ErrInvalidCardExpiry   = errors.New("card expiry is invalid")
	ErrCardExpired         = errors.New("card is expired")
	ErrInvalidCardCVC      = errors.New("cvc must be 3 digits")
	ErrInvalidCardPassword = errors.New("card password must be 4 digits")
	ErrInvalidBankCode     = errors.New("bank is required")
	ErrInvalidAccount      = errors.New("account number must be at least 10 digits")
	ErrInvalidPhone        = errors.New("phone number format is invalid")
	ErrGuestNameRequired     = errors.New("name is required")
	ErrGuestPasswordShort    = errors.New("password must be at least 4 characters")
	ErrGuestPasswordMismatch = errors.New("password confirmation does not match")
	ErrInvalidReceiptType    = errors.New("cash receipt type must be PERSONAL or BUSINESS")
	ErrInvalidBusinessNumber = errors.New("business registration number must be 10 digits")
)

var (
	phonePattern   = regexp.MustCompile(`^01[0-9]{9}$`)
	digitsOnly     = regexp.MustCompile(`^[0-9]+$`)
	cvcPattern     = regexp.MustCompile(`^[0-9]{3}$`)
	cardPwdPattern = regexp.MustCompile(`^[0-9]{4}$`)
	bizNumPattern  = regexp.MustCompile(`^[0-9]{10}$`)
)

// NormalizeCardNumber strips spaces and hyphens from formatted card input.
func NormalizeCardNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	return strings.ReplaceAll(number, "-", "")
}

// CardNumber checks the normalized number is exactly 16 digits.
func CardNumber(number string) error {
	n := NormalizeCardNumber(number)
	if len(n) != 16 || !digitsOnly.MatchString(n) {
		return ErrInvalidCardNumber
	}
	return nil
}

// CardExpiry checks MM/YY fields and rejects past expiry dates. The card is
// valid through the last day of its expiry month.
func CardExpiry(month, year string, now time.Time) error {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ErrInvalidCardExpiry
	}
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 2 {
		return ErrInvalidCardExpiry
	}
	y += 2000

	endOfMonth := time.Date(y, time.Month(m)+1, 1, 0, 0, 0, 0, now.Location())
	if !now.Before(endOfMonth) {
		return ErrCardExpired
	}
	return nil
}

// CardCVC checks the 3-digit security code.
func CardCVC(cvc string) error {
	if !cvcPattern.MatchString(cvc) {
		return ErrInvalidCardCVC
	}
	return nil
}

// CardPassword checks the 4-digit card password.
func CardPassword(pwd string) error {
	if !cardPwdPattern.MatchString(pwd) {
		return ErrInvalidCardPassword
	}
	return nil
}

// BankAccount checks the bank code and account number format.
func BankAccount(bankCode, accountNumber string) error {
	if bankCode == "" {
		return ErrInvalidBankCode
	}
	n := strings.ReplaceAll(accountNumber, "-", "")
	if len(n) < 10 || !digitsOnly.MatchString(n) {
		return ErrInvalidAccount
	}
	return nil
}

// Phone checks the mobile number format: 01X followed by 9 digits, no
// separators.
func Phone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// GuestIdentity checks the self-chosen identity of a non-member checkout.
func GuestIdentity(name, phone, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrGuestNameRequired
	}
	if err := Phone(phone); err != nil {
		return err
	}
	if len(password) < 4 {
		return ErrGuestPasswordShort
	}
	return nil
}

// GuestPassword checks the guest checkout password together with its typed
// confirmation.
func GuestPassword(password, confirm string) error {
	if len(password) < 4 {
		return ErrGuestPasswordShort
	}
	if password != confirm {
		return ErrGuestPasswordMismatch
	}
	return nil
}

// CashReceipt checks the receipt request block: personal receipts carry a
// mobile number, business receipts a 10-digit registration number.
func CashReceipt(receiptType, identifier string) error {
	switch receiptType {
	case "PERSONAL":
		return Phone(identifier)
	case "BUSINESS":
		if !bizNumPattern.MatchString(identifier) {
			return ErrInvalidBusinessNumber
		}
		return nil
	default:
		return ErrInvalidReceiptType
	}
}
