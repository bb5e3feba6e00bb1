package payment

import (
	"fmt"
	"time"

	"raillo/internal/models"
	"raillo/internal/validation"
)

// Placeholder credentials sent for saved-card payments. The PG charges the
// stored token upstream and ignores these fields, but the request schema
// requires them to be present and well-formed.
const (
	placeholderCVC          = "123"
	placeholderCardPassword = "1234"
)

// Method is one concrete way to pay. Each variant validates its own inputs
// and shapes its own slice of the PG request.
type Method interface {
	// Name returns the wire identifier of the method.
	Name() string
	// Validate checks the variant's inputs before any backend call.
	Validate(now time.Time) error
	// apply writes the variant's fields into the PG request.
	apply(req *models.PGPaymentRequest)
	// saveRequest builds the registration body for saving this instrument
	// after a successful payment. Not every variant can be saved.
	saveRequest(alias string) (models.CreateSavedPaymentMethodRequest, bool)
}

// SimplePay is a redirect-based wallet payment (Kakao Pay, Naver Pay, Payco).
type SimplePay struct {
	Provider string
	Phone    string
}

func (m SimplePay) Name() string { return m.Provider }

func (m SimplePay) Validate(time.Time) error {
	switch m.Provider {
	case models.PaymentMethodKakaoPay, models.PaymentMethodNaverPay, models.PaymentMethodPayco:
	default:
		return fmt.Errorf("unsupported simple payment provider %q", m.Provider)
	}
	if m.Phone != "" {
		return validation.Phone(m.Phone)
	}
	return nil
}

func (m SimplePay) apply(req *models.PGPaymentRequest) {
	req.SimplePaymentProvider = m.Provider
	req.SimplePaymentPhone = m.Phone
}

func (SimplePay) saveRequest(string) (models.CreateSavedPaymentMethodRequest, bool) {
	return models.CreateSavedPaymentMethodRequest{}, false
}

// CreditCard pays with card credentials, either typed in or populated from a
// saved instrument. FromSaved marks the latter; its credential fields then
// carry placeholders and the saved method id identifies the real token.
type CreditCard struct {
	Number            string
	ExpiryMonth       string
	ExpiryYear        string
	CVC               string
	HolderName        string
	Password          string
	InstallmentMonths int
	FromSaved         bool
	SavedMethodID     int64
}

func (CreditCard) Name() string { return models.PaymentMethodCreditCard }

func (m CreditCard) Validate(now time.Time) error {
	if m.FromSaved {
		if m.SavedMethodID <= 0 {
			return fmt.Errorf("saved payment method id is required")
		}
		return nil
	}
	if err := validation.CardNumber(m.Number); err != nil {
		return err
	}
	if err := validation.CardExpiry(m.ExpiryMonth, m.ExpiryYear, now); err != nil {
		return err
	}
	if err := validation.CardCVC(m.cvc()); err != nil {
		return err
	}
	return validation.CardPassword(m.password())
}

func (m CreditCard) apply(req *models.PGPaymentRequest) {
	req.CardNumber = validation.NormalizeCardNumber(m.Number)
	req.CardExpiryMonth = m.ExpiryMonth
	req.CardExpiryYear = m.ExpiryYear
	req.CardCVC = m.cvc()
	req.CardHolderName = m.HolderName
	req.CardPassword = m.password()
	req.InstallmentMonths = m.InstallmentMonths
	if m.FromSaved {
		req.SavedPaymentMethodID = m.SavedMethodID
	}
}

func (m CreditCard) saveRequest(alias string) (models.CreateSavedPaymentMethodRequest, bool) {
	if m.FromSaved {
		return models.CreateSavedPaymentMethodRequest{}, false
	}
	return models.CreateSavedPaymentMethodRequest{
		PaymentMethodType: models.MethodTypeCreditCard,
		Alias:             alias,
		CardNumber:        validation.NormalizeCardNumber(m.Number),
		CardHolderName:    m.HolderName,
		CardExpiryMonth:   m.ExpiryMonth,
		CardExpiryYear:    m.ExpiryYear,
		CardCVC:           m.CVC,
	}, true
}

func (m CreditCard) cvc() string {
	if m.CVC == "" && m.FromSaved {
		return placeholderCVC
	}
	return m.CVC
}

func (m CreditCard) password() string {
	if m.Password == "" && m.FromSaved {
		return placeholderCardPassword
	}
	return m.Password
}

// BankAccount pays by direct account debit. The account must pass the
// verification call before approval; Verified carries that gate's outcome.
type BankAccount struct {
	BankCode      string
	AccountNumber string
	Password      string
	Verified      bool
	FromSaved     bool
	SavedMethodID int64
}

func (BankAccount) Name() string { return models.PaymentMethodBankAccount }

func (m BankAccount) Validate(time.Time) error {
	if m.FromSaved && m.SavedMethodID <= 0 {
		return fmt.Errorf("saved payment method id is required")
	}
	if err := validation.BankAccount(m.BankCode, m.AccountNumber); err != nil {
		return err
	}
	if !m.Verified {
		return ErrBankAccountNotVerified
	}
	return nil
}

func (m BankAccount) apply(req *models.PGPaymentRequest) {
	req.BankCode = m.BankCode
	req.AccountNumber = m.AccountNumber
	req.AccountPassword = m.Password
	if m.FromSaved {
		req.SavedPaymentMethodID = m.SavedMethodID
	}
}

func (m BankAccount) saveRequest(alias string) (models.CreateSavedPaymentMethodRequest, bool) {
	if m.FromSaved {
		return models.CreateSavedPaymentMethodRequest{}, false
	}
	return models.CreateSavedPaymentMethodRequest{
		PaymentMethodType: models.MethodTypeBankAccount,
		Alias:             alias,
		BankCode:          m.BankCode,
		AccountNumber:     m.AccountNumber,
		AccountPassword:   m.Password,
	}, true
}

// BankTransfer is a manual deposit the buyer makes out of band. Approval is
// only allowed once the buyer has confirmed the deposit happened.
type BankTransfer struct {
	DepositConfirmed bool
}

func (BankTransfer) Name() string { return models.PaymentMethodBankTransfer }

func (m BankTransfer) Validate(time.Time) error {
	if !m.DepositConfirmed {
		return ErrDepositNotConfirmed
	}
	return nil
}

func (BankTransfer) apply(*models.PGPaymentRequest) {}

func (BankTransfer) saveRequest(string) (models.CreateSavedPaymentMethodRequest, bool) {
	return models.CreateSavedPaymentMethodRequest{}, false
}
