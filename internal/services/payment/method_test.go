package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"raillo/internal/models"
	"raillo/internal/validation"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestSimplePay_Validate(t *testing.T) {
	assert.NoError(t, SimplePay{Provider: models.PaymentMethodKakaoPay}.Validate(testNow))
	assert.NoError(t, SimplePay{Provider: models.PaymentMethodNaverPay, Phone: "01012345678"}.Validate(testNow))
	assert.Error(t, SimplePay{Provider: "CRYPTO"}.Validate(testNow))
	assert.ErrorIs(t, SimplePay{Provider: models.PaymentMethodPayco, Phone: "123"}.Validate(testNow), validation.ErrInvalidPhone)
}

func TestCreditCard_Validate(t *testing.T) {
	valid := CreditCard{
		Number:      "1111-2222-3333-4444",
		ExpiryMonth: "12",
		ExpiryYear:  "28",
		CVC:         "123",
		HolderName:  "KIM",
		Password:    "1234",
	}

	t.Run("valid card passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate(testNow))
	})

	t.Run("short number fails", func(t *testing.T) {
		card := valid
		card.Number = "1111"
		assert.ErrorIs(t, card.Validate(testNow), validation.ErrInvalidCardNumber)
	})

	t.Run("expired card fails", func(t *testing.T) {
		card := valid
		card.ExpiryYear = "24"
		assert.ErrorIs(t, card.Validate(testNow), validation.ErrCardExpired)
	})

	t.Run("saved card skips credential checks", func(t *testing.T) {
		card := CreditCard{FromSaved: true, SavedMethodID: 9}
		assert.NoError(t, card.Validate(testNow))
	})

	t.Run("saved card without id fails", func(t *testing.T) {
		card := CreditCard{FromSaved: true}
		assert.Error(t, card.Validate(testNow))
	})
}

func TestCreditCard_Apply_SavedPlaceholders(t *testing.T) {
	card := CreditCard{FromSaved: true, SavedMethodID: 9, Number: "1111222233334444"}

	var req models.PGPaymentRequest
	card.apply(&req)

	assert.Equal(t, placeholderCVC, req.CardCVC)
	assert.Equal(t, placeholderCardPassword, req.CardPassword)
	assert.Equal(t, int64(9), req.SavedPaymentMethodID)
}

func TestCreditCard_Apply_TypedCredentialsKept(t *testing.T) {
	card := CreditCard{Number: "1111 2222 3333 4444", CVC: "987", Password: "5678"}

	var req models.PGPaymentRequest
	card.apply(&req)

	assert.Equal(t, "1111222233334444", req.CardNumber)
	assert.Equal(t, "987", req.CardCVC)
	assert.Equal(t, "5678", req.CardPassword)
	assert.Zero(t, req.SavedPaymentMethodID)
}

func TestBankAccount_Validate(t *testing.T) {
	valid := BankAccount{
		BankCode:      "004",
		AccountNumber: "1234567890123",
		Password:      "9876",
		Verified:      true,
	}

	t.Run("verified account passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate(testNow))
	})

	t.Run("unverified account is blocked", func(t *testing.T) {
		acct := valid
		acct.Verified = false
		assert.ErrorIs(t, acct.Validate(testNow), ErrBankAccountNotVerified)
	})

	t.Run("short account number fails", func(t *testing.T) {
		acct := valid
		acct.AccountNumber = "12345"
		assert.ErrorIs(t, acct.Validate(testNow), validation.ErrInvalidAccount)
	})
}

func TestBankTransfer_Validate(t *testing.T) {
	assert.ErrorIs(t, BankTransfer{}.Validate(testNow), ErrDepositNotConfirmed)
	assert.NoError(t, BankTransfer{DepositConfirmed: true}.Validate(testNow))
}

func TestSaveRequest(t *testing.T) {
	t.Run("typed card builds a save request", func(t *testing.T) {
		card := CreditCard{Number: "1111-2222-3333-4444", HolderName: "KIM", ExpiryMonth: "12", ExpiryYear: "28", CVC: "123"}
		req, ok := card.saveRequest("my card")
		assert.True(t, ok)
		assert.Equal(t, models.MethodTypeCreditCard, req.PaymentMethodType)
		assert.Equal(t, "1111222233334444", req.CardNumber)
		assert.Equal(t, "my card", req.Alias)
	})

	t.Run("saved instruments are not re-saved", func(t *testing.T) {
		_, ok := CreditCard{FromSaved: true, SavedMethodID: 9}.saveRequest("x")
		assert.False(t, ok)
	})

	t.Run("wallets cannot be saved", func(t *testing.T) {
		_, ok := SimplePay{Provider: models.PaymentMethodKakaoPay}.saveRequest("x")
		assert.False(t, ok)
	})
}
