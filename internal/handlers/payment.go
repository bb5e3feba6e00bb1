package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"raillo/internal/middleware"
	"raillo/internal/models"
	"raillo/internal/repositories"
	"raillo/internal/services/payment"
	"raillo/internal/services/reconcile"
	"raillo/internal/upstream"
	"raillo/internal/utils/response"
)

// PaymentHandler drives the two-phase checkout protocol over HTTP.
type PaymentHandler struct {
	payments   payment.Service
	reconciler reconcile.Service
	cache      repositories.CheckoutCache
}

func NewPaymentHandler(payments payment.Service, reconciler reconcile.Service, cache repositories.CheckoutCache) *PaymentHandler {
	if payments == nil {
		panic("payment service is required")
	}
	if reconciler == nil {
		panic("reconcile service is required")
	}
	if cache == nil {
		panic("checkout cache is required")
	}
	return &PaymentHandler{payments: payments, reconciler: reconciler, cache: cache}
}

type calculateRequest struct {
	MileageToUse int64 `json:"mileageToUse"`
}

// Calculate prices the session's reservation draft with the requested
// mileage and returns the server-issued quote.
func (h *PaymentHandler) Calculate(c *fiber.Ctx) error {
	var req calculateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid calculation request")
	}

	draft, err := h.cache.Draft(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "no reservation in progress")
		}
		return response.InternalError(c, "failed to load reservation draft")
	}

	calc, err := h.payments.Calculate(c.UserContext(), draft, req.MileageToUse)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrDraftRequired), errors.Is(err, payment.ErrEmptyOrder):
			return response.BadRequest(c, err.Error())
		case upstream.IsUnauthorized(err):
			return response.Unauthorized(c, "session expired")
		default:
			return response.BadGateway(c, upstream.MessageOf(err, "payment calculation failed"))
		}
	}
	return response.Success(c, calc)
}

type previewRequest struct {
	OriginalAmount int64 `json:"originalAmount"`
	MileageToUse   int64 `json:"mileageToUse"`
}

// Preview returns the optimistic payable amount shown while the member is
// still editing the mileage field.
func (h *PaymentHandler) Preview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid preview request")
	}
	return response.Success(c, fiber.Map{
		"estimatedAmount": payment.PreviewAmount(req.OriginalAmount, req.MileageToUse),
	})
}

type approveRequest struct {
	Calculation   *models.PaymentCalculation `json:"calculation"`
	PaymentMethod string                     `json:"paymentMethod"`

	CardNumber        string `json:"cardNumber"`
	CardExpiryMonth   string `json:"cardExpiryMonth"`
	CardExpiryYear    string `json:"cardExpiryYear"`
	CardCVC           string `json:"cardCvc"`
	CardHolderName    string `json:"cardHolderName"`
	CardPassword      string `json:"cardPassword"`
	InstallmentMonths int    `json:"installmentMonths"`

	BankCode            string `json:"bankCode"`
	AccountNumber       string `json:"accountNumber"`
	AccountPassword     string `json:"accountPassword"`
	BankAccountVerified bool   `json:"bankAccountVerified"`

	SimplePaymentPhone string `json:"simplePaymentPhone"`

	DepositConfirmed bool `json:"depositConfirmed"`

	SavedPaymentMethodID int64 `json:"savedPaymentMethodId"`

	Agreements payment.Agreements `json:"agreements"`

	SaveMethod  bool                    `json:"savePaymentMethod"`
	MethodAlias string                  `json:"paymentMethodAlias"`
	CashReceipt *models.CashReceiptInfo `json:"cashReceiptInfo"`
	BuyerEmail  string                  `json:"buyerEmail"`
	ReturnURL   string                  `json:"returnUrl"`
	CancelURL   string                  `json:"cancelUrl"`
}

func (r *approveRequest) method() (payment.Method, error) {
	switch r.PaymentMethod {
	case models.PaymentMethodKakaoPay, models.PaymentMethodNaverPay, models.PaymentMethodPayco:
		return payment.SimplePay{Provider: r.PaymentMethod, Phone: r.SimplePaymentPhone}, nil
	case models.PaymentMethodCreditCard:
		return payment.CreditCard{
			Number:            r.CardNumber,
			ExpiryMonth:       r.CardExpiryMonth,
			ExpiryYear:        r.CardExpiryYear,
			CVC:               r.CardCVC,
			HolderName:        r.CardHolderName,
			Password:          r.CardPassword,
			InstallmentMonths: r.InstallmentMonths,
			FromSaved:         r.SavedPaymentMethodID > 0,
			SavedMethodID:     r.SavedPaymentMethodID,
		}, nil
	case models.PaymentMethodBankTransfer:
		return payment.BankTransfer{DepositConfirmed: r.DepositConfirmed}, nil
	case models.PaymentMethodBankAccount:
		return payment.BankAccount{
			BankCode:      r.BankCode,
			AccountNumber: r.AccountNumber,
			Password:      r.AccountPassword,
			Verified:      r.BankAccountVerified || r.SavedPaymentMethodID > 0,
			FromSaved:     r.SavedPaymentMethodID > 0,
			SavedMethodID: r.SavedPaymentMethodID,
		}, nil
	default:
		return nil, errors.New("unsupported payment method")
	}
}

// Approve settles the quoted calculation.
func (h *PaymentHandler) Approve(c *fiber.Ctx) error {
	var req approveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid approval request")
	}
	method, err := req.method()
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	outcome, err := h.payments.Approve(c.UserContext(), middleware.SessionID(c), req.Calculation, method, payment.ApproveOptions{
		Agreements:  req.Agreements,
		SaveMethod:  req.SaveMethod,
		MethodAlias: req.MethodAlias,
		CashReceipt: req.CashReceipt,
		BuyerEmail:  req.BuyerEmail,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrQuoteRequired),
			errors.Is(err, payment.ErrMethodRequired),
			errors.Is(err, payment.ErrAgreementsRequired),
			errors.Is(err, payment.ErrDepositNotConfirmed),
			errors.Is(err, payment.ErrGuestIdentityRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, payment.ErrQuoteExpired):
			return response.Conflict(c, err.Error())
		case errors.Is(err, payment.ErrPaymentInFlight):
			return response.Conflict(c, err.Error())
		case errors.Is(err, payment.ErrBankAccountNotVerified):
			return response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, payment.ErrApprovalRejected):
			return response.UnprocessableEntity(c, err.Error())
		case upstream.IsUnauthorized(err):
			return response.Unauthorized(c, "session expired")
		default:
			var ue *upstream.Error
			if errors.As(err, &ue) {
				return response.BadGateway(c, upstream.MessageOf(err, "payment processing failed"))
			}
			return response.BadRequest(c, err.Error())
		}
	}

	if outcome.RedirectURL != "" {
		return response.Success(c, fiber.Map{"paymentUrl": outcome.RedirectURL})
	}
	return response.Success(c, outcome.Record)
}

// VerifyBankAccount runs the pre-payment account ownership check.
func (h *PaymentHandler) VerifyBankAccount(c *fiber.Ctx) error {
	var req models.BankAccountVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid verification request")
	}
	resp, err := h.payments.VerifyBankAccount(c.UserContext(), req)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, resp)
}

// Reconcile polls for the payment record behind a just-approved
// reservation.
func (h *PaymentHandler) Reconcile(c *fiber.Ctx) error {
	reservationID, err := c.ParamsInt("reservationId")
	if err != nil || reservationID <= 0 {
		return response.BadRequest(c, "invalid reservation id")
	}

	item, err := h.reconciler.Resolve(c.UserContext(), middleware.SessionID(c), int64(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, reconcile.ErrGuestIdentityRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, reconcile.ErrPaymentNotConfirmed):
			return response.NotFound(c, err.Error())
		default:
			return response.InternalError(c, "payment reconciliation failed")
		}
	}
	return response.Success(c, item)
}
