// Package payment runs the two-phase checkout protocol: a server-priced
// calculation first, then a PG request/approval pair bound to that
// calculation. The phase order is carried in the types; approval cannot be
// built without the calculation it settles.
package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"raillo/internal/metrics"
	"raillo/internal/models"
	"raillo/internal/repositories"
	"raillo/internal/services/identity"
	"raillo/internal/services/mileage"
	"raillo/internal/upstream"
	"raillo/internal/validation"
)

// nonMemberPasswordWidth is the fixed width of the guest password field on
// the approval wire. Longer passwords truncate; shorter ones pad with zeros.
const nonMemberPasswordWidth = 5

// Agreements carries the consents the buyer must affirm before any payment
// is submitted.
type Agreements struct {
	TermsOfService bool `json:"termsOfService"`
	PersonalData   bool `json:"personalData"`
}

// Complete reports whether every required consent was affirmed.
func (a Agreements) Complete() bool {
	return a.TermsOfService && a.PersonalData
}

// ApproveOptions are the per-attempt inputs beyond the method itself.
type ApproveOptions struct {
	// Agreements must be complete or the attempt is rejected before any
	// backend call.
	Agreements Agreements

	// SaveMethod registers the instrument after a successful payment.
	// Members only; failure to save never fails the payment.
	SaveMethod  bool
	MethodAlias string

	CashReceipt *models.CashReceiptInfo
	BuyerEmail  string

	// Redirect targets for wallet payments.
	ReturnURL string
	CancelURL string
}

// Outcome is the result of an approval attempt. Wallet methods that need a
// browser redirect return RedirectURL with no record; everything else
// settles into Record.
type Outcome struct {
	RedirectURL string
	Record      *models.PaymentRecord
}

// Service is the checkout payment protocol.
type Service interface {
	// Calculate prices the draft with the requested mileage and returns
	// the server-issued quote. The requested mileage is clamped into the
	// usable range, never rejected.
	Calculate(ctx context.Context, draft *models.ReservationDraft, mileageToUse int64) (*models.PaymentCalculation, error)

	// Approve settles the quoted calculation with the given method. One
	// approval per order runs at a time; a duplicate submit while the
	// first is in flight fails with ErrPaymentInFlight.
	Approve(ctx context.Context, sessionID string, calc *models.PaymentCalculation, method Method, opts ApproveOptions) (*Outcome, error)

	// VerifyBankAccount runs the pre-payment ownership check for a typed
	// bank account.
	VerifyBankAccount(ctx context.Context, req models.BankAccountVerificationRequest) (*models.BankAccountVerificationResponse, error)
}

type service struct {
	client   upstream.Client
	provider identity.Provider
	mileage  mileage.Service
	cache    repositories.CheckoutCache
	metrics  metrics.Collector
	inflight inflightGuard
	now      func() time.Time
}

// NewService creates a payment service.
func NewService(client upstream.Client, provider identity.Provider, mileageSvc mileage.Service, cache repositories.CheckoutCache, collector metrics.Collector) Service {
	if client == nil {
		panic("upstream client is required")
	}
	if provider == nil {
		panic("identity provider is required")
	}
	if mileageSvc == nil {
		panic("mileage service is required")
	}
	if cache == nil {
		panic("checkout cache is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &service{
		client:   client,
		provider: provider,
		mileage:  mileageSvc,
		cache:    cache,
		metrics:  collector,
		now:      time.Now,
	}
}

func (s *service) Calculate(ctx context.Context, draft *models.ReservationDraft, mileageToUse int64) (*models.PaymentCalculation, error) {
	if draft == nil {
		return nil, ErrDraftRequired
	}
	original := draft.TotalFare()
	if original <= 0 {
		return nil, ErrEmptyOrder
	}

	id := s.provider.CurrentIdentity(ctx)
	balance := s.mileage.BalanceForOrder(ctx, original)
	mileageToUse = mileage.ClampRequested(mileageToUse, balance.UsableCap)

	req := models.PaymentCalculationRequest{
		ReservationID:      draft.ReservationID,
		ExternalOrderID:    "ORD-" + uuid.NewString(),
		UserID:             id.SubjectID(),
		OriginalAmount:     original,
		MileageToUse:       mileageToUse,
		AvailableMileage:   balance.Balance,
		TrainScheduleID:    draft.TrainScheduleID,
		TrainDepartureTime: draft.DepartureTime.Format(time.RFC3339),
		TrainArrivalTime:   draft.ArrivalTime.Format(time.RFC3339),
		RouteInfo:          draft.RouteInfo(),
	}
	if len(draft.Seats) > 0 {
		req.SeatNumber = draft.Seats[0].SeatNumber
		for _, seat := range draft.Seats {
			req.Items = append(req.Items, models.PaymentItem{
				ProductID: fmt.Sprintf("seat-%d", seat.SeatReservationID),
				Quantity:  1,
				UnitPrice: seat.Fare,
			})
		}
	}
	if mileageToUse > 0 {
		req.RequestedPromotions = []models.PromotionRequest{{
			Type:        "MILEAGE",
			PointsToUse: mileageToUse,
		}}
	}

	calc, err := s.client.CalculatePayment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("calculate payment: %w", err)
	}

	buyerType := "guest"
	if id.IsMember() {
		buyerType = "member"
	}
	s.metrics.PaymentCalculated(buyerType)
	return calc, nil
}

func (s *service) Approve(ctx context.Context, sessionID string, calc *models.PaymentCalculation, method Method, opts ApproveOptions) (*Outcome, error) {
	if calc == nil || calc.ID == "" {
		return nil, ErrQuoteRequired
	}
	if method == nil {
		return nil, ErrMethodRequired
	}
	if !opts.Agreements.Complete() {
		return nil, ErrAgreementsRequired
	}
	if calc.Expired(s.now()) {
		return nil, ErrQuoteExpired
	}
	if err := method.Validate(s.now()); err != nil {
		return nil, err
	}
	if opts.CashReceipt != nil {
		if err := validation.CashReceipt(opts.CashReceipt.Type, opts.CashReceipt.Identifier); err != nil {
			return nil, fmt.Errorf("cash receipt: %w", err)
		}
	}

	if !s.inflight.begin(calc.ExternalOrderID) {
		return nil, ErrPaymentInFlight
	}
	defer s.inflight.end(calc.ExternalOrderID)

	id := s.provider.CurrentIdentity(ctx)
	var guest *models.GuestIdentity
	if !id.IsMember() {
		g, err := s.cache.GuestIdentity(ctx, sessionID)
		if err != nil {
			return nil, ErrGuestIdentityRequired
		}
		if err := validation.GuestIdentity(g.Name, g.Phone, g.Password); err != nil {
			return nil, fmt.Errorf("guest identity: %w", err)
		}
		guest = g
	}

	pgReq := models.PGPaymentRequest{
		CalculationID: calc.ID,
		PaymentMethod: method.Name(),
		ReturnURL:     opts.ReturnURL,
		CancelURL:     opts.CancelURL,
		BuyerEmail:    opts.BuyerEmail,
	}
	if guest != nil {
		pgReq.BuyerName = guest.Name
		pgReq.BuyerPhone = guest.Phone
	}
	method.apply(&pgReq)

	pgResp, err := s.client.RequestPGPayment(ctx, pgReq)
	if err != nil {
		s.metrics.PaymentFailed(method.Name(), "pg_request")
		return nil, fmt.Errorf("request pg payment: %w", err)
	}

	// Wallet methods hand control to the provider's page here; approval
	// resumes when the user returns.
	if pgResp.PaymentURL != "" && pgResp.PGTransactionID == "" {
		return &Outcome{RedirectURL: pgResp.PaymentURL}, nil
	}

	approval := models.PGPaymentApprovalRequest{
		PaymentMethod:   method.Name(),
		PGTransactionID: pgResp.PGTransactionID,
		MerchantOrderID: pgResp.MerchantOrderID,
		CalculationID:   calc.ID,
		ApprovedAmount:  calc.FinalPayableAmount,
		BuyerEmail:      opts.BuyerEmail,
		CashReceiptInfo: opts.CashReceipt,
	}
	if guest != nil {
		approval.NonMemberName = guest.Name
		approval.NonMemberPhone = guest.Phone
		approval.NonMemberPassword = WirePassword(guest.Password)
		approval.BuyerName = guest.Name
		approval.BuyerPhone = guest.Phone
	} else {
		approval.MemberID = id.SubjectID()
	}

	record, err := s.client.ApprovePGPayment(ctx, approval)
	if err != nil {
		s.metrics.PaymentFailed(method.Name(), "approval")
		// A rejected session is not a rejected payment; keep the status
		// visible so the caller can demand re-login.
		if upstream.IsUnauthorized(err) {
			return nil, fmt.Errorf("approve pg payment: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrApprovalRejected, upstream.MessageOf(err, "payment approval failed"))
	}
	if record.Status == models.PaymentStatusFailed {
		s.metrics.PaymentFailed(method.Name(), "settlement")
		return nil, ErrApprovalRejected
	}

	s.metrics.PaymentApproved(method.Name(), record.Amount)
	s.saveMethodAfterApproval(ctx, id, method, opts)
	if err := s.cache.Clear(ctx, sessionID); err != nil {
		log.Printf("checkout cache clear failed for session %s: %v", sessionID, err)
	}
	return &Outcome{Record: record}, nil
}

// saveMethodAfterApproval registers the instrument when the member opted in.
// The payment already succeeded; a save failure is logged and swallowed.
func (s *service) saveMethodAfterApproval(ctx context.Context, id models.Identity, method Method, opts ApproveOptions) {
	if !opts.SaveMethod || !id.IsMember() {
		return
	}
	req, ok := method.saveRequest(opts.MethodAlias)
	if !ok {
		return
	}
	if _, err := s.client.CreateSavedPaymentMethod(ctx, req); err != nil {
		log.Printf("saving payment method after approval failed: %v", err)
	}
}

func (s *service) VerifyBankAccount(ctx context.Context, req models.BankAccountVerificationRequest) (*models.BankAccountVerificationResponse, error) {
	if err := validation.BankAccount(req.BankCode, req.AccountNumber); err != nil {
		return nil, err
	}
	resp, err := s.client.VerifyBankAccount(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("verify bank account: %w", err)
	}
	return resp, nil
}

// WirePassword fits the guest password into the fixed-width wire field used
// by approval and by the guest payment lookup. Both sides must apply the
// same truncation or the lookup will never match the record.
func WirePassword(password string) string {
	if len(password) > nonMemberPasswordWidth {
		return password[:nonMemberPasswordWidth]
	}
	for len(password) < nonMemberPasswordWidth {
		password += "0"
	}
	return password
}
