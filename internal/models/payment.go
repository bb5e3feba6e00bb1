package models

import "time"

// Payment method identifiers on the wire.
const (
	PaymentMethodKakaoPay     = "KAKAO_PAY"
	PaymentMethodNaverPay     = "NAVER_PAY"
	PaymentMethodPayco        = "PAYCO"
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodBankAccount  = "BANK_ACCOUNT"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
)

// Payment record statuses. PENDING settles asynchronously into SUCCESS or
// FAILED; the transition is server-side only.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// PaymentItem is one priced line of a calculation request.
type PaymentItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// PromotionRequest names a discount the buyer asked for. Mileage travels as
// a promotion input; the discount math itself is server-side.
type PromotionRequest struct {
	Type        string `json:"type"`
	Identifier  string `json:"identifier,omitempty"`
	PointsToUse int64  `json:"pointsToUse,omitempty"`
}

// PaymentCalculationRequest is the phase-1 body. The reservation id may be
// zero when the reservation was already removed; the denormalized train and
// route fields then carry enough context for the backend to price the order.
type PaymentCalculationRequest struct {
	ReservationID       int64              `json:"reservationId,omitempty"`
	ExternalOrderID     string             `json:"externalOrderId"`
	UserID              string             `json:"userId"`
	OriginalAmount      int64              `json:"originalAmount"`
	Items               []PaymentItem      `json:"items,omitempty"`
	RequestedPromotions []PromotionRequest `json:"requestedPromotions,omitempty"`
	MileageToUse        int64              `json:"mileageToUse,omitempty"`
	AvailableMileage    int64              `json:"availableMileage,omitempty"`
	TrainScheduleID     int64              `json:"trainScheduleId,omitempty"`
	TrainDepartureTime  string             `json:"trainDepartureTime,omitempty"`
	TrainArrivalTime    string             `json:"trainArrivalTime,omitempty"`
	RouteInfo           string             `json:"routeInfo,omitempty"`
	SeatNumber          string             `json:"seatNumber,omitempty"`
}

// AppliedPromotion echoes a discount the backend accepted.
type AppliedPromotion struct {
	Type           string `json:"type"`
	Name           string `json:"name"`
	DiscountAmount int64  `json:"discountAmount"`
	Details        string `json:"details"`
}

// PaymentCalculation is the server-issued quote binding a final payable
// amount to one approval attempt. It expires unused; approval after expiry
// requires a fresh calculation.
type PaymentCalculation struct {
	ID                 string             `json:"id"`
	ExternalOrderID    string             `json:"externalOrderId"`
	OriginalAmount     int64              `json:"originalAmount"`
	DiscountAmount     int64              `json:"discountAmount"`
	MileageUsed        int64              `json:"mileageUsed"`
	FinalPayableAmount int64              `json:"finalPayableAmount"`
	AppliedPromotions  []AppliedPromotion `json:"appliedPromotions"`
	ExpiresAt          time.Time          `json:"expiresAt"`
}

// Expired reports whether the quote can no longer be approved.
func (c *PaymentCalculation) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// CardInfo is the raw card credential block of a PG request.
type CardInfo struct {
	CardNumber        string `json:"cardNumber,omitempty"`
	CardExpiryMonth   string `json:"cardExpiryMonth,omitempty"`
	CardExpiryYear    string `json:"cardExpiryYear,omitempty"`
	CardCVC           string `json:"cardCvc,omitempty"`
	CardHolderName    string `json:"cardHolderName,omitempty"`
	CardPassword      string `json:"cardPassword,omitempty"`
	InstallmentMonths int    `json:"installmentMonths,omitempty"`
}

// Cash receipt types.
const (
	CashReceiptPersonal = "PERSONAL"
	CashReceiptBusiness = "BUSINESS"
)

// CashReceiptInfo is the optional cash-receipt request block: personal
// receipts carry a phone number, business receipts a registration number.
type CashReceiptInfo struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// PGPaymentRequest asks the backend to open a PG transaction for the quoted
// calculation. Redirect-based methods get a payment URL back; card and bank
// methods get a transaction id for the immediate approval call.
type PGPaymentRequest struct {
	CalculationID string `json:"calculationId"`
	PaymentMethod string `json:"paymentMethod"`
	ReturnURL     string `json:"returnUrl,omitempty"`
	CancelURL     string `json:"cancelUrl,omitempty"`

	CardNumber        string `json:"cardNumber,omitempty"`
	CardExpiryMonth   string `json:"cardExpiryMonth,omitempty"`
	CardExpiryYear    string `json:"cardExpiryYear,omitempty"`
	CardCVC           string `json:"cardCvc,omitempty"`
	CardHolderName    string `json:"cardHolderName,omitempty"`
	CardPassword      string `json:"cardPassword,omitempty"`
	InstallmentMonths int    `json:"installmentMonths,omitempty"`

	BankCode        string `json:"bankCode,omitempty"`
	AccountNumber   string `json:"accountNumber,omitempty"`
	AccountPassword string `json:"accountPassword,omitempty"`

	SimplePaymentProvider string `json:"simplePaymentProvider,omitempty"`
	SimplePaymentPhone    string `json:"simplePaymentPhone,omitempty"`

	SavedPaymentMethodID int64  `json:"savedPaymentMethodId,omitempty"`
	BuyerName            string `json:"buyerName,omitempty"`
	BuyerEmail           string `json:"buyerEmail,omitempty"`
	BuyerPhone           string `json:"buyerPhone,omitempty"`
}

// PGPaymentResponse is the opened PG transaction.
type PGPaymentResponse struct {
	PaymentURL      string `json:"paymentUrl,omitempty"`
	PGTransactionID string `json:"pgTransactionId,omitempty"`
	MerchantOrderID string `json:"merchantOrderId,omitempty"`
	Status          string `json:"status,omitempty"`
}

// PGPaymentApprovalRequest is the phase-2 body. Exactly one of the member id
// or the nonMember block is set, matching the buyer's identity.
type PGPaymentApprovalRequest struct {
	PaymentMethod     string           `json:"paymentMethod"`
	PGTransactionID   string           `json:"pgTransactionId"`
	MerchantOrderID   string           `json:"merchantOrderId"`
	CalculationID     string           `json:"calculationId"`
	MemberID          string           `json:"memberId,omitempty"`
	NonMemberName     string           `json:"nonMemberName,omitempty"`
	NonMemberPhone    string           `json:"nonMemberPhone,omitempty"`
	NonMemberPassword string           `json:"nonMemberPassword,omitempty"`
	BuyerName         string           `json:"buyerName,omitempty"`
	BuyerEmail        string           `json:"buyerEmail,omitempty"`
	BuyerPhone        string           `json:"buyerPhone,omitempty"`
	ApprovedAmount    int64            `json:"approvedAmount,omitempty"`
	CardInfo          *CardInfo        `json:"cardInfo,omitempty"`
	CashReceiptInfo   *CashReceiptInfo `json:"cashReceiptInfo,omitempty"`
}

// PGApprovalCardInfo describes the instrument the PG settled with.
type PGApprovalCardInfo struct {
	CardNumber string `json:"cardNumber"`
	CardType   string `json:"cardType"`
	IssuerName string `json:"issuerName"`
}

// PGResponse is the PG-side settlement detail attached to an approval.
type PGResponse struct {
	TransactionID  string              `json:"transactionId"`
	ApprovalNumber string              `json:"approvalNumber,omitempty"`
	CardInfo       *PGApprovalCardInfo `json:"cardInfo,omitempty"`
}

// PaymentRecord is the settled (or still pending) payment returned by the
// approval call.
type PaymentRecord struct {
	PaymentID  string      `json:"paymentId"`
	Status     string      `json:"status"`
	Amount     int64       `json:"amount"`
	PaidAt     time.Time   `json:"paidAt"`
	ReceiptURL string      `json:"receiptUrl,omitempty"`
	PGResponse *PGResponse `json:"pgResponse,omitempty"`
}

// PaymentHistoryItem is one row of payment history, also the shape the
// reconciliation lookup resolves to.
type PaymentHistoryItem struct {
	PaymentID                  int64     `json:"paymentId"`
	ReservationID              int64     `json:"reservationId"`
	ExternalOrderID            string    `json:"externalOrderId"`
	PaymentStatus              string    `json:"paymentStatus"`
	AmountPaid                 int64     `json:"amountPaid"`
	AmountOriginalTotal        int64     `json:"amountOriginalTotal"`
	TotalDiscountAmountApplied int64     `json:"totalDiscountAmountApplied"`
	MileagePointsUsed          int64     `json:"mileagePointsUsed"`
	MileageAmountDeducted      int64     `json:"mileageAmountDeducted"`
	MileageToEarn              int64     `json:"mileageToEarn"`
	PaymentMethod              string    `json:"paymentMethod"`
	PGProvider                 string    `json:"pgProvider,omitempty"`
	PGApprovalNo               string    `json:"pgApprovalNo,omitempty"`
	RefundStatus               string    `json:"refundStatus,omitempty"`
	PaidAt                     time.Time `json:"paidAt"`
	CreatedAt                  time.Time `json:"createdAt"`
	ReceiptURL                 string    `json:"receiptUrl,omitempty"`
}

// PaymentHistorySearchRequest filters the member history listing.
type PaymentHistorySearchRequest struct {
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	Sort          string `json:"sort,omitempty"`
}

// PaymentHistoryPage is one page of member payment history.
type PaymentHistoryPage struct {
	Content       []PaymentHistoryItem `json:"content"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
	Number        int                  `json:"number"`
	Size          int                  `json:"size"`
}

// GuestPaymentSearchRequest looks up a guest payment by the identity the
// guest chose at checkout.
type GuestPaymentSearchRequest struct {
	ReservationID int64  `json:"reservationId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Password      string `json:"password"`
}
