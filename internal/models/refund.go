package models

import "time"

// Refund types. Partial refunds were removed from the product; CANCEL
// refunds the whole ticket.
const (
	RefundTypeCancel = "CANCEL"
)

// Refund statuses surfaced on payment records.
const (
	RefundStatusProcessing = "PROCESSING"
	RefundStatusCompleted  = "COMPLETED"
	RefundStatusFailed     = "FAILED"
)

// RefundCalculationRequest asks for a time-tiered refund quote. The train
// times ride along for payments whose reservation metadata no longer carries
// them.
type RefundCalculationRequest struct {
	PaymentID          int64  `json:"paymentId"`
	RefundType         string `json:"refundType"`
	RefundReason       string `json:"refundReason"`
	TrainDepartureTime string `json:"trainDepartureTime,omitempty"`
	TrainArrivalTime   string `json:"trainArrivalTime,omitempty"`
}

// RefundPolicy describes the fee tier the quote fell into.
type RefundPolicy struct {
	TimeUntilDeparture int64  `json:"timeUntilDeparture"`
	FeePercentage      int    `json:"feePercentage"`
	Description        string `json:"description"`
}

// RefundQuote is the phase-1 result: a fee/refund breakdown bound to a
// refund calculation id, consumed exactly once by the confirm step. Mileage
// refunds are added back separately and are never fee-reduced.
type RefundQuote struct {
	RefundCalculationID int64        `json:"refundCalculationId"`
	PaymentID           int64        `json:"paymentId"`
	ReservationID       int64        `json:"reservationId"`
	OriginalAmount      int64        `json:"originalAmount"`
	RefundFeeRate       float64      `json:"refundFeeRate"`
	RefundFee           int64        `json:"refundFee"`
	RefundAmount        int64        `json:"refundAmount"`
	MileageRefundAmount int64        `json:"mileageRefundAmount"`
	TrainDepartureTime  time.Time    `json:"trainDepartureTime"`
	RefundRequestTime   time.Time    `json:"refundRequestTime"`
	RefundType          string       `json:"refundType"`
	Status              string       `json:"status"`
	IsRefundableByTime  bool         `json:"isRefundableByTime"`
	RefundPolicy        RefundPolicy `json:"refundPolicy"`
}

// RefundResult is the terminal refund record returned by the process call.
type RefundResult struct {
	RefundID          int64     `json:"refundId"`
	PaymentID         int64     `json:"paymentId"`
	RefundAmount      int64     `json:"refundAmount"`
	RefundStatus      string    `json:"refundStatus"`
	RefundCompletedAt time.Time `json:"refundCompletedAt"`
}
