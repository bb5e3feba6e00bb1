package refund

import (
	"time"

	"raillo/internal/models"
)

// Fee tier boundaries, measured from scheduled departure. Each tier is
// inclusive of its upper bound.
const (
	tierOneLimit = 20 * time.Minute
	tierTwoLimit = 60 * time.Minute
)

// PolicyAt resolves the fee tier for a refund requested at the given time.
// The second return is false once the train has arrived; arrived tickets are
// not refundable.
func PolicyAt(departure, arrival, at time.Time) (models.RefundPolicy, bool) {
	policy := models.RefundPolicy{
		TimeUntilDeparture: int64(departure.Sub(at) / time.Minute),
	}

	if !at.After(departure) {
		policy.FeePercentage = 0
		policy.Description = "출발 전 취소"
		return policy, true
	}
	if !arrival.IsZero() && !at.Before(arrival) {
		policy.FeePercentage = 100
		policy.Description = "도착 후 환불 불가"
		return policy, false
	}

	elapsed := at.Sub(departure)
	switch {
	case elapsed <= tierOneLimit:
		policy.FeePercentage = 30
		policy.Description = "출발 후 20분 이내"
	case elapsed <= tierTwoLimit:
		policy.FeePercentage = 40
		policy.Description = "출발 후 20분~60분"
	default:
		policy.FeePercentage = 70
		policy.Description = "출발 후 60분 경과"
	}
	return policy, true
}

// Fee splits an amount into the retained fee and the refundable remainder
// using integer percentage math. The fee rounds down, so the refund never
// loses a won to rounding.
func Fee(amount int64, feePercentage int) (fee, refundAmount int64) {
	fee = amount * int64(feePercentage) / 100
	return fee, amount - fee
}
