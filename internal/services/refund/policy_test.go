package refund

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicyAt(t *testing.T) {
	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	arrival := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		at             time.Time
		wantPct        int
		wantRefundable bool
	}{
		{
			name:           "three hours before departure",
			at:             departure.Add(-3 * time.Hour),
			wantPct:        0,
			wantRefundable: true,
		},
		{
			name:           "one minute before departure",
			at:             departure.Add(-time.Minute),
			wantPct:        0,
			wantRefundable: true,
		},
		{
			name:           "exactly at departure",
			at:             departure,
			wantPct:        0,
			wantRefundable: true,
		},
		{
			name:           "one minute after departure",
			at:             departure.Add(time.Minute),
			wantPct:        30,
			wantRefundable: true,
		},
		{
			name:           "exactly twenty minutes after departure",
			at:             departure.Add(20 * time.Minute),
			wantPct:        30,
			wantRefundable: true,
		},
		{
			name:           "twenty-five minutes after departure",
			at:             departure.Add(25 * time.Minute),
			wantPct:        40,
			wantRefundable: true,
		},
		{
			name:           "exactly sixty minutes after departure",
			at:             departure.Add(60 * time.Minute),
			wantPct:        40,
			wantRefundable: true,
		},
		{
			name:           "ninety minutes after departure",
			at:             departure.Add(90 * time.Minute),
			wantPct:        70,
			wantRefundable: true,
		},
		{
			name:           "exactly at arrival",
			at:             arrival,
			wantPct:        100,
			wantRefundable: false,
		},
		{
			name:           "after arrival",
			at:             arrival.Add(time.Hour),
			wantPct:        100,
			wantRefundable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, refundable := PolicyAt(departure, arrival, tt.at)
			assert.Equal(t, tt.wantPct, policy.FeePercentage)
			assert.Equal(t, tt.wantRefundable, refundable)
		})
	}
}

func TestPolicyAt_TimeUntilDeparture(t *testing.T) {
	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	policy, _ := PolicyAt(departure, departure.Add(2*time.Hour), departure.Add(-45*time.Minute))
	assert.Equal(t, int64(45), policy.TimeUntilDeparture)

	policy, _ = PolicyAt(departure, departure.Add(2*time.Hour), departure.Add(25*time.Minute))
	assert.Equal(t, int64(-25), policy.TimeUntilDeparture)
}

func TestFee(t *testing.T) {
	t.Run("forty percent tier splits fifty thousand", func(t *testing.T) {
		fee, refundAmount := Fee(50000, 40)
		assert.Equal(t, int64(20000), fee)
		assert.Equal(t, int64(30000), refundAmount)
	})

	t.Run("zero fee refunds everything", func(t *testing.T) {
		fee, refundAmount := Fee(48200, 0)
		assert.Equal(t, int64(0), fee)
		assert.Equal(t, int64(48200), refundAmount)
	})

	t.Run("fee rounds down", func(t *testing.T) {
		fee, refundAmount := Fee(33333, 30)
		assert.Equal(t, int64(9999), fee)
		assert.Equal(t, int64(23334), refundAmount)
		assert.Equal(t, int64(33333), fee+refundAmount)
	})
}

func TestFee_SumsToOriginal(t *testing.T) {
	for _, amount := range []int64{1, 999, 48200, 50000, 123457} {
		for _, pct := range []int{0, 30, 40, 70} {
			fee, refundAmount := Fee(amount, pct)
			assert.Equal(t, amount, fee+refundAmount)
			assert.GreaterOrEqual(t, fee, int64(0))
			assert.GreaterOrEqual(t, refundAmount, int64(0))
		}
	}
}
