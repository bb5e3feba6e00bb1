package payment

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviewAmount(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		mileage  int64
		want     int64
	}{
		{"partial mileage", 48200, 3000, 45200},
		{"no mileage", 48200, 0, 48200},
		{"mileage covers everything", 48200, 48200, 0},
		{"mileage above original floors at zero", 48200, 99999, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviewAmount(tt.original, tt.mileage))
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		500*time.Millisecond, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_NowBypassesDelay(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var pending, immediate atomic.Int32
	d.Trigger(func() { pending.Add(1) })
	d.Now(func() { immediate.Add(1) })

	assert.Equal(t, int32(1), immediate.Load())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, pending.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
