package payment

import (
	"sync"
	"time"
)

// PreviewAmount is the optimistic payable amount shown while the member
// adjusts the mileage field, before the authoritative calculation returns.
// Never negative.
func PreviewAmount(originalAmount, mileageToUse int64) int64 {
	amount := originalAmount - mileageToUse
	if amount < 0 {
		return 0
	}
	return amount
}

// Debouncer coalesces bursts of recalculation triggers into one trailing
// call. Keystroke-driven mileage edits go through Trigger; deliberate events
// like blur or method change go through Now, which cancels anything pending
// and fires immediately.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A zero delay defaults to 300ms.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay == 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Now cancels any pending call and runs fn synchronously.
func (d *Debouncer) Now(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	fn()
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
