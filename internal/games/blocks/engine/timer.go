package engine

import "time"

// DefaultTickPeriod is the fall interval used when none is configured.
const DefaultTickPeriod = 100 * time.Millisecond

// FallTimer accumulates elapsed time and fires at a fixed period.
type FallTimer struct {
	period  time.Duration
	elapsed time.Duration
}

// NewFallTimer creates a timer. Non-positive periods use DefaultTickPeriod.
func NewFallTimer(period time.Duration) *FallTimer {
	t := &FallTimer{}
	t.SetPeriod(period)
	return t
}

// Advance adds dt and returns how many periods completed.
// The remainder carries over to the next call.
func (t *FallTimer) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	t.elapsed += dt
	fired := int(t.elapsed / t.period)
	t.elapsed %= t.period
	return fired
}

// Reset discards accumulated time.
func (t *FallTimer) Reset() {
	t.elapsed = 0
}

// Period returns the firing interval.
func (t *FallTimer) Period() time.Duration {
	return t.period
}

// SetPeriod changes the firing interval, keeping accumulated time.
func (t *FallTimer) SetPeriod(period time.Duration) {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	t.period = period
}
