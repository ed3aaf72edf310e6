package staking

import (
	"sync"

	"github.com/shopspring/decimal"
)

// ExposureTracker serializes bet-acceptance within one bankroll scope. It
// keeps a per-week ledger of accepted stake and grants at most the remaining
// allowance for the requested week, so the cumulative weekly cap holds no
// matter how many candidates race through it or in what week order they
// arrive.
type ExposureTracker struct {
	mu       sync.Mutex
	reserved map[int]decimal.Decimal
}

// NewExposureTracker creates an empty tracker.
func NewExposureTracker() *ExposureTracker {
	return &ExposureTracker{reserved: make(map[int]decimal.Decimal)}
}

// Reserve attempts to commit stake against the weekly cap using
// compare-and-cap-then-commit semantics: the granted amount is the requested
// stake clamped to the remaining allowance for that week, possibly zero.
func (t *ExposureTracker) Reserve(week int, stake, weeklyCap decimal.Decimal) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := weeklyCap.Sub(t.reserved[week])
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	granted := stake
	if granted.GreaterThan(remaining) {
		granted = remaining
	}
	t.reserved[week] = t.reserved[week].Add(granted)
	return granted
}

// Reserved returns the stake committed so far in the given week.
func (t *ExposureTracker) Reserved(week int) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reserved[week]
}

// Release returns previously committed stake to the week's allowance, used
// when a sized bet is ultimately not placed.
func (t *ExposureTracker) Release(week int, stake decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.reserved[week].Sub(stake)
	if r.LessThan(decimal.Zero) {
		r = decimal.Zero
	}
	t.reserved[week] = r
}
