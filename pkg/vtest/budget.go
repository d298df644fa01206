package vtest

import "time"

// Plenty is the time a UnitBudget reports while it has checks left.
const Plenty = time.Hour

// UnitBudget is a deadline that runs out after a fixed number of checks.
// The scheduler checks its deadline once per unit of work, so a budget of
// n lets one tick perform exactly n units.
type UnitBudget struct {
	n      int
	checks int
}

// NewUnitBudget returns a budget that expires on the nth check.
func NewUnitBudget(n int) *UnitBudget {
	return &UnitBudget{n: n}
}

// TimeRemaining reports Plenty until the budget is used up, then zero.
func (b *UnitBudget) TimeRemaining() time.Duration {
	b.checks++
	if b.checks >= b.n {
		return 0
	}
	return Plenty
}

// Checks returns how many times the budget was consulted.
func (b *UnitBudget) Checks() int { return b.checks }

// Expired is a deadline with no time left.
type Expired struct{}

// TimeRemaining always reports zero.
func (Expired) TimeRemaining() time.Duration { return 0 }
