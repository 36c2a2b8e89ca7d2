package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDeadlineOffsetDays is how many days before departure the last
// installment may fall due.
const DefaultDeadlineOffsetDays = 5

// DefaultIntervalDays separates consecutive installment due dates.
const DefaultIntervalDays = 15

// Tolerance is the rounding slack when comparing money amounts.
var Tolerance = decimal.RequireFromString("0.01")

// Policy holds the business rules used for plans and statuses.
type Policy struct {
	DeadlineOffsetDays int
	IntervalDays       int
	Tolerance          decimal.Decimal
}

// DefaultPolicy returns the agency's standard rules.
func DefaultPolicy() Policy {
	return Policy{
		DeadlineOffsetDays: DefaultDeadlineOffsetDays,
		IntervalDays:       DefaultIntervalDays,
		Tolerance:          Tolerance,
	}
}

func (p Policy) normalized() Policy {
	if p.DeadlineOffsetDays < 0 {
		p.DeadlineOffsetDays = DefaultDeadlineOffsetDays
	}
	if p.IntervalDays <= 0 {
		p.IntervalDays = DefaultIntervalDays
	}
	if !p.Tolerance.IsPositive() {
		p.Tolerance = Tolerance
	}
	return p
}

// Deadline is the latest acceptable installment due date for a trip.
func (p Policy) Deadline(tripDate time.Time) time.Time {
	return Day(tripDate).AddDate(0, 0, -p.normalized().DeadlineOffsetDays)
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b.
// Each time is read in its own location, so a DATE column scanned as UTC
// midnight compares by its calendar day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// isZero reports whether |d| is below the tolerance.
func (p Policy) isZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(p.normalized().Tolerance)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Exceeds reports whether amount is above limit by at least the tolerance.
func (p Policy) Exceeds(amount, limit decimal.Decimal) bool {
	return amount.Sub(limit).GreaterThanOrEqual(p.normalized().Tolerance)
}

// Settled reports whether an outstanding amount is within the tolerance of zero.
func (p Policy) Settled(pending decimal.Decimal) bool {
	return p.isZero(pending)
}
