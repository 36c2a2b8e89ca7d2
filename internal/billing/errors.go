package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidPlan            = errors.New("installment plan is not compliant")
	ErrUnknownTraveler        = errors.New("no charge record for traveler")
	ErrStaleCreditApplication = errors.New("credit application exceeds remaining credit balance")
	ErrInvalidCategory        = errors.New("invalid payment category")
	ErrInvalidDiscount        = errors.New("discount must be between zero and the base fare")
	ErrUnpricedTour           = errors.New("tour has no charged price and no catalog price")
)

// Invariant names a plan rule that a commit can break.
type Invariant string

const (
	InvariantSum      Invariant = "sum_matches_total"
	InvariantDeadline Invariant = "all_within_deadline"
)

// InvalidPlanError reports the first broken invariant of a plan. Delta is the
// absolute currency difference for InvariantSum and the number of days the
// latest installment falls after the deadline for InvariantDeadline.
type InvalidPlanError struct {
	Invariant Invariant
	Delta     decimal.Decimal
}

func (e *InvalidPlanError) Error() string {
	switch e.Invariant {
	case InvariantDeadline:
		return fmt.Sprintf("invalid plan: %s violated, last installment %s day(s) after deadline", e.Invariant, e.Delta.String())
	default:
		return fmt.Sprintf("invalid plan: %s violated, off by %s", e.Invariant, e.Delta.StringFixed(2))
	}
}

// Is lets errors.Is(err, ErrInvalidPlan) match.
func (e *InvalidPlanError) Is(target error) bool {
	return target == ErrInvalidPlan
}

// UnpricedTourError names the tour that could not be priced.
type UnpricedTourError struct {
	Tour string
}

func (e *UnpricedTourError) Error() string {
	return fmt.Sprintf("tour %q has no charged price and no catalog price", e.Tour)
}

func (e *UnpricedTourError) Is(target error) bool {
	return target == ErrUnpricedTour
}
