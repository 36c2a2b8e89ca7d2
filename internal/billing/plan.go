package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Compliance is the result of checking a plan against its two invariants.
type Compliance struct {
	SumMatches       bool            `json:"sum_matches"`
	WithinDeadline   bool            `json:"within_deadline"`
	Sum              decimal.Decimal `json:"sum"`
	SumDelta         decimal.Decimal `json:"sum_delta"`
	LateInstallments []int           `json:"late_installments,omitempty"`
	DaysLate         int             `json:"days_late"`
}

// Compliant reports whether both invariants hold.
func (c Compliance) Compliant() bool {
	return c.SumMatches && c.WithinDeadline
}

// ValidatePlan checks that the installments add up to total and that none is
// due after deadline.
func ValidatePlan(plan Plan, total decimal.Decimal, deadline time.Time, policy Policy) Compliance {
	sum := plan.Sum()
	delta := total.Sub(sum).Abs()
	c := Compliance{
		Sum:            sum,
		SumDelta:       delta,
		SumMatches:     len(plan.Installments) > 0 && policy.isZero(delta),
		WithinDeadline: true,
	}
	for _, inst := range plan.Installments {
		if late := daysBetween(deadline, inst.DueDate); late > 0 {
			c.WithinDeadline = false
			c.LateInstallments = append(c.LateInstallments, inst.Number)
			if late > c.DaysLate {
				c.DaysLate = late
			}
		}
	}
	return c
}

// CheckPlan is the commit-time gate. It returns an *InvalidPlanError naming
// the first broken invariant and its numeric delta.
func CheckPlan(plan Plan, total decimal.Decimal, deadline time.Time, policy Policy) error {
	for _, inst := range plan.Installments {
		if !inst.Amount.IsPositive() {
			return fmt.Errorf("%w: installment %d has no amount", ErrInvalidAmount, inst.Number)
		}
	}
	c := ValidatePlan(plan, total, deadline, policy)
	if !c.SumMatches {
		return &InvalidPlanError{Invariant: InvariantSum, Delta: c.SumDelta}
	}
	if !c.WithinDeadline {
		return &InvalidPlanError{Invariant: InvariantDeadline, Delta: decimal.NewFromInt(int64(c.DaysLate))}
	}
	return nil
}

// PlanEditor edits a plan in memory before commit. Compliance is recomputed
// after every mutation; nothing is persisted until the caller commits.
type PlanEditor struct {
	plan       Plan
	total      decimal.Decimal
	deadline   time.Time
	today      time.Time
	policy     Policy
	compliance Compliance
}

// NewPlanEditor starts editing from base, usually a menu option.
func NewPlanEditor(base Plan, total decimal.Decimal, deadline, today time.Time, policy Policy) *PlanEditor {
	e := &PlanEditor{
		plan:     base.clone(),
		total:    total,
		deadline: deadline,
		today:    Day(today),
		policy:   policy.normalized(),
	}
	e.revalidate()
	return e
}

func (e *PlanEditor) revalidate() Compliance {
	e.compliance = ValidatePlan(e.plan, e.total, e.deadline, e.policy)
	return e.compliance
}

func (e *PlanEditor) index(number int) (int, error) {
	for i, inst := range e.plan.Installments {
		if inst.Number == number {
			return i, nil
		}
	}
	return -1, fmt.Errorf("installment %d not in plan", number)
}

// Plan returns a copy of the plan being edited.
func (e *PlanEditor) Plan() Plan {
	return e.plan.clone()
}

// Compliance returns the flags computed after the last mutation.
func (e *PlanEditor) Compliance() Compliance {
	return e.compliance
}

// Add appends an installment IntervalDays after the previous one (or due today
// for an empty plan) with a zero amount left for the user to fill in.
func (e *PlanEditor) Add() Compliance {
	due := e.today
	if last, ok := e.plan.LastDueDate(); ok {
		due = Day(last).AddDate(0, 0, e.policy.IntervalDays)
	}
	e.plan.Custom = true
	e.plan.Installments = append(e.plan.Installments, PlanInstallment{
		Number:  len(e.plan.Installments) + 1,
		Amount:  decimal.Zero,
		DueDate: due,
	})
	return e.revalidate()
}

// Remove drops an installment and renumbers the rest from 1.
func (e *PlanEditor) Remove(number int) (Compliance, error) {
	i, err := e.index(number)
	if err != nil {
		return e.compliance, err
	}
	e.plan.Custom = true
	e.plan.Installments = append(e.plan.Installments[:i], e.plan.Installments[i+1:]...)
	for j := range e.plan.Installments {
		e.plan.Installments[j].Number = j + 1
	}
	return e.revalidate(), nil
}

// SetAmount changes one installment amount. Zero is allowed while editing.
func (e *PlanEditor) SetAmount(number int, amount decimal.Decimal) (Compliance, error) {
	if amount.IsNegative() {
		return e.compliance, ErrInvalidAmount
	}
	i, err := e.index(number)
	if err != nil {
		return e.compliance, err
	}
	e.plan.Custom = true
	e.plan.Installments[i].Amount = amount
	return e.revalidate(), nil
}

// SetDueDate changes one installment due date.
func (e *PlanEditor) SetDueDate(number int, due time.Time) (Compliance, error) {
	i, err := e.index(number)
	if err != nil {
		return e.compliance, err
	}
	e.plan.Custom = true
	e.plan.Installments[i].DueDate = Day(due)
	return e.revalidate(), nil
}

// Commit returns the plan when both invariants hold.
func (e *PlanEditor) Commit() (Plan, error) {
	if err := CheckPlan(e.plan, e.total, e.deadline, e.policy); err != nil {
		return Plan{}, err
	}
	return e.plan.clone(), nil
}
