package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanInstallment is one line of a proposed or edited plan.
type PlanInstallment struct {
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
}

// Plan is an ordered list of installments that has not been committed yet.
type Plan struct {
	Installments []PlanInstallment `json:"installments"`
	Custom       bool              `json:"custom"`
}

// Count is the number of installments in the plan.
func (p Plan) Count() int {
	return len(p.Installments)
}

// Sum adds every installment amount.
func (p Plan) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range p.Installments {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

// LastDueDate returns the latest due date of the plan.
func (p Plan) LastDueDate() (time.Time, bool) {
	var last time.Time
	for i, inst := range p.Installments {
		if i == 0 || daysBetween(last, inst.DueDate) > 0 {
			last = inst.DueDate
		}
	}
	return last, len(p.Installments) > 0
}

func (p Plan) clone() Plan {
	out := Plan{Custom: p.Custom, Installments: make([]PlanInstallment, len(p.Installments))}
	copy(out.Installments, p.Installments)
	return out
}

// MenuOption is one equal-installment plan offered to the traveler.
type MenuOption struct {
	Count             int             `json:"count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	LastAmount        decimal.Decimal `json:"last_amount"`
	Plan              Plan            `json:"plan"`
}

// Menu is every plan the generator offers for a total and a trip date.
type Menu struct {
	Total    decimal.Decimal `json:"total"`
	Deadline time.Time       `json:"deadline"`
	Single   Plan            `json:"single"`
	Options  []MenuOption    `json:"options"`
}

// MaxInstallments is the largest count whose last due date still falls on or
// before the deadline. It is zero when the deadline has already passed.
func MaxInstallments(tripDate, today time.Time, policy Policy) int {
	policy = policy.normalized()
	days := daysBetween(today, policy.Deadline(tripDate))
	if days < 0 {
		return 0
	}
	return days/policy.IntervalDays + 1
}

// GenerateMenu proposes the single immediate payment and every plan of 2..N
// installments spaced IntervalDays apart starting today. Plans that would
// cross the deadline, or whose installments would round down to zero, are
// never offered.
func GenerateMenu(total decimal.Decimal, tripDate, today time.Time, policy Policy) (Menu, error) {
	if !total.IsPositive() {
		return Menu{}, ErrInvalidAmount
	}
	policy = policy.normalized()
	start := Day(today)

	menu := Menu{
		Total:    total,
		Deadline: policy.Deadline(tripDate),
		Single: Plan{Installments: []PlanInstallment{
			{Number: 1, Amount: total, DueDate: start},
		}},
		Options: []MenuOption{},
	}

	for count := 2; count <= MaxInstallments(tripDate, today, policy); count++ {
		amounts := SplitEvenly(total, count)
		if !amounts[0].IsPositive() {
			break
		}
		plan := Plan{Installments: make([]PlanInstallment, count)}
		for i := range amounts {
			plan.Installments[i] = PlanInstallment{
				Number:  i + 1,
				Amount:  amounts[i],
				DueDate: start.AddDate(0, 0, i*policy.IntervalDays),
			}
		}
		menu.Options = append(menu.Options, MenuOption{
			Count:             count,
			InstallmentAmount: amounts[0],
			LastAmount:        amounts[count-1],
			Plan:              plan,
		})
	}
	return menu, nil
}

// SplitEvenly divides total into count amounts truncated to cents. The final
// amount absorbs the rounding remainder so the parts always add up to total.
func SplitEvenly(total decimal.Decimal, count int) []decimal.Decimal {
	if count <= 0 {
		return nil
	}
	n := decimal.NewFromInt(int64(count))
	each := total.Div(n).Truncate(2)
	amounts := make([]decimal.Decimal, count)
	for i := 0; i < count-1; i++ {
		amounts[i] = each
	}
	amounts[count-1] = total.Sub(each.Mul(decimal.NewFromInt(int64(count - 1))))
	return amounts
}
