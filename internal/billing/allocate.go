package billing

import (
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/models"
)

// Allocation is the part of a payment booked to one category.
type Allocation struct {
	Category models.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Allocate splits a plan installment payment across categories in breakdown
// order, filling each category's pending amount before moving to the next.
// Whatever is left over goes to fallback.
func Allocate(amount decimal.Decimal, b Breakdown, fallback models.Category) []Allocation {
	if !fallback.Valid() {
		fallback = models.CategoryTrip
	}

	var out []Allocation
	remaining := amount
	for _, c := range models.Categories {
		if !remaining.IsPositive() {
			break
		}
		pending := b.For(c).Pending
		if !pending.IsPositive() {
			continue
		}
		take := decimal.Min(pending, remaining)
		out = append(out, Allocation{Category: c, Amount: take})
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		for i := range out {
			if out[i].Category == fallback {
				out[i].Amount = out[i].Amount.Add(remaining)
				return out
			}
		}
		out = append(out, Allocation{Category: fallback, Amount: remaining})
	}
	return out
}
