package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tourdesk/backend/internal/models"
)

// PriceBook maps a tour name (case-insensitive) to its catalog list price.
type PriceBook map[string]decimal.Decimal

// Lookup finds the list price of a tour.
func (pb PriceBook) Lookup(name string) (decimal.Decimal, bool) {
	if pb == nil {
		return decimal.Zero, false
	}
	if price, ok := pb[name]; ok {
		return price, true
	}
	price, ok := pb[normalizeTourName(name)]
	return price, ok
}

func normalizeTourName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewPriceBook builds a PriceBook keyed by normalized tour name.
func NewPriceBook(prices map[string]decimal.Decimal) PriceBook {
	pb := make(PriceBook, len(prices))
	for name, price := range prices {
		pb[normalizeTourName(name)] = price
	}
	return pb
}

// CategoryTotals are the owed/paid/pending figures of one category.
type CategoryTotals struct {
	Owed     decimal.Decimal `json:"owed"`
	Paid     decimal.Decimal `json:"paid"`
	Credited decimal.Decimal `json:"credited"`
	Pending  decimal.Decimal `json:"pending"`
	Overpaid decimal.Decimal `json:"overpaid"`
}

// Uncategorized collects legacy entries whose category is unknown.
type Uncategorized struct {
	Total      decimal.Decimal `json:"total"`
	PaymentIDs []string        `json:"payment_ids,omitempty"`
}

// Breakdown is the derived state of a charge record. It is never persisted.
type Breakdown struct {
	ChargeID      string          `json:"charge_id"`
	Free          bool            `json:"free"`
	Trip          CategoryTotals  `json:"trip"`
	Tours         CategoryTotals  `json:"tours"`
	TotalOwed     decimal.Decimal `json:"total_owed"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	Uncategorized Uncategorized   `json:"uncategorized"`
}

// For returns the totals of a category.
func (b *Breakdown) For(c models.Category) CategoryTotals {
	if c == models.CategoryTours {
		return b.Tours
	}
	return b.Trip
}

// ToursValue prices every selected tour, falling back to the catalog for tours
// whose charged price is zero.
func ToursValue(tours []models.TourSelection, prices PriceBook) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tour := range tours {
		price := tour.ChargedPrice
		if !price.IsPositive() {
			listPrice, ok := prices.Lookup(tour.Name)
			if !ok {
				return decimal.Zero, &UnpricedTourError{Tour: tour.Name}
			}
			price = listPrice
		}
		total = total.Add(price)
	}
	return total, nil
}

// ComputeBreakdown reduces a charge record and its history to per-category
// totals. Free records owe nothing; what was paid on them is still reported.
func ComputeBreakdown(rec models.ChargeRecord, payments []models.PaymentEntry, credits []models.AppliedCredit, prices PriceBook) (Breakdown, error) {
	tripOwed, toursOwed := decimal.Zero, decimal.Zero
	// Fare, discount and tour data of a free record are not priced.
	if !rec.Free {
		if err := rec.Validate(); err != nil {
			return Breakdown{}, fmt.Errorf("%w: %v", ErrInvalidDiscount, err)
		}
		toursValue, err := ToursValue(rec.Tours, prices)
		if err != nil {
			return Breakdown{}, err
		}
		tripOwed, toursOwed = rec.NetTripValue(), toursValue
	}

	b := Breakdown{
		ChargeID: rec.ID,
		Free:     rec.Free,
		Trip:     CategoryTotals{Owed: tripOwed, Paid: decimal.Zero, Credited: decimal.Zero},
		Tours:    CategoryTotals{Owed: toursOwed, Paid: decimal.Zero, Credited: decimal.Zero},
		Uncategorized: Uncategorized{
			Total: decimal.Zero,
		},
	}

	for _, p := range payments {
		switch p.Category {
		case models.CategoryTrip:
			b.Trip.Paid = b.Trip.Paid.Add(p.Amount)
		case models.CategoryTours:
			b.Tours.Paid = b.Tours.Paid.Add(p.Amount)
		default:
			b.Uncategorized.Total = b.Uncategorized.Total.Add(p.Amount)
			b.Uncategorized.PaymentIDs = append(b.Uncategorized.PaymentIDs, p.ID)
		}
	}

	for _, c := range credits {
		// Credits without a category count against the fare.
		if c.Category == models.CategoryTours {
			b.Tours.Credited = b.Tours.Credited.Add(c.Amount)
		} else {
			b.Trip.Credited = b.Trip.Credited.Add(c.Amount)
		}
	}

	b.Trip.settle()
	b.Tours.settle()

	b.TotalOwed = b.Trip.Owed.Add(b.Tours.Owed)
	b.TotalPaid = b.Trip.Paid.Add(b.Tours.Paid)
	b.TotalPending = b.Trip.Pending.Add(b.Tours.Pending)
	return b, nil
}

// settle folds credits into Paid and derives Pending and Overpaid.
func (t *CategoryTotals) settle() {
	t.Paid = t.Paid.Add(t.Credited)
	diff := t.Owed.Sub(t.Paid)
	if diff.IsPositive() {
		t.Pending = diff
		t.Overpaid = decimal.Zero
	} else {
		t.Pending = decimal.Zero
		t.Overpaid = diff.Neg()
	}
}
