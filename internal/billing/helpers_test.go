package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tourdesk/backend/internal/models"
)

var today = time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func travelerRecord() models.ChargeRecord {
	return models.ChargeRecord{
		ID:       "charge-1",
		TripID:   "trip-1",
		ClientID: "client-1",
		TripDate: today.AddDate(0, 0, 40),
		BaseFare: dec("1000"),
		Discount: decimal.Zero,
		Tours: models.TourSelections{
			{TourID: "tour-1", Name: "City Tour", ChargedPrice: dec("200")},
		},
	}
}

func payment(id string, amount string, category models.Category) models.PaymentEntry {
	return models.PaymentEntry{
		ID:       id,
		ChargeID: "charge-1",
		Amount:   dec(amount),
		Category: category,
		Method:   models.MethodPix,
		PaidAt:   today,
	}
}
