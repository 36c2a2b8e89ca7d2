package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeRecord is the billable record for one person on one trip.
type ChargeRecord struct {
	ID           string          `json:"id" db:"id"`
	TripID       string          `json:"trip_id" db:"trip_id"`
	ClientID     string          `json:"client_id" db:"client_id"`
	TravelerName string          `json:"traveler_name" db:"traveler_name"`
	TripDate     time.Time       `json:"trip_date" db:"trip_date"`
	BaseFare     decimal.Decimal `json:"base_fare" db:"base_fare"`
	Discount     decimal.Decimal `json:"discount" db:"discount"`
	Free         bool            `json:"free" db:"free"`
	Tours        TourSelections  `json:"tours" db:"tours"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// TourSelection is an optional tour picked for a traveler. A zero ChargedPrice
// means the price was never captured and must come from the tour catalog.
type TourSelection struct {
	TourID       string          `json:"tour_id"`
	Name         string          `json:"name"`
	ChargedPrice decimal.Decimal `json:"charged_price"`
}

var (
	ErrNegativeFare     = errors.New("base fare cannot be negative")
	ErrDiscountTooLarge = errors.New("discount must be between zero and the base fare")
)

// NetTripValue is the base fare minus the discount.
func (c *ChargeRecord) NetTripValue() decimal.Decimal {
	return c.BaseFare.Sub(c.Discount)
}

// Validate checks 0 <= discount <= base fare.
func (c *ChargeRecord) Validate() error {
	if c.BaseFare.IsNegative() {
		return ErrNegativeFare
	}
	if c.Discount.IsNegative() || c.Discount.GreaterThan(c.BaseFare) {
		return ErrDiscountTooLarge
	}
	return nil
}

// TourSelections type for the JSONB tours column
type TourSelections []TourSelection

// Value implements driver.Valuer for TourSelections
func (t TourSelections) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for TourSelections
func (t *TourSelections) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, t)
}

// ChargeUpdate carries the editable parts of a charge record. Nil fields are
// left untouched.
type ChargeUpdate struct {
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Tours    *TourSelections  `json:"tours,omitempty"`
	Free     *bool            `json:"free,omitempty"`
}
