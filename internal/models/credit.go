package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientCredit is a balance a client carries from an earlier trip (a refund
// kept as credit, a cancelled booking, ...).
type ClientCredit struct {
	ID        string          `json:"id" db:"id"`
	ClientID  string          `json:"client_id" db:"client_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Remaining decimal.Decimal `json:"remaining" db:"remaining"`
	Reason    string          `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// AppliedCredit is the consumption of part of a ClientCredit against one
// charge record. It is an overlay on the breakdown, not a payment entry.
type AppliedCredit struct {
	ID        string          `json:"id" db:"id"`
	CreditID  string          `json:"credit_id" db:"credit_id"`
	ChargeID  string          `json:"charge_id" db:"charge_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Category  Category        `json:"category" db:"category"`
	AppliedBy string          `json:"applied_by,omitempty" db:"applied_by"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
