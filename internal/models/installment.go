package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus represents installment status
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "pending"
	InstallmentPaid      InstallmentStatus = "paid"
	InstallmentCancelled InstallmentStatus = "cancelled"
)

// Installment is one scheduled payment of a committed plan.
type Installment struct {
	ID                string            `json:"id" db:"id"`
	ChargeID          string            `json:"charge_id" db:"charge_id"`
	Number            int               `json:"installment_number" db:"installment_number"`
	TotalInstallments int               `json:"total_installments" db:"total_installments"`
	Amount            decimal.Decimal   `json:"amount" db:"amount"`
	DueDate           time.Time         `json:"due_date" db:"due_date"`
	Status            InstallmentStatus `json:"status" db:"status"`
	Category          Category          `json:"category" db:"category"`
	PaidAt            *time.Time        `json:"paid_at,omitempty" db:"paid_at"`
	Method            *PaymentMethod    `json:"method,omitempty" db:"method"`
	Notes             string            `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
}
