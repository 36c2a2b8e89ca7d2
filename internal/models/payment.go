package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how money reached the agency.
type PaymentMethod string

const (
	MethodPix          PaymentMethod = "pix"
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodBoleto       PaymentMethod = "boleto"
)

// PaymentMethodTag is the validator rule matching every PaymentMethod.
const PaymentMethodTag = "oneof=pix cash credit_card debit_card bank_transfer boleto"

// PaymentEntry is an append-only categorized payment. Amount and Category are
// never edited after insert; corrections are a delete plus a new entry.
type PaymentEntry struct {
	ID            string          `json:"id" db:"id"`
	ChargeID      string          `json:"charge_id" db:"charge_id"`
	Reference     string          `json:"reference" db:"reference"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Category      Category        `json:"category" db:"category"`
	Method        PaymentMethod   `json:"method" db:"method"`
	PaidAt        time.Time       `json:"paid_at" db:"paid_at"`
	Note          string          `json:"note,omitempty" db:"note"`
	InstallmentID *string         `json:"installment_id,omitempty" db:"installment_id"`
	RecordedBy    string          `json:"recorded_by,omitempty" db:"recorded_by"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// PaymentCorrection holds the fields of a payment that may be fixed in place.
type PaymentCorrection struct {
	Method *PaymentMethod `json:"method,omitempty"`
	Note   *string        `json:"note,omitempty"`
	PaidAt *time.Time     `json:"paid_at,omitempty"`
}

// Empty reports whether the correction changes nothing.
func (c PaymentCorrection) Empty() bool {
	return c.Method == nil && c.Note == nil && c.PaidAt == nil
}
