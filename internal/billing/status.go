package billing

import (
	"time"

	"github.com/tourdesk/backend/internal/models"
)

// Status is the coarse payment state shown for a traveler.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusBlocked Status = "blocked"
)

// StatusResult pairs the primary status with travel eligibility. A traveler can
// be partial and still not allowed to travel.
type StatusResult struct {
	Status              Status   `json:"status"`
	CanTravel           bool     `json:"can_travel"`
	OverdueInstallments []string `json:"overdue_installments,omitempty"`
}

// Blocked reports whether travel is blocked by an unpaid fare.
func (r StatusResult) Blocked() bool {
	return !r.CanTravel
}

// Labels returns the primary status followed by blocked when travel is not
// allowed.
func (r StatusResult) Labels() []Status {
	if r.CanTravel {
		return []Status{r.Status}
	}
	return []Status{r.Status, StatusBlocked}
}

// ResolveStatus derives the status of a traveler from a breakdown. It has no
// side effects and is recomputed on every read.
func ResolveStatus(b Breakdown, free bool, installments []models.Installment, today time.Time, policy Policy) StatusResult {
	if free || b.Free {
		return StatusResult{Status: StatusPaid, CanTravel: true}
	}

	result := StatusResult{
		CanTravel: policy.isZero(b.Trip.Pending),
	}

	if policy.isZero(b.TotalPending) {
		result.Status = StatusPaid
		return result
	}

	for _, inst := range installments {
		if inst.Status == models.InstallmentPending && daysBetween(today, inst.DueDate) < 0 {
			result.OverdueInstallments = append(result.OverdueInstallments, inst.ID)
		}
	}

	switch {
	case len(result.OverdueInstallments) > 0:
		result.Status = StatusOverdue
	case b.TotalPaid.IsPositive():
		result.Status = StatusPartial
	default:
		result.Status = StatusPending
	}
	return result
}

// Snapshot is a breakdown and its status computed at one instant.
type Snapshot struct {
	ChargeID   string       `json:"charge_id"`
	Breakdown  Breakdown    `json:"breakdown"`
	Status     StatusResult `json:"status"`
	ComputedAt time.Time    `json:"computed_at"`
	Stale      bool         `json:"stale"`
}
