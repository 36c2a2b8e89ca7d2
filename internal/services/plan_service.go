package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/tourdesk/backend/internal/audit"
	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/models"
)

// PlanContext is what a plan is checked against: the total still pending and
// the last day an installment may fall on.
type PlanContext struct {
	Ledger   *Ledger
	Snapshot billing.Snapshot
}

func (s *PaymentService) planContext(ctx context.Context, chargeID string) (PlanContext, error) {
	ledger, snap, err := s.recompute(ctx, chargeID)
	if err != nil {
		return PlanContext{}, err
	}
	return PlanContext{Ledger: ledger, Snapshot: snap}, nil
}

// InstallmentMenu offers the immediate payment and every compliant
// equal-installment plan for what is still pending.
func (s *PaymentService) InstallmentMenu(ctx context.Context, chargeID string) (billing.Menu, error) {
	pc, err := s.planContext(ctx, chargeID)
	if err != nil {
		return billing.Menu{}, err
	}
	total := pc.Snapshot.Breakdown.TotalPending
	if s.policy.Settled(total) {
		return billing.Menu{}, fmt.Errorf("%w: %w", ErrNothingPending, billing.ErrInvalidAmount)
	}
	return billing.GenerateMenu(total, pc.Ledger.Charge.TripDate, s.clock.Now(), s.policy)
}

// ValidatePlan reports the compliance flags of a plan without writing it.
func (s *PaymentService) ValidatePlan(ctx context.Context, chargeID string, plan billing.Plan) (billing.Compliance, error) {
	pc, err := s.planContext(ctx, chargeID)
	if err != nil {
		return billing.Compliance{}, err
	}
	deadline := s.policy.Deadline(pc.Ledger.Charge.TripDate)
	return billing.ValidatePlan(plan, pc.Snapshot.Breakdown.TotalPending, deadline, s.policy), nil
}

// CommitPlan replaces the pending installments of a charge record with plan.
// Paid installments stay as they are.
func (s *PaymentService) CommitPlan(ctx context.Context, chargeID string, plan billing.Plan, actor string) (Result, error) {
	pc, err := s.planContext(ctx, chargeID)
	if err != nil {
		return Result{}, err
	}

	deadline := s.policy.Deadline(pc.Ledger.Charge.TripDate)
	if err := billing.CheckPlan(plan, pc.Snapshot.Breakdown.TotalPending, deadline, s.policy); err != nil {
		var planErr *billing.InvalidPlanError
		if errors.As(err, &planErr) {
			s.metrics.ObservePlanRejection(string(planErr.Invariant))
		}
		return Result{}, err
	}

	notes := ""
	if plan.Custom {
		notes = "custom plan"
	}
	installments := make([]models.Installment, len(plan.Installments))
	for i, line := range plan.Installments {
		installments[i] = models.Installment{
			ID:                uuid.New().String(),
			ChargeID:          chargeID,
			Number:            i + 1,
			TotalInstallments: len(plan.Installments),
			Amount:            line.Amount,
			DueDate:           billing.Day(line.DueDate),
			Status:            models.InstallmentPending,
			Category:          models.CategoryTrip,
			Notes:             notes,
		}
	}

	if err := s.store.ReplacePlan(ctx, chargeID, installments); err != nil {
		s.audit.LogError("commit_plan", chargeID, err)
		return Result{}, storeError("commit plan", err)
	}

	log.Printf("[PAYMENTS] Committed %d-installment plan for %s", len(installments), chargeID)
	s.audit.LogMoney(audit.EventPlanCommitted, chargeID, chargeID, actor, plan.Sum(), map[string]any{
		"installments": len(installments),
		"custom":       plan.Custom,
	})

	snap, err := s.afterWrite(ctx, chargeID)
	return Result{Snapshot: snap, Plan: installments}, err
}
