package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/audit"
	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/cache"
	"github.com/tourdesk/backend/internal/config"
	"github.com/tourdesk/backend/internal/metrics"
	"github.com/tourdesk/backend/internal/models"
)

// Payment sources reported to metrics
const (
	SourceManual      = "manual"
	SourceInstallment = "installment"
)

// WarningOverpayment is attached when a payment exceeds what is pending in
// its category.
const WarningOverpayment = "overpayment"

// Warning is advisory; the write it is attached to has happened.
type Warning struct {
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Category models.Category `json:"category,omitempty"`
	Excess   decimal.Decimal `json:"excess"`
}

// Result is returned by every write: what was written and the snapshot
// recomputed from the store afterwards.
type Result struct {
	Snapshot billing.Snapshot      `json:"snapshot"`
	Entry    *models.PaymentEntry  `json:"entry,omitempty"`
	Entries  []models.PaymentEntry `json:"entries,omitempty"`
	Credit   *models.AppliedCredit `json:"credit,omitempty"`
	Plan     []models.Installment  `json:"plan,omitempty"`
	Warnings []Warning             `json:"warnings,omitempty"`
}

// PaymentService is the only path that mutates a traveler's payment history.
type PaymentService struct {
	store     Store
	catalog   TourCatalog
	clock     billing.Clock
	config    *config.BillingConfig
	policy    billing.Policy
	snapshots *cache.SnapshotCache
	metrics   *metrics.Metrics
	audit     *audit.Logger
	validator *ValidationHelper
}

// NewPaymentService wires the service. snapshots, m and auditLogger may be nil.
func NewPaymentService(store Store, catalog TourCatalog, clock billing.Clock, cfg *config.BillingConfig, snapshots *cache.SnapshotCache, m *metrics.Metrics, auditLogger *audit.Logger) *PaymentService {
	if cfg == nil {
		cfg = &config.BillingConfig{
			DeadlineOffsetDays:      billing.DefaultDeadlineOffsetDays,
			InstallmentIntervalDays: billing.DefaultIntervalDays,
			Tolerance:               billing.Tolerance,
			OverpaymentGuard:        config.OverpaymentWarn,
			Location:                time.UTC,
		}
	}
	if clock == nil {
		clock = billing.SystemClock{Location: cfg.Location}
	}
	return &PaymentService{
		store:     store,
		catalog:   catalog,
		clock:     clock,
		config:    cfg,
		policy:    cfg.Policy(),
		snapshots: snapshots,
		metrics:   m,
		audit:     auditLogger,
		validator: NewValidationHelper(),
	}
}

// Policy returns the billing rules in use.
func (s *PaymentService) Policy() billing.Policy {
	return s.policy
}

func (s *PaymentService) recompute(ctx context.Context, chargeID string) (*Ledger, billing.Snapshot, error) {
	ledger, err := s.loadLedger(ctx, chargeID)
	if err != nil {
		return nil, billing.Snapshot{}, err
	}
	snap, err := ledger.snapshot(s.clock.Now(), s.policy)
	if err != nil {
		return ledger, billing.Snapshot{}, err
	}
	if err := s.snapshots.Put(ctx, snap); err != nil {
		log.Printf("[PAYMENTS] Failed to cache snapshot for %s: %v", chargeID, err)
	}
	return ledger, snap, nil
}

// Snapshot is the read path. When the history cannot be read, the last-known
// snapshot (marked Stale) is returned together with the error so a failed read
// never looks like a traveler owing nothing.
func (s *PaymentService) Snapshot(ctx context.Context, chargeID string) (billing.Snapshot, error) {
	_, snap, err := s.recompute(ctx, chargeID)
	if err == nil {
		return snap, nil
	}
	if errors.Is(err, billing.ErrUnknownTraveler) {
		return billing.Snapshot{}, err
	}
	return s.lastKnown(ctx, chargeID), err
}

func (s *PaymentService) lastKnown(ctx context.Context, chargeID string) billing.Snapshot {
	if cached, ok := s.snapshots.LastKnown(ctx, chargeID); ok {
		s.metrics.ObserveStaleSnapshot()
		return cached
	}
	return billing.Snapshot{ChargeID: chargeID, Stale: true}
}

// afterWrite re-reads the history once the write is durable.
func (s *PaymentService) afterWrite(ctx context.Context, chargeID string) (billing.Snapshot, error) {
	_, snap, err := s.recompute(ctx, chargeID)
	if err != nil {
		log.Printf("[PAYMENTS] Recompute after write failed for %s: %v", chargeID, err)
		s.metrics.ObserveRecomputeFailure()
		return s.lastKnown(ctx, chargeID), fmt.Errorf("%w: %w", ErrRecomputeFailed, err)
	}
	return snap, nil
}

// RecordPaymentInput is a manual payment entered by staff.
type RecordPaymentInput struct {
	ChargeID   string               `json:"-" validate:"required"`
	Amount     decimal.Decimal      `json:"amount"`
	Category   string               `json:"category" validate:"required"`
	Method     models.PaymentMethod `json:"method" validate:"required,oneof=pix cash credit_card debit_card bank_transfer boleto"`
	PaidAt     *time.Time           `json:"paid_at,omitempty"`
	Note       string               `json:"note,omitempty" validate:"max=500"`
	RecordedBy string               `json:"-"`
}

// RecordPayment appends a categorized payment. Paying more than is pending is
// allowed; the guard only attaches a warning.
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (Result, error) {
	if !in.Amount.IsPositive() {
		return Result{}, billing.ErrInvalidAmount
	}
	if err := s.validator.ValidateStruct(&in); err != nil {
		return Result{}, err
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", billing.ErrInvalidCategory, err)
	}

	_, before, err := s.recompute(ctx, in.ChargeID)
	if err != nil {
		return Result{}, err
	}

	var warnings []Warning
	if w, ok := s.overpaymentWarning(before.Breakdown, category, in.Amount); ok {
		warnings = append(warnings, w)
	}

	paidAt := s.clock.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	entry := &models.PaymentEntry{
		ID:         uuid.New().String(),
		ChargeID:   in.ChargeID,
		Reference:  uuid.New().String(),
		Amount:     in.Amount,
		Category:   category,
		Method:     in.Method,
		PaidAt:     paidAt,
		Note:       in.Note,
		RecordedBy: in.RecordedBy,
	}
	if err := s.store.InsertPayment(ctx, entry); err != nil {
		s.audit.LogError("record_payment", in.ChargeID, err)
		return Result{}, storeError("record payment", err)
	}

	log.Printf("[PAYMENTS] Recorded %s %s payment %s for %s", entry.Amount.StringFixed(2), category, entry.ID, in.ChargeID)
	s.audit.LogMoney(audit.EventPaymentRecorded, in.ChargeID, entry.ID, in.RecordedBy, entry.Amount, map[string]string{
		"category": string(category),
		"method":   string(entry.Method),
	})
	s.metrics.ObservePayment(string(category), SourceManual, entry.Amount.InexactFloat64())

	snap, err := s.afterWrite(ctx, in.ChargeID)
	return Result{Snapshot: snap, Entry: entry, Warnings: warnings}, err
}

func (s *PaymentService) overpaymentWarning(b billing.Breakdown, category models.Category, amount decimal.Decimal) (Warning, bool) {
	if s.config.OverpaymentGuard == config.OverpaymentOff {
		return Warning{}, false
	}
	pending := b.For(category).Pending
	if !s.policy.Exceeds(amount, pending) {
		return Warning{}, false
	}
	s.metrics.ObserveOverpayment(string(category))
	excess := amount.Sub(pending)
	return Warning{
		Code:     WarningOverpayment,
		Message:  fmt.Sprintf("payment exceeds pending %s amount by %s", category, excess.StringFixed(2)),
		Category: category,
		Excess:   excess,
	}, true
}

// SettleInstallmentInput marks a plan installment as paid.
type SettleInstallmentInput struct {
	InstallmentID string               `json:"-" validate:"required"`
	Method        models.PaymentMethod `json:"method" validate:"required,oneof=pix cash credit_card debit_card bank_transfer boleto"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	RecordedBy    string               `json:"-"`
}

// SettleInstallment pays a pending installment in full. The amount is booked
// to the categories that are still pending, trip first.
func (s *PaymentService) SettleInstallment(ctx context.Context, in SettleInstallmentInput) (Result, error) {
	if err := s.validator.ValidateStruct(&in); err != nil {
		return Result{}, err
	}

	inst, err := s.store.GetInstallment(ctx, in.InstallmentID)
	if errors.Is(err, models.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownInstallment, in.InstallmentID)
	}
	if err != nil {
		return Result{}, storeError("load installment", err)
	}
	if inst.Status != models.InstallmentPending {
		return Result{}, fmt.Errorf("%w: installment %s is %s", models.ErrInstallmentNotPending, inst.ID, inst.Status)
	}

	_, before, err := s.recompute(ctx, inst.ChargeID)
	if err != nil {
		return Result{}, err
	}

	paidAt := s.clock.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	note := fmt.Sprintf("installment %d/%d", inst.Number, inst.TotalInstallments)

	var entries []*models.PaymentEntry
	for _, part := range billing.Allocate(inst.Amount, before.Breakdown, inst.Category) {
		entries = append(entries, &models.PaymentEntry{
			ID:         uuid.New().String(),
			ChargeID:   inst.ChargeID,
			Reference:  uuid.New().String(),
			Amount:     part.Amount,
			Category:   part.Category,
			Method:     in.Method,
			PaidAt:     paidAt,
			Note:       note,
			RecordedBy: in.RecordedBy,
		})
	}

	if err := s.store.SettleInstallment(ctx, inst.ID, entries); err != nil {
		if errors.Is(err, models.ErrInstallmentNotPending) {
			return Result{}, err
		}
		s.audit.LogError("settle_installment", inst.ChargeID, err)
		return Result{}, storeError("settle installment", err)
	}

	written := make([]models.PaymentEntry, len(entries))
	for i, e := range entries {
		written[i] = *e
		s.metrics.ObservePayment(string(e.Category), SourceInstallment, e.Amount.InexactFloat64())
	}
	log.Printf("[PAYMENTS] Settled installment %s (%s) for %s", inst.ID, note, inst.ChargeID)
	s.audit.LogMoney(audit.EventInstallmentSettled, inst.ChargeID, inst.ID, in.RecordedBy, inst.Amount, map[string]any{
		"method":  string(in.Method),
		"entries": len(entries),
	})

	snap, err := s.afterWrite(ctx, inst.ChargeID)
	return Result{Snapshot: snap, Entries: written}, err
}

// DeletePayment removes a payment recorded by mistake. The status follows from
// the remaining history.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID, actor string) (Result, error) {
	entry, err := s.store.GetPayment(ctx, paymentID)
	if errors.Is(err, models.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownPayment, paymentID)
	}
	if err != nil {
		return Result{}, storeError("load payment", err)
	}

	if err := s.store.DeletePayment(ctx, paymentID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownPayment, paymentID)
		}
		s.audit.LogError("delete_payment", entry.ChargeID, err)
		return Result{}, storeError("delete payment", err)
	}

	log.Printf("[PAYMENTS] Deleted payment %s from %s", paymentID, entry.ChargeID)
	s.audit.LogMoney(audit.EventPaymentDeleted, entry.ChargeID, paymentID, actor, entry.Amount, map[string]string{
		"category": string(entry.Category),
	})

	snap, err := s.afterWrite(ctx, entry.ChargeID)
	return Result{Snapshot: snap, Entry: entry}, err
}

// CorrectPayment fixes method, note or paid-at of a payment in place.
func (s *PaymentService) CorrectPayment(ctx context.Context, paymentID string, c models.PaymentCorrection, actor string) (Result, error) {
	if c.Method != nil {
		if err := s.validator.ValidateVar(string(*c.Method), "required,"+models.PaymentMethodTag); err != nil {
			return Result{}, err
		}
	}

	entry, err := s.store.GetPayment(ctx, paymentID)
	if errors.Is(err, models.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownPayment, paymentID)
	}
	if err != nil {
		return Result{}, storeError("load payment", err)
	}

	if !c.Empty() {
		if err := s.store.CorrectPayment(ctx, paymentID, c); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return Result{}, fmt.Errorf("%w: %s", ErrUnknownPayment, paymentID)
			}
			s.audit.LogError("correct_payment", entry.ChargeID, err)
			return Result{}, storeError("correct payment", err)
		}
		if c.Method != nil {
			entry.Method = *c.Method
		}
		if c.Note != nil {
			entry.Note = *c.Note
		}
		if c.PaidAt != nil {
			entry.PaidAt = *c.PaidAt
		}
		s.audit.LogOperation(audit.EventPaymentCorrected, entry.ChargeID, paymentID, actor, c)
	}

	snap, err := s.afterWrite(ctx, entry.ChargeID)
	return Result{Snapshot: snap, Entry: entry}, err
}

// ApplyCreditInput consumes part of a client credit against a charge record.
type ApplyCreditInput struct {
	ChargeID  string          `json:"-" validate:"required"`
	CreditID  string          `json:"credit_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category,omitempty"`
	AppliedBy string          `json:"-"`
}

// ApplyCredit overlays a client credit on the breakdown. The amount may not
// exceed what is pending in the category, and the store rejects it when the
// credit balance was spent in the meantime.
func (s *PaymentService) ApplyCredit(ctx context.Context, in ApplyCreditInput) (Result, error) {
	if !in.Amount.IsPositive() {
		return Result{}, billing.ErrInvalidAmount
	}
	if err := s.validator.ValidateStruct(&in); err != nil {
		return Result{}, err
	}
	category := models.CategoryTrip
	if in.Category != "" {
		c, err := models.ParseCategory(in.Category)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", billing.ErrInvalidCategory, err)
		}
		category = c
	}

	_, before, err := s.recompute(ctx, in.ChargeID)
	if err != nil {
		return Result{}, err
	}
	pending := before.Breakdown.For(category).Pending
	if s.policy.Exceeds(in.Amount, pending) {
		return Result{}, fmt.Errorf("%w: credit of %s exceeds pending %s amount %s",
			billing.ErrInvalidAmount, in.Amount.StringFixed(2), category, pending.StringFixed(2))
	}

	app := &models.AppliedCredit{
		ID:        uuid.New().String(),
		CreditID:  in.CreditID,
		ChargeID:  in.ChargeID,
		Amount:    in.Amount,
		Category:  category,
		AppliedBy: in.AppliedBy,
	}
	if err := s.store.ApplyCredit(ctx, app); err != nil {
		switch {
		case errors.Is(err, billing.ErrStaleCreditApplication):
			return Result{}, err
		case errors.Is(err, models.ErrNotFound):
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownCredit, in.CreditID)
		}
		s.audit.LogError("apply_credit", in.ChargeID, err)
		return Result{}, storeError("apply credit", err)
	}

	log.Printf("[PAYMENTS] Applied credit %s (%s %s) to %s", in.CreditID, app.Amount.StringFixed(2), category, in.ChargeID)
	s.audit.LogMoney(audit.EventCreditApplied, in.ChargeID, app.ID, in.AppliedBy, app.Amount, map[string]string{
		"credit_id": in.CreditID,
		"category":  string(category),
	})

	snap, err := s.afterWrite(ctx, in.ChargeID)
	return Result{Snapshot: snap, Credit: app}, err
}

// ClientCredits lists the credits of the client behind a charge record.
func (s *PaymentService) ClientCredits(ctx context.Context, chargeID string) ([]models.ClientCredit, error) {
	rec, err := s.store.GetCharge(ctx, chargeID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", billing.ErrUnknownTraveler, chargeID)
	}
	if err != nil {
		return nil, storeError("load charge record", err)
	}
	credits, err := s.store.ListClientCredits(ctx, rec.ClientID)
	if err != nil {
		return nil, storeError("load client credits", err)
	}
	return credits, nil
}

// UpdateCharge edits discount, free flag or tour selections and recomputes.
func (s *PaymentService) UpdateCharge(ctx context.Context, chargeID string, update models.ChargeUpdate, actor string) (Result, error) {
	rec, err := s.store.GetCharge(ctx, chargeID)
	if errors.Is(err, models.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: %s", billing.ErrUnknownTraveler, chargeID)
	}
	if err != nil {
		return Result{}, storeError("load charge record", err)
	}

	if update.Discount != nil {
		rec.Discount = *update.Discount
	}
	if update.Free != nil {
		rec.Free = *update.Free
	}
	if update.Tours != nil {
		for _, tour := range *update.Tours {
			if tour.Name == "" || tour.ChargedPrice.IsNegative() {
				return Result{}, fmt.Errorf("%w: tour %q has an invalid price", billing.ErrInvalidAmount, tour.Name)
			}
		}
		rec.Tours = *update.Tours
	}
	if err := rec.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", billing.ErrInvalidDiscount, err)
	}

	// Every tour of a paying record must be priceable before the edit is stored.
	if !rec.Free {
		prices, err := s.catalogPrices(ctx, rec.Tours)
		if err != nil {
			return Result{}, storeError("load tour prices", err)
		}
		if _, err := billing.ToursValue(rec.Tours, prices); err != nil {
			return Result{}, err
		}
	}

	if err := s.store.UpdateCharge(ctx, rec); err != nil {
		s.audit.LogError("update_charge", chargeID, err)
		return Result{}, storeError("update charge record", err)
	}

	log.Printf("[PAYMENTS] Updated charge record %s", chargeID)
	s.audit.LogOperation(audit.EventChargeUpdated, chargeID, chargeID, actor, update)

	snap, err := s.afterWrite(ctx, chargeID)
	return Result{Snapshot: snap}, err
}

// CancelEnrollment removes a traveler from a trip together with its payments,
// installments and applied credits.
func (s *PaymentService) CancelEnrollment(ctx context.Context, chargeID string, confirm bool, actor string) error {
	if !confirm {
		return ErrConfirmationRequired
	}

	if err := s.store.DeleteCharge(ctx, chargeID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: %s", billing.ErrUnknownTraveler, chargeID)
		}
		s.audit.LogError("cancel_enrollment", chargeID, err)
		return storeError("cancel enrollment", err)
	}

	if err := s.snapshots.Invalidate(ctx, chargeID); err != nil {
		log.Printf("[PAYMENTS] Failed to drop cached snapshot for %s: %v", chargeID, err)
	}
	log.Printf("[PAYMENTS] Cancelled enrollment %s", chargeID)
	s.audit.LogOperation(audit.EventEnrollmentCanceled, chargeID, chargeID, actor, nil)
	return nil
}
