package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/models"
)

// Store is the persistence the payment service needs. Unknown ids are
// reported as models.ErrNotFound.
type Store interface {
	GetCharge(ctx context.Context, chargeID string) (*models.ChargeRecord, error)
	UpdateCharge(ctx context.Context, rec *models.ChargeRecord) error
	DeleteCharge(ctx context.Context, chargeID string) error

	ListPayments(ctx context.Context, chargeID string) ([]models.PaymentEntry, error)
	GetPayment(ctx context.Context, paymentID string) (*models.PaymentEntry, error)
	InsertPayment(ctx context.Context, entry *models.PaymentEntry) error
	DeletePayment(ctx context.Context, paymentID string) error
	CorrectPayment(ctx context.Context, paymentID string, c models.PaymentCorrection) error

	ListInstallments(ctx context.Context, chargeID string) ([]models.Installment, error)
	GetInstallment(ctx context.Context, installmentID string) (*models.Installment, error)
	SettleInstallment(ctx context.Context, installmentID string, entries []*models.PaymentEntry) error
	ReplacePlan(ctx context.Context, chargeID string, installments []models.Installment) error

	ListAppliedCredits(ctx context.Context, chargeID string) ([]models.AppliedCredit, error)
	ListClientCredits(ctx context.Context, clientID string) ([]models.ClientCredit, error)
	ApplyCredit(ctx context.Context, app *models.AppliedCredit) error
}

// TourCatalog resolves list prices for tours picked without a charged price.
type TourCatalog interface {
	ListPrices(ctx context.Context, names []string) (map[string]decimal.Decimal, error)
}

// Ledger is everything recorded for one traveler on one trip.
type Ledger struct {
	Charge       models.ChargeRecord
	Payments     []models.PaymentEntry
	Credits      []models.AppliedCredit
	Installments []models.Installment
	Prices       billing.PriceBook
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// loadLedger reads the full history of a charge record.
func (s *PaymentService) loadLedger(ctx context.Context, chargeID string) (*Ledger, error) {
	rec, err := s.store.GetCharge(ctx, chargeID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", billing.ErrUnknownTraveler, chargeID)
	}
	if err != nil {
		return nil, storeError("load charge record", err)
	}

	payments, err := s.store.ListPayments(ctx, chargeID)
	if err != nil {
		return nil, storeError("load payments", err)
	}
	credits, err := s.store.ListAppliedCredits(ctx, chargeID)
	if err != nil {
		return nil, storeError("load applied credits", err)
	}
	installments, err := s.store.ListInstallments(ctx, chargeID)
	if err != nil {
		return nil, storeError("load installments", err)
	}
	prices := billing.PriceBook{}
	if !rec.Free {
		prices, err = s.catalogPrices(ctx, rec.Tours)
		if err != nil {
			return nil, storeError("load tour prices", err)
		}
	}

	return &Ledger{
		Charge:       *rec,
		Payments:     payments,
		Credits:      credits,
		Installments: installments,
		Prices:       prices,
	}, nil
}

// catalogPrices only asks the catalog for tours missing a charged price.
func (s *PaymentService) catalogPrices(ctx context.Context, tours models.TourSelections) (billing.PriceBook, error) {
	var names []string
	for _, tour := range tours {
		if !tour.ChargedPrice.IsPositive() {
			names = append(names, tour.Name)
		}
	}
	if len(names) == 0 || s.catalog == nil {
		return billing.PriceBook{}, nil
	}
	prices, err := s.catalog.ListPrices(ctx, names)
	if err != nil {
		return nil, err
	}
	return billing.NewPriceBook(prices), nil
}

// snapshot computes breakdown and status as of now.
func (l *Ledger) snapshot(now time.Time, policy billing.Policy) (billing.Snapshot, error) {
	b, err := billing.ComputeBreakdown(l.Charge, l.Payments, l.Credits, l.Prices)
	if err != nil {
		return billing.Snapshot{}, err
	}
	return billing.Snapshot{
		ChargeID:   l.Charge.ID,
		Breakdown:  b,
		Status:     billing.ResolveStatus(b, l.Charge.Free, l.Installments, now, policy),
		ComputedAt: now,
	}, nil
}
