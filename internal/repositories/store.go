package repositories

import (
	"context"
	"database/sql"

	"github.com/tourdesk/backend/internal/models"
)

// PostgresStore bundles the repositories behind the ledger store used by the
// payment service.
type PostgresStore struct {
	Charges      *ChargeRepository
	Payments     *PaymentRepository
	Installments *InstallmentRepository
	Credits      *CreditRepository
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		Charges:      NewChargeRepository(db),
		Payments:     NewPaymentRepository(db),
		Installments: NewInstallmentRepository(db),
		Credits:      NewCreditRepository(db),
	}
}

func (s *PostgresStore) GetCharge(ctx context.Context, chargeID string) (*models.ChargeRecord, error) {
	return s.Charges.Get(ctx, chargeID)
}

func (s *PostgresStore) UpdateCharge(ctx context.Context, rec *models.ChargeRecord) error {
	return s.Charges.Update(ctx, rec)
}

func (s *PostgresStore) DeleteCharge(ctx context.Context, chargeID string) error {
	return s.Charges.Delete(ctx, chargeID)
}

func (s *PostgresStore) ListPayments(ctx context.Context, chargeID string) ([]models.PaymentEntry, error) {
	return s.Payments.ListByCharge(ctx, chargeID)
}

func (s *PostgresStore) GetPayment(ctx context.Context, paymentID string) (*models.PaymentEntry, error) {
	return s.Payments.Get(ctx, paymentID)
}

func (s *PostgresStore) InsertPayment(ctx context.Context, entry *models.PaymentEntry) error {
	return s.Payments.Insert(ctx, entry)
}

func (s *PostgresStore) DeletePayment(ctx context.Context, paymentID string) error {
	return s.Payments.Delete(ctx, paymentID)
}

func (s *PostgresStore) CorrectPayment(ctx context.Context, paymentID string, c models.PaymentCorrection) error {
	return s.Payments.Correct(ctx, paymentID, c)
}

func (s *PostgresStore) ListInstallments(ctx context.Context, chargeID string) ([]models.Installment, error) {
	return s.Installments.ListByCharge(ctx, chargeID)
}

func (s *PostgresStore) GetInstallment(ctx context.Context, installmentID string) (*models.Installment, error) {
	return s.Installments.Get(ctx, installmentID)
}

func (s *PostgresStore) SettleInstallment(ctx context.Context, installmentID string, entries []*models.PaymentEntry) error {
	return s.Installments.Settle(ctx, installmentID, entries)
}

func (s *PostgresStore) ReplacePlan(ctx context.Context, chargeID string, installments []models.Installment) error {
	return s.Installments.ReplacePlan(ctx, chargeID, installments)
}

func (s *PostgresStore) ListAppliedCredits(ctx context.Context, chargeID string) ([]models.AppliedCredit, error) {
	return s.Credits.ListApplied(ctx, chargeID)
}

func (s *PostgresStore) ApplyCredit(ctx context.Context, app *models.AppliedCredit) error {
	return s.Credits.Apply(ctx, app)
}

func (s *PostgresStore) ListClientCredits(ctx context.Context, clientID string) ([]models.ClientCredit, error) {
	return s.Credits.ListForClient(ctx, clientID)
}
