package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tourdesk/backend/internal/models"
)

type InstallmentRepository struct {
	DB *sql.DB
}

func NewInstallmentRepository(db *sql.DB) *InstallmentRepository {
	return &InstallmentRepository{DB: db}
}

const installmentColumns = `id, charge_id, installment_number, total_installments, amount, due_date, status, category, paid_at, method, notes, created_at`

func scanInstallment(row rowScanner) (models.Installment, error) {
	var inst models.Installment
	err := row.Scan(
		&inst.ID, &inst.ChargeID, &inst.Number, &inst.TotalInstallments, &inst.Amount,
		&inst.DueDate, &inst.Status, &inst.Category, &inst.PaidAt, &inst.Method, &inst.Notes, &inst.CreatedAt,
	)
	return inst, err
}

// ListByCharge returns every installment of a charge record, cancelled ones
// included, ordered by number.
func (r *InstallmentRepository) ListByCharge(ctx context.Context, chargeID string) ([]models.Installment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+installmentColumns+`
		FROM installments
		WHERE charge_id = $1
		ORDER BY created_at, installment_number
	`, chargeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments for %s: %w", chargeID, err)
	}
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

func (r *InstallmentRepository) Get(ctx context.Context, installmentID string) (*models.Installment, error) {
	inst, err := scanInstallment(r.DB.QueryRowContext(ctx, `
		SELECT `+installmentColumns+`
		FROM installments
		WHERE id = $1
	`, installmentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installment %s: %w", installmentID, err)
	}
	return &inst, nil
}

// Settle marks a pending installment paid and appends its payment entries in
// one transaction. A concurrent settle loses the conditional update and gets
// ErrInstallmentNotPending.
func (r *InstallmentRepository) Settle(ctx context.Context, installmentID string, entries []*models.PaymentEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("settling installment %s without payment entries", installmentID)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE installments
		SET status = $1, paid_at = $2, method = $3
		WHERE id = $4 AND status = $5
	`, string(models.InstallmentPaid), entries[0].PaidAt, string(entries[0].Method), installmentID, string(models.InstallmentPending))
	if err != nil {
		return fmt.Errorf("failed to settle installment %s: %w", installmentID, err)
	}
	if err := expectOneRow(result); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInstallmentNotPending
		}
		return err
	}

	for _, entry := range entries {
		entry.InstallmentID = &installmentID
		if err := insertPayment(ctx, tx, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReplacePlan cancels the pending installments of a charge record and
// inserts the new schedule. Paid installments are kept.
func (r *InstallmentRepository) ReplacePlan(ctx context.Context, chargeID string, installments []models.Installment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE installments SET status = $1
		WHERE charge_id = $2 AND status = $3
	`, string(models.InstallmentCancelled), chargeID, string(models.InstallmentPending)); err != nil {
		return fmt.Errorf("failed to cancel pending installments for %s: %w", chargeID, err)
	}

	now := time.Now()
	for i := range installments {
		inst := &installments[i]
		inst.ChargeID = chargeID
		inst.CreatedAt = now
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO installments (id, charge_id, installment_number, total_installments, amount, due_date, status, category, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, inst.ID, inst.ChargeID, inst.Number, inst.TotalInstallments, inst.Amount,
			inst.DueDate, string(inst.Status), inst.Category, inst.Notes, inst.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert installment %d: %w", inst.Number, err)
		}
	}

	return tx.Commit()
}
