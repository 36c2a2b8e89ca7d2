package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tourdesk/backend/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, charge_id, reference, amount, category, method, paid_at, note, installment_id, recorded_by, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (models.PaymentEntry, error) {
	var p models.PaymentEntry
	err := row.Scan(
		&p.ID, &p.ChargeID, &p.Reference, &p.Amount, &p.Category, &p.Method,
		&p.PaidAt, &p.Note, &p.InstallmentID, &p.RecordedBy, &p.CreatedAt,
	)
	return p, err
}

// ListByCharge returns the full payment history of a charge record, oldest
// first. Rows with legacy categories are returned as-is.
func (r *PaymentRepository) ListByCharge(ctx context.Context, chargeID string) ([]models.PaymentEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payment_entries
		WHERE charge_id = $1
		ORDER BY paid_at, created_at
	`, chargeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", chargeID, err)
	}
	defer rows.Close()

	payments := []models.PaymentEntry{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) Get(ctx context.Context, paymentID string) (*models.PaymentEntry, error) {
	p, err := scanPayment(r.DB.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payment_entries
		WHERE id = $1
	`, paymentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}
	return &p, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPayment(ctx context.Context, db execer, p *models.PaymentEntry) error {
	p.CreatedAt = time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO payment_entries (id, charge_id, reference, amount, category, method, paid_at, note, installment_id, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.ChargeID, p.Reference, p.Amount, p.Category, string(p.Method),
		p.PaidAt, p.Note, p.InstallmentID, p.RecordedBy, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", p.ID, err)
	}
	return nil
}

// Insert appends a payment entry.
func (r *PaymentRepository) Insert(ctx context.Context, p *models.PaymentEntry) error {
	return insertPayment(ctx, r.DB, p)
}

// Delete removes a payment entry. When the entry settled an installment, every
// entry of that settlement is removed and the installment goes back to pending
// in the same transaction.
func (r *PaymentRepository) Delete(ctx context.Context, paymentID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var installmentID sql.NullString
	err = tx.QueryRowContext(ctx, `
		DELETE FROM payment_entries WHERE id = $1 RETURNING installment_id
	`, paymentID).Scan(&installmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}

	if installmentID.Valid {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM payment_entries WHERE installment_id = $1
		`, installmentID.String); err != nil {
			return fmt.Errorf("failed to delete settlement entries of installment %s: %w", installmentID.String, err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE installments SET status = $1, paid_at = NULL, method = NULL
			WHERE id = $2 AND status = $3
		`, string(models.InstallmentPending), installmentID.String, string(models.InstallmentPaid)); err != nil {
			return fmt.Errorf("failed to reopen installment %s: %w", installmentID.String, err)
		}
	}

	return tx.Commit()
}

// Correct edits method, note or paid-at in place. Amount and category are
// never part of the update.
func (r *PaymentRepository) Correct(ctx context.Context, paymentID string, c models.PaymentCorrection) error {
	var sets []string
	var args []any
	argIndex := 1

	if c.Method != nil {
		sets = append(sets, fmt.Sprintf("method = $%d", argIndex))
		args = append(args, string(*c.Method))
		argIndex++
	}
	if c.Note != nil {
		sets = append(sets, fmt.Sprintf("note = $%d", argIndex))
		args = append(args, *c.Note)
		argIndex++
	}
	if c.PaidAt != nil {
		sets = append(sets, fmt.Sprintf("paid_at = $%d", argIndex))
		args = append(args, *c.PaidAt)
		argIndex++
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, paymentID)
	query := fmt.Sprintf(`UPDATE payment_entries SET %s WHERE id = $%d`, strings.Join(sets, ", "), argIndex)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to correct payment %s: %w", paymentID, err)
	}
	return expectOneRow(result)
}
