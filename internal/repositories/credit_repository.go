package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/models"
)

type CreditRepository struct {
	DB *sql.DB
}

func NewCreditRepository(db *sql.DB) *CreditRepository {
	return &CreditRepository{DB: db}
}

// ListApplied returns the credits applied to a charge record.
func (r *CreditRepository) ListApplied(ctx context.Context, chargeID string) ([]models.AppliedCredit, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, credit_id, charge_id, amount, category, applied_by, created_at
		FROM applied_credits
		WHERE charge_id = $1
		ORDER BY created_at
	`, chargeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied credits for %s: %w", chargeID, err)
	}
	defer rows.Close()

	credits := []models.AppliedCredit{}
	for rows.Next() {
		var c models.AppliedCredit
		if err := rows.Scan(&c.ID, &c.CreditID, &c.ChargeID, &c.Amount, &c.Category, &c.AppliedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// ListForClient returns a client's credits with their unapplied balance.
func (r *CreditRepository) ListForClient(ctx context.Context, clientID string) ([]models.ClientCredit, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.client_id, c.amount, c.amount - COALESCE(SUM(a.amount), 0), c.reason, c.created_at
		FROM client_credits c
		LEFT JOIN applied_credits a ON a.credit_id = c.id
		WHERE c.client_id = $1
		GROUP BY c.id
		ORDER BY c.created_at
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for client %s: %w", clientID, err)
	}
	defer rows.Close()

	credits := []models.ClientCredit{}
	for rows.Next() {
		var c models.ClientCredit
		if err := rows.Scan(&c.ID, &c.ClientID, &c.Amount, &c.Remaining, &c.Reason, &c.CreatedAt); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// Apply consumes part of a client credit. The credit row is locked so two
// concurrent applications cannot both spend the same balance.
func (r *CreditRepository) Apply(ctx context.Context, app *models.AppliedCredit) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var amount decimal.Decimal
	err = tx.QueryRowContext(ctx, `
		SELECT c.amount
		FROM client_credits c
		JOIN charge_records r ON r.client_id = c.client_id
		WHERE c.id = $1 AND r.id = $2
		FOR UPDATE OF c
	`, app.CreditID, app.ChargeID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock credit %s: %w", app.CreditID, err)
	}

	var used decimal.Decimal
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM applied_credits WHERE credit_id = $1
	`, app.CreditID).Scan(&used); err != nil {
		return fmt.Errorf("failed to sum applications of credit %s: %w", app.CreditID, err)
	}

	remaining := amount.Sub(used)
	if remaining.LessThan(app.Amount) {
		return fmt.Errorf("%w: credit %s has %s left", billing.ErrStaleCreditApplication, app.CreditID, remaining.StringFixed(2))
	}

	app.CreatedAt = time.Now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO applied_credits (id, credit_id, charge_id, amount, category, applied_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, app.ID, app.CreditID, app.ChargeID, app.Amount, app.Category, app.AppliedBy, app.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply credit %s: %w", app.CreditID, err)
	}

	return tx.Commit()
}
