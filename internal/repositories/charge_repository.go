package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tourdesk/backend/internal/models"
)

type ChargeRepository struct {
	DB *sql.DB
}

func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{DB: db}
}

func (r *ChargeRepository) Get(ctx context.Context, chargeID string) (*models.ChargeRecord, error) {
	rec := &models.ChargeRecord{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, trip_id, client_id, traveler_name, trip_date, base_fare, discount, free, tours, created_at, updated_at
		FROM charge_records
		WHERE id = $1
	`, chargeID).Scan(
		&rec.ID, &rec.TripID, &rec.ClientID, &rec.TravelerName, &rec.TripDate,
		&rec.BaseFare, &rec.Discount, &rec.Free, &rec.Tours, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch charge record %s: %w", chargeID, err)
	}
	return rec, nil
}

// Update writes the editable fields (discount, free flag and tours).
func (r *ChargeRepository) Update(ctx context.Context, rec *models.ChargeRecord) error {
	rec.UpdatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx, `
		UPDATE charge_records
		SET discount = $1, free = $2, tours = $3, updated_at = $4
		WHERE id = $5
	`, rec.Discount, rec.Free, rec.Tours, rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update charge record %s: %w", rec.ID, err)
	}
	return expectOneRow(result)
}

// Delete removes a charge record. Payments, installments and applied credits
// go with it through ON DELETE CASCADE.
func (r *ChargeRepository) Delete(ctx context.Context, chargeID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM charge_records WHERE id = $1`, chargeID)
	if err != nil {
		return fmt.Errorf("failed to delete charge record %s: %w", chargeID, err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
