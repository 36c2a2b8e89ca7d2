package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/backend/internal/models"
)

var chargeColumns = []string{"id", "trip_id", "client_id", "traveler_name", "trip_date", "base_fare", "discount", "free", "tours", "created_at", "updated_at"}

func TestChargeRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewChargeRepository(db)
	ctx := context.Background()
	tripDate := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("FROM charge_records").
			WithArgs("charge-1").
			WillReturnRows(sqlmock.NewRows(chargeColumns).AddRow(
				"charge-1", "trip-1", "client-1", "Ana Souza", tripDate, "1000.00", "50.00", false,
				[]byte(`[{"tour_id":"t1","name":"City Tour","charged_price":"200"}]`), time.Now(), time.Now(),
			))

		rec, err := repo.Get(ctx, "charge-1")
		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", rec.TravelerName)
		assert.True(t, rec.NetTripValue().Equal(decimal.NewFromInt(950)))
		require.Len(t, rec.Tours, 1)
		assert.Equal(t, "City Tour", rec.Tours[0].Name)
		assert.True(t, rec.Tours[0].ChargedPrice.Equal(decimal.NewFromInt(200)))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM charge_records").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(chargeColumns))

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		mock.ExpectQuery("FROM charge_records").
			WithArgs("charge-1").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(ctx, "charge-1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChargeRepository_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewChargeRepository(db)
	ctx := context.Background()
	rec := &models.ChargeRecord{ID: "charge-1", Discount: decimal.NewFromInt(100), Tours: models.TourSelections{}}

	mock.ExpectExec("UPDATE charge_records").
		WithArgs("100", false, []byte("[]"), sqlmock.AnyArg(), "charge-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(ctx, rec))
	assert.False(t, rec.UpdatedAt.IsZero())

	mock.ExpectExec("UPDATE charge_records").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(ctx, rec), models.ErrNotFound)

	mock.ExpectExec("DELETE FROM charge_records").
		WithArgs("charge-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "charge-1"))

	mock.ExpectExec("DELETE FROM charge_records").
		WithArgs("charge-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "charge-1"), models.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourRepository_ListPrices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTourRepository(db)

	mock.ExpectQuery("FROM tours").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"name", "list_price"}).
			AddRow("City Tour", "200.00").
			AddRow("Boat Ride", "150.50"))

	prices, err := repo.ListPrices(context.Background(), []string{" City Tour", "boat ride"})
	require.NoError(t, err)
	assert.Len(t, prices, 2)
	assert.True(t, prices["Boat Ride"].Equal(decimal.RequireFromString("150.50")))

	empty, err := repo.ListPrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.NoError(t, mock.ExpectationsWereMet())
}
