package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/models"
)

func TestCreditRepository_Apply(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCreditRepository(db)
	ctx := context.Background()

	newApplication := func(amount int64) *models.AppliedCredit {
		return &models.AppliedCredit{
			ID: "ac-1", CreditID: "credit-1", ChargeID: "charge-1",
			Amount: decimal.NewFromInt(amount), Category: models.CategoryTrip, AppliedBy: "agent-1",
		}
	}

	t.Run("enough balance", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE OF c").
			WithArgs("credit-1", "charge-1").
			WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("300.00"))
		mock.ExpectQuery("FROM applied_credits").
			WithArgs("credit-1").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("100.00"))
		mock.ExpectExec("INSERT INTO applied_credits").
			WithArgs("ac-1", "credit-1", "charge-1", "200", "trip", "agent-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Apply(ctx, newApplication(200)))
	})

	t.Run("balance spent concurrently", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE OF c").
			WithArgs("credit-1", "charge-1").
			WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("300.00"))
		mock.ExpectQuery("FROM applied_credits").
			WithArgs("credit-1").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("250.00"))
		mock.ExpectRollback()

		err := repo.Apply(ctx, newApplication(100))
		assert.ErrorIs(t, err, billing.ErrStaleCreditApplication)
		assert.Contains(t, err.Error(), "50.00")
	})

	t.Run("credit of another client", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE OF c").
			WithArgs("credit-1", "charge-1").
			WillReturnRows(sqlmock.NewRows([]string{"amount"}))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Apply(ctx, newApplication(100)), models.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditRepository_ListForClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCreditRepository(db)

	mock.ExpectQuery("FROM client_credits").
		WithArgs("client-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "amount", "remaining", "reason", "created_at"}).
			AddRow("credit-1", "client-1", "300.00", "50.00", "cancelled trip", time.Now()))

	credits, err := repo.ListForClient(context.Background(), "client-1")
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.True(t, credits[0].Remaining.Equal(decimal.NewFromInt(50)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditRepository_ListApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM applied_credits").
		WithArgs("charge-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "credit_id", "charge_id", "amount", "category", "applied_by", "created_at"}).
			AddRow("ac-1", "credit-1", "charge-1", "150.00", "trip", "agent-1", created).
			AddRow("ac-2", "credit-1", "charge-1", "50.00", "tours", "agent-2", created))

	credits, err := NewCreditRepository(db).ListApplied(context.Background(), "charge-1")
	require.NoError(t, err)
	require.Len(t, credits, 2)
	assert.Equal(t, models.CategoryTrip, credits[0].Category)
	assert.True(t, decimal.NewFromInt(150).Equal(credits[0].Amount))
	assert.Equal(t, models.CategoryTours, credits[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}
