package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type TourRepository struct {
	DB *sql.DB
}

func NewTourRepository(db *sql.DB) *TourRepository {
	return &TourRepository{DB: db}
}

// ListPrices returns the catalog list price of every named tour found,
// keyed by the catalog name.
func (r *TourRepository) ListPrices(ctx context.Context, names []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(names))
	if len(names) == 0 {
		return prices, nil
	}

	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(name))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, list_price
		FROM tours
		WHERE lower(name) = ANY($1)
	`, pq.Array(lowered))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tour prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var price decimal.Decimal
		if err := rows.Scan(&name, &price); err != nil {
			return nil, err
		}
		prices[name] = price
	}
	return prices, rows.Err()
}
