package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schemaStatements creates the billing tables. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tours (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		list_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS charge_records (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		traveler_name TEXT NOT NULL DEFAULT '',
		trip_date DATE NOT NULL,
		base_fare NUMERIC(12,2) NOT NULL CHECK (base_fare >= 0),
		discount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount >= 0 AND discount <= base_fare),
		free BOOLEAN NOT NULL DEFAULT FALSE,
		tours JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (trip_id, client_id)
	)`,
	`CREATE TABLE IF NOT EXISTS installments (
		id TEXT PRIMARY KEY,
		charge_id TEXT NOT NULL REFERENCES charge_records(id) ON DELETE CASCADE,
		installment_number INT NOT NULL,
		total_installments INT NOT NULL,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		due_date DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		category TEXT NOT NULL DEFAULT 'trip',
		paid_at TIMESTAMPTZ,
		method TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payment_entries (
		id TEXT PRIMARY KEY,
		charge_id TEXT NOT NULL REFERENCES charge_records(id) ON DELETE CASCADE,
		reference TEXT NOT NULL UNIQUE,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		category TEXT,
		method TEXT NOT NULL,
		paid_at TIMESTAMPTZ NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		installment_id TEXT REFERENCES installments(id) ON DELETE SET NULL,
		recorded_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payment_entries_charge ON payment_entries(charge_id)`,
	`CREATE INDEX IF NOT EXISTS idx_installments_charge ON installments(charge_id)`,
	`CREATE TABLE IF NOT EXISTS client_credits (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applied_credits (
		id TEXT PRIMARY KEY,
		credit_id TEXT NOT NULL REFERENCES client_credits(id),
		charge_id TEXT NOT NULL REFERENCES charge_records(id) ON DELETE CASCADE,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		category TEXT NOT NULL DEFAULT 'trip',
		applied_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates any missing billing table or index
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	log.Printf("[DATABASE] Schema ready (%d statements)", len(schemaStatements))
	return nil
}
