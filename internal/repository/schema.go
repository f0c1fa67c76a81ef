package repository

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id               UUID PRIMARY KEY,
		order_ref        TEXT NOT NULL UNIQUE,
		card_type        TEXT NOT NULL,
		customer_name    TEXT NOT NULL,
		email            TEXT NOT NULL,
		phone            TEXT NOT NULL,
		niu              TEXT,
		delivery_option  TEXT NOT NULL,
		delivery_address TEXT,
		card_price       BIGINT NOT NULL DEFAULT 0,
		delivery_fee     BIGINT NOT NULL DEFAULT 0,
		niu_fee          BIGINT NOT NULL DEFAULT 0,
		total            BIGINT NOT NULL,
		payment_status   TEXT NOT NULL DEFAULT 'NOT_PAID',
		payment_method   TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id            UUID PRIMARY KEY,
		provider      TEXT NOT NULL,
		ptn           TEXT,
		trid          TEXT NOT NULL,
		order_ref     TEXT NOT NULL,
		amount        BIGINT NOT NULL,
		phone         TEXT,
		status        TEXT NOT NULL,
		error_message TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_ptn_idx ON transactions (ptn)`,
	`CREATE INDEX IF NOT EXISTS transactions_trid_idx ON transactions (trid)`,
}

// Migrate creates the orders and transactions tables inside one transaction.
func Migrate(ctx context.Context, db DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range migrations {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return tx.Commit(ctx)
}
