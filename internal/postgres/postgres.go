// Package postgres opens the connection pool and bootstraps the schema for
// the durable repository variants.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the tables on startup when they do not exist yet.
// seq columns keep listings in insertion order.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			price      NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			category   TEXT NOT NULL DEFAULT '',
			tags       TEXT[] NOT NULL DEFAULT '{}',
			available  BOOLEAN NOT NULL DEFAULT TRUE,
			seq        BIGSERIAL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			status      TEXT NOT NULL,
			pickup_time TIMESTAMPTZ NOT NULL,
			total       NUMERIC(10,2) NOT NULL DEFAULT 0,
			seq         BIGSERIAL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			seq          BIGSERIAL PRIMARY KEY,
			order_id     TEXT NOT NULL REFERENCES orders(id),
			menu_item_id TEXT NOT NULL,
			quantity     INTEGER NOT NULL CHECK (quantity > 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
