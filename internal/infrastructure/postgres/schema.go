package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL de la aplicación. orders.product_id no lleva FOREIGN KEY a propósito:
// eliminar un producto con órdenes abiertas está permitido y la cancelación
// posterior omite la restauración de stock. El CHECK de stock es el respaldo en
// BD del invariante que el ledger mantiene en aplicación.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		brand      TEXT NOT NULL,
		price      NUMERIC(12,2) NOT NULL CHECK (price > 0),
		stock      BIGINT NOT NULL CHECK (stock >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		quantity   BIGINT NOT NULL CHECK (quantity > 0),
		customer   TEXT NOT NULL,
		order_date TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'open',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders (product_id)`,
}

// EnsureSchema crea las tablas si no existen (arranque idempotente).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
