package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. transactions no tiene FK a products:
// borrar un producto conserva sus movimientos.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	subwarehouse TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS transactions (
	id           TEXT PRIMARY KEY,
	product_id   TEXT NOT NULL,
	type         TEXT NOT NULL CHECK (type IN ('Entrada', 'Salida')),
	quantity     INTEGER NOT NULL CHECK (quantity > 0),
	date         TIMESTAMPTZ NOT NULL,
	batch        TEXT NOT NULL DEFAULT '',
	subwarehouse TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions (product_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date, id);

CREATE TABLE IF NOT EXISTS marked_transactions (
	transaction_id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS mark_state (
	id      SMALLINT PRIMARY KEY CHECK (id = 1),
	version BIGINT NOT NULL
);`

// EnsureSchema aplica el esquema (idempotente).
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
