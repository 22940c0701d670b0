package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/marks"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MarkRepository = (*MarkRepo)(nil)

// MarkRepo persiste el conjunto de marcas: una fila por ID marcado más la versión.
type MarkRepo struct {
	pool *pgxpool.Pool
}

// NewMarkRepository construye el adaptador. Set necesita su propia transacción, por eso recibe el pool.
func NewMarkRepository(pool *pgxpool.Pool) *MarkRepo {
	return &MarkRepo{pool: pool}
}

// Get lee el conjunto vigente.
func (r *MarkRepo) Get(ctx context.Context) (marks.Set, error) {
	var version int64
	err := r.pool.QueryRow(ctx, `SELECT version FROM mark_state WHERE id = 1`).Scan(&version)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return marks.Set{}, fmt.Errorf("get mark version: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT transaction_id FROM marked_transactions ORDER BY transaction_id`)
	if err != nil {
		return marks.Set{}, fmt.Errorf("list marks: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return marks.Set{}, fmt.Errorf("scan marks: %w", err)
	}
	return marks.New(ids).WithVersion(version), nil
}

// Set reemplaza el conjunto completo en una transacción.
func (r *MarkRepo) Set(ctx context.Context, set marks.Set) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM marked_transactions`); err != nil {
		return fmt.Errorf("clear marks: %w", err)
	}
	if ids := set.IDs(); len(ids) > 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO marked_transactions (transaction_id) SELECT unnest($1::text[])`, ids); err != nil {
			return fmt.Errorf("insert marks: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO mark_state (id, version) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version`, set.Version()); err != nil {
		return fmt.Errorf("upsert mark version: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
