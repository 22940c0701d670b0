package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del registro de movimientos sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// List devuelve todos los movimientos por fecha ascendente.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, type, quantity, date, batch, subwarehouse, notes
		FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.Date, &t.Batch, &t.Subwarehouse, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// StockOf suma entradas menos salidas del producto. La suma se lee como NUMERIC
// (codec shopspring/decimal registrado en el pool).
func (r *TransactionRepo) StockOf(ctx context.Context, productID string) (int, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = $2 THEN -quantity ELSE quantity END), 0)::numeric
		FROM transactions WHERE product_id = $1`,
		productID, string(entity.TransactionExit),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("stock of %s: %w", productID, err)
	}
	return int(total.IntPart()), nil
}

// Append inserta los movimientos en un solo batch. Dentro de TxRunner es atómico.
func (r *TransactionRepo) Append(ctx context.Context, txs ...*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	if len(txs) == 1 {
		return r.insert(ctx, txs[0])
	}
	batch := &pgx.Batch{}
	for _, t := range txs {
		batch.Queue(insertTransaction, t.ID, t.ProductID, string(t.Type), t.Quantity, t.Date, t.Batch, t.Subwarehouse, t.Notes)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range txs {
		if _, err := br.Exec(); err != nil {
			return appendError(err)
		}
	}
	return nil
}

const insertTransaction = `
	INSERT INTO transactions (id, product_id, type, quantity, date, batch, subwarehouse, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *TransactionRepo) insert(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, insertTransaction,
		t.ID, t.ProductID, string(t.Type), t.Quantity, t.Date, t.Batch, t.Subwarehouse, t.Notes)
	if err != nil {
		return appendError(err)
	}
	return nil
}

func appendError(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return fmt.Errorf("insert transaction: %w", err)
}

// Delete elimina un movimiento por ID.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
