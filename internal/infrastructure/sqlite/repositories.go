package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/marks"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.MarkRepository        = (*MarkRepo)(nil)
)

// ProductRepo catálogo sobre SQLite.
type ProductRepo struct {
	q querier
}

// List devuelve el catálogo ordenado por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, subwarehouse FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Subwarehouse); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRowContext(ctx, `SELECT id, name, subwarehouse FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Subwarehouse)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetForUpdate es un SELECT simple: la transacción ya tiene el lock de escritura (BEGIN IMMEDIATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Create devuelve domain.ErrDuplicate si el ID ya existe.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (id, name, subwarehouse) VALUES (?, ?, ?)`,
		product.ID, product.Name, product.Subwarehouse)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update actualiza nombre y subalmacén.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET name = ?, subwarehouse = ? WHERE id = ?`,
		product.Name, product.Subwarehouse, product.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina el producto; sus movimientos quedan en el registro.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransactionRepo registro de movimientos sobre SQLite.
type TransactionRepo struct {
	q querier
}

// List devuelve los movimientos por fecha ascendente.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, product_id, type, quantity, date, batch, subwarehouse, notes
		FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var (
			t    entity.Transaction
			kind string
			date string
		)
		if err := rows.Scan(&t.ID, &t.ProductID, &kind, &t.Quantity, &date, &t.Batch, &t.Subwarehouse, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = entity.TransactionType(kind)
		if t.Date, err = time.Parse(timeLayout, date); err != nil {
			return nil, fmt.Errorf("parse date of %s: %w", t.ID, err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// StockOf suma entradas menos salidas del producto.
func (r *TransactionRepo) StockOf(ctx context.Context, productID string) (int, error) {
	var stock int
	err := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = ? THEN -quantity ELSE quantity END), 0)
		FROM transactions WHERE product_id = ?`,
		string(entity.TransactionExit), productID).Scan(&stock)
	if err != nil {
		return 0, fmt.Errorf("stock of %s: %w", productID, err)
	}
	return stock, nil
}

// Append inserta los movimientos; dentro de Run el lote es atómico.
func (r *TransactionRepo) Append(ctx context.Context, txs ...*entity.Transaction) error {
	for _, t := range txs {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO transactions (id, product_id, type, quantity, date, batch, subwarehouse, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ProductID, string(t.Type), t.Quantity, t.Date.UTC().Format(timeLayout),
			t.Batch, t.Subwarehouse, t.Notes)
		if err != nil {
			if isConstraintViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res)
}

// MarkRepo conjunto de marcas sobre SQLite.
type MarkRepo struct {
	db *sql.DB
}

// Get lee el conjunto vigente.
func (r *MarkRepo) Get(ctx context.Context) (marks.Set, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `SELECT version FROM mark_state WHERE id = 1`).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return marks.Set{}, fmt.Errorf("get mark version: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT transaction_id FROM marked_transactions`)
	if err != nil {
		return marks.Set{}, fmt.Errorf("list marks: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return marks.Set{}, fmt.Errorf("scan mark: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return marks.Set{}, err
	}
	return marks.New(ids).WithVersion(version), nil
}

// Set reemplaza el conjunto completo en una transacción.
func (r *MarkRepo) Set(ctx context.Context, set marks.Set) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM marked_transactions`); err != nil {
		return fmt.Errorf("clear marks: %w", err)
	}
	for _, id := range set.IDs() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO marked_transactions (transaction_id) VALUES (?)`, id); err != nil {
			return fmt.Errorf("insert mark: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO mark_state (id, version) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET version = excluded.version`, set.Version()); err != nil {
		return fmt.Errorf("upsert mark version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
