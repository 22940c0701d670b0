/*
Package sqlite implementa los puertos de persistencia sobre SQLite (mattn/go-sqlite3).

La base se abre en modo WAL con _txlock=immediate: cada transacción toma el
lock de escritura al empezar (BEGIN IMMEDIATE), de modo que el recálculo de
stock y el agregado de una salida no se intercalan con otro escritor.

Las fechas se guardan como TEXT UTC de ancho fijo para que ORDER BY date
respete el orden cronológico.

Uso:

	store, err := sqlite.Open("./data/almacen.db")
	if err != nil {
		return err
	}
	defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// timeLayout ancho fijo, siempre en UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ repository.TxRunner = (*Store)(nil)

// Store agrupa la conexión y expone los repositorios.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base y aplica el esquema. ":memory:" crea una base efímera.
func Open(path string) (*Store, error) {
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_txlock=immediate&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if strings.HasPrefix(path, ":memory:") {
		// Cada conexión a :memory: es una base distinta.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifica la conexión (health).
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS products (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		subwarehouse TEXT NOT NULL DEFAULT ''
	);

	-- Sin FK a products: borrar un producto conserva sus movimientos.
	CREATE TABLE IF NOT EXISTS transactions (
		id           TEXT PRIMARY KEY,
		product_id   TEXT NOT NULL,
		type         TEXT NOT NULL CHECK (type IN ('Entrada', 'Salida')),
		quantity     INTEGER NOT NULL CHECK (quantity > 0),
		date         TEXT NOT NULL,
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
		id      INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL
	);`)
	return err
}

// Products devuelve el repositorio de catálogo fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{q: s.db} }

// Transactions devuelve el registro fuera de transacción.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{q: s.db} }

// Marks devuelve el repositorio de marcas.
func (s *Store) Marks() *MarkRepo { return &MarkRepo{db: s.db} }

// Run ejecuta fn en una transacción BEGIN IMMEDIATE; Commit si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(products repository.ProductRepository, transactions repository.TransactionRepository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&ProductRepo{q: tx}, &TransactionRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
