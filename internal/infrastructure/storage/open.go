// Package storage selecciona el adaptador de persistencia según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// Backend puertos de un adaptador abierto. Close libera conexiones.
type Backend struct {
	Driver       string
	Products     repository.ProductRepository
	Transactions repository.TransactionRepository
	Marks        repository.MarkRepository
	Tx           repository.TxRunner
	Close        func()
}

// Open abre el almacenamiento configurado y aplica el esquema si corresponde.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Backend{
			Driver:       config.DriverPostgres,
			Products:     postgres.NewProductRepository(pool),
			Transactions: postgres.NewTransactionRepository(pool),
			Marks:        postgres.NewMarkRepository(pool),
			Tx:           postgres.NewTxRunner(pool),
			Close:        pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:       config.DriverSQLite,
			Products:     store.Products(),
			Transactions: store.Transactions(),
			Marks:        store.Marks(),
			Tx:           store,
			Close:        func() { _ = store.Close() },
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		return &Backend{
			Driver:       config.DriverMemory,
			Products:     store.Products(),
			Transactions: store.Transactions(),
			Marks:        store.Marks(),
			Tx:           store,
			Close:        func() {},
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER inválido: %q", cfg.Store.Driver)
}
