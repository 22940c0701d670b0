// Package storetest contiene las pruebas de contrato que todo adaptador de
// persistencia debe pasar. Cada adaptador las invoca desde su propio _test.go.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/marks"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Stores agrupa los puertos de un adaptador recién creado y vacío.
type Stores struct {
	Products     repository.ProductRepository
	Transactions repository.TransactionRepository
	Marks        repository.MarkRepository
	Tx           repository.TxRunner
}

// Factory crea un adaptador vacío por cada subtest.
type Factory func(t *testing.T) Stores

var base = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func tx(id, productID string, kind entity.TransactionType, qty int, at time.Time) *entity.Transaction {
	t := &entity.Transaction{ID: id, ProductID: productID, Type: kind, Quantity: qty, Date: at}
	if kind == entity.TransactionExit {
		t.Batch = "L1"
	}
	return t
}

// Run ejecuta el contrato completo.
func Run(t *testing.T, newStores Factory) {
	t.Run("catálogo", func(t *testing.T) { testProducts(t, newStores(t)) })
	t.Run("registro", func(t *testing.T) { testTransactions(t, newStores(t)) })
	t.Run("transacción confirma", func(t *testing.T) { testTxCommit(t, newStores(t)) })
	t.Run("transacción revierte", func(t *testing.T) { testTxRollback(t, newStores(t)) })
	t.Run("marcas", func(t *testing.T) { testMarks(t, newStores(t)) })
}

func testProducts(t *testing.T, s Stores) {
	ctx := context.Background()

	require.NoError(t, s.Products.Create(ctx, &entity.Product{ID: "B", Name: "Guantes", Subwarehouse: "ESTANTE"}))
	require.NoError(t, s.Products.Create(ctx, &entity.Product{ID: "A", Name: "Alcohol", Subwarehouse: "REFRI"}))
	assert.ErrorIs(t, s.Products.Create(ctx, &entity.Product{ID: "A", Name: "Otro"}), domain.ErrDuplicate)

	list, err := s.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].ID)
	assert.Equal(t, "B", list[1].ID)

	p, err := s.Products.GetByID(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Alcohol", p.Name)

	missing, err := s.Products.GetByID(ctx, "Z")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Products.Update(ctx, &entity.Product{ID: "A", Name: "Alcohol 70%", Subwarehouse: "ESTANTE"}))
	p, err = s.Products.GetByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "Alcohol 70%", p.Name)
	assert.Equal(t, "ESTANTE", p.Subwarehouse)
	assert.ErrorIs(t, s.Products.Update(ctx, &entity.Product{ID: "Z"}), domain.ErrNotFound)

	require.NoError(t, s.Products.Delete(ctx, "B"))
	assert.ErrorIs(t, s.Products.Delete(ctx, "B"), domain.ErrNotFound)
	list, err = s.Products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testTransactions(t *testing.T, s Stores) {
	ctx := context.Background()

	require.NoError(t, s.Transactions.Append(ctx,
		tx("t2", "A", entity.TransactionExit, 3, base.Add(time.Hour)),
		tx("t1", "A", entity.TransactionEntry, 10, base),
		tx("t3", "B", entity.TransactionEntry, 4, base.Add(time.Hour)),
	))

	list, err := s.Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.True(t, list[0].Date.Equal(base))
	assert.Equal(t, "L1", list[1].Batch)
	assert.Equal(t, entity.TransactionExit, list[1].Type)

	stock, err := s.Transactions.StockOf(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	stock, err = s.Transactions.StockOf(ctx, "sin-movimientos")
	require.NoError(t, err)
	assert.Zero(t, stock)

	require.NoError(t, s.Transactions.Delete(ctx, "t2"))
	assert.ErrorIs(t, s.Transactions.Delete(ctx, "t2"), domain.ErrNotFound)
	stock, err = s.Transactions.StockOf(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func testTxCommit(t *testing.T, s Stores) {
	ctx := context.Background()
	require.NoError(t, s.Products.Create(ctx, &entity.Product{ID: "A", Name: "Alcohol"}))

	err := s.Tx.Run(ctx, func(products repository.ProductRepository, transactions repository.TransactionRepository) error {
		p, err := products.GetForUpdate(ctx, "A")
		if err != nil {
			return err
		}
		require.NotNil(t, p)
		return transactions.Append(ctx,
			tx("e1", "A", entity.TransactionEntry, 2, base),
			tx("e2", "A", entity.TransactionEntry, 3, base),
		)
	})
	require.NoError(t, err)

	stock, err := s.Transactions.StockOf(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 5, stock)
}

func testTxRollback(t *testing.T, s Stores) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Tx.Run(ctx, func(products repository.ProductRepository, transactions repository.TransactionRepository) error {
		if err := products.Create(ctx, &entity.Product{ID: "A", Name: "Alcohol"}); err != nil {
			return err
		}
		if err := transactions.Append(ctx, tx("e1", "A", entity.TransactionEntry, 2, base)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.Transactions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "un lote que falla no deja movimientos")
	p, err := s.Products.GetByID(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, p)

	// Un ID repetido dentro del lote también revierte todo.
	err = s.Tx.Run(ctx, func(_ repository.ProductRepository, transactions repository.TransactionRepository) error {
		return transactions.Append(ctx,
			tx("d1", "A", entity.TransactionEntry, 1, base),
			tx("d1", "A", entity.TransactionEntry, 1, base),
		)
	})
	assert.Error(t, err)
	list, err = s.Transactions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testMarks(t *testing.T, s Stores) {
	ctx := context.Background()

	empty, err := s.Marks.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	set := marks.New(nil).Toggle("t1").Toggle("t9")
	require.NoError(t, s.Marks.Set(ctx, set))

	got, err := s.Marks.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t9"}, got.IDs())
	assert.Equal(t, set.Version(), got.Version())

	require.NoError(t, s.Marks.Set(ctx, got.Toggle("t1")))
	got, err = s.Marks.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t9"}, got.IDs())
	assert.Equal(t, int64(3), got.Version())
}
