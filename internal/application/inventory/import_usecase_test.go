package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/importer"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

type importFixture struct {
	uc    *inventory.ImportUseCase
	store *memory.Store
	now   *time.Time
}

func newImportFixture(t *testing.T, runner repository.TxRunner) importFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "A", Name: "Alcohol", Subwarehouse: "REFRI"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "B", Name: "Gasas", Subwarehouse: "ESTANTE"}))
	if runner == nil {
		runner = store
	}

	now := fixedNow
	uc := inventory.NewImportUseCase(runner, store.Products(), importer.DefaultAliases(), 10*time.Minute, zerolog.Nop())
	uc.SetClock(func() time.Time { return now }, sequentialIDs())
	return importFixture{uc: uc, store: store, now: &now}
}

func scenarioCRows() []importer.RowRecord {
	return []importer.RowRecord{
		{"id": "A", "cantidad": "5"},
		{"id": "Z", "cantidad": "3"},
		{"codigo": "", "cantidad": "1"},
		{"id": "B", "cantidad": "0"},
	}
}

func TestImport_PreviewNoEscribe(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, nil)

	p, err := f.uc.Preview(ctx, scenarioCRows())
	require.NoError(t, err)
	assert.Equal(t, "tx-1", p.ID)
	assert.Equal(t, fixedNow.Add(10*time.Minute), p.ExpiresAt)
	assert.Len(t, p.Result.Candidates, 1)
	assert.Len(t, p.Result.Errors, 2)
	assert.Equal(t, []int{5}, p.Result.Skipped)

	txs, err := f.store.Transactions().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestImport_Confirm(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, nil)

	p, err := f.uc.Preview(ctx, []importer.RowRecord{
		{"id": "A", "cantidad": "5"},
		{"id": "B", "cantidad": "2"},
	})
	require.NoError(t, err)

	txs, err := f.uc.Confirm(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, entity.TransactionEntry, tx.Type)
		assert.Equal(t, fixedNow, tx.Date)
	}
	assert.Equal(t, "ESTANTE", txs[1].Subwarehouse)

	stored, err := f.store.Transactions().List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	_, err = f.uc.Confirm(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrImportExpired, "no se confirma dos veces")
}

func TestImport_SinCandidatos(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, nil)

	p, err := f.uc.Preview(ctx, []importer.RowRecord{{"id": "Z", "cantidad": "1"}})
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNothingToImport)

	// Sigue pendiente: el operador puede revisarla y descartarla.
	got, err := f.uc.Get(p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Result.Errors, 1)
	_, err = f.uc.Confirm(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNothingToImport)
	require.NoError(t, f.uc.Discard(p.ID))
	_, err = f.uc.Get(p.ID)
	assert.ErrorIs(t, err, domain.ErrImportExpired)
}

func TestImport_Discard(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, nil)

	p, err := f.uc.Preview(ctx, scenarioCRows())
	require.NoError(t, err)

	require.NoError(t, f.uc.Discard(p.ID))
	assert.ErrorIs(t, f.uc.Discard(p.ID), domain.ErrImportExpired)
	_, err = f.uc.Confirm(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrImportExpired)
}

func TestImport_Expira(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, nil)

	p, err := f.uc.Preview(ctx, scenarioCRows())
	require.NoError(t, err)

	*f.now = fixedNow.Add(10 * time.Minute)
	_, err = f.uc.Get(p.ID)
	require.NoError(t, err, "vence después de ExpiresAt, no en el instante")

	*f.now = fixedNow.Add(11 * time.Minute)
	_, err = f.uc.Get(p.ID)
	assert.ErrorIs(t, err, domain.ErrImportExpired)
	_, err = f.uc.Confirm(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrImportExpired)
}

// brokenRunner simula una caída del almacenamiento al confirmar.
type brokenRunner struct{}

func (brokenRunner) Run(context.Context, func(repository.ProductRepository, repository.TransactionRepository) error) error {
	return errors.New("almacenamiento caído")
}

func TestImport_FalloAlConfirmarConservaPendiente(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t, brokenRunner{})

	p, err := f.uc.Preview(ctx, scenarioCRows())
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, p.ID)
	require.Error(t, err)

	again, err := f.uc.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Result, again.Result)

	stored, err := f.store.Transactions().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
