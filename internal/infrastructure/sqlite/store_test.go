package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/almacen-api/internal/infrastructure/storetest"
)

func TestStore_Contrato(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Stores {
		s, err := sqlite.Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return storetest.Stores{
			Products:     s.Products(),
			Transactions: s.Transactions(),
			Marks:        s.Marks(),
			Tx:           s,
		}
	})
}

func TestStore_PersisteEntreAperturas(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "almacen.db")
	at := time.Date(2024, 1, 2, 3, 4, 5, 600, time.FixedZone("COT", -5*3600))

	s, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "A", Name: "Alcohol", Subwarehouse: "REFRI"}))
	require.NoError(t, s.Transactions().Append(ctx, &entity.Transaction{
		ID: "t1", ProductID: "A", Type: entity.TransactionEntry, Quantity: 4, Date: at, Notes: "inicial",
	}))
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.Transactions().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Date.Equal(at), "la fecha conserva el instante")
	assert.Equal(t, "inicial", list[0].Notes)
	require.NoError(t, s.Ping(ctx))
}
