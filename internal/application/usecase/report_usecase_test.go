package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

type fakeRenderer struct {
	got ports.StockReport
	err error
}

func (f *fakeRenderer) RenderStockReport(_ context.Context, r ports.StockReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), f.err
}

func TestReport_StockPDF_UsaVistaFiltrada(t *testing.T) {
	renderer := &fakeRenderer{}
	uc := usecase.NewReportUseCase(renderer, newInventory(t), inventory.NewViewService(), "Central")

	doc, err := uc.StockPDF(context.Background(), query.StockFilter{Buckets: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "Central", renderer.got.Warehouse)
	assert.Empty(t, renderer.got.Rows, "el filtro se aplica antes de renderizar")
	assert.False(t, renderer.got.Degraded)

	_, err = uc.StockPDF(context.Background(), query.StockFilter{})
	require.NoError(t, err)
	require.Len(t, renderer.got.Rows, 1)
	assert.Equal(t, 5, renderer.got.Rows[0].Stock)
}

func TestReport_StockPDF_Error(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("fuente no encontrada")}
	uc := usecase.NewReportUseCase(renderer, newInventory(t), inventory.NewViewService(), "Central")

	_, err := uc.StockPDF(context.Background(), query.StockFilter{})
	assert.ErrorIs(t, err, renderer.err)
}
