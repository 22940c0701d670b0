package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

var (
	day1 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 5, 2, 15, 30, 0, 0, time.UTC)
	day3 = time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
)

func sampleProducts() []*entity.Product {
	return []*entity.Product{
		{ID: "IE-001", Name: "Agua destilada", Subwarehouse: "REFRI"},
		{ID: "IE-002", Name: "Tubos EDTA", Subwarehouse: "ESTANTE"},
		{ID: "IE-003", Name: "Reactivo ANA", Subwarehouse: "REFRI"},
	}
}

func sampleTransactions() []*entity.Transaction {
	return []*entity.Transaction{
		{ID: "t1", ProductID: "IE-001", Type: entity.TransactionEntry, Quantity: 10, Date: day1, Subwarehouse: "REFRI"},
		{ID: "t2", ProductID: "IE-002", Type: entity.TransactionEntry, Quantity: 4, Date: day2, Subwarehouse: "ESTANTE"},
		{ID: "t3", ProductID: "IE-001", Type: entity.TransactionExit, Quantity: 3, Date: day2, Batch: "L-77", Subwarehouse: "REFRI"},
		{ID: "t4", ProductID: "IE-002", Type: entity.TransactionExit, Quantity: 1, Date: day3, Batch: "X9", Subwarehouse: "ESTANTE"},
		{ID: "t5", ProductID: "BORRADO", Type: entity.TransactionEntry, Quantity: 2, Date: day3},
	}
}

func stockRows(stock ...int) []query.StockRow {
	rows := make([]query.StockRow, 0, len(stock))
	for i, s := range stock {
		rows = append(rows, query.StockRow{Product: entity.Product{ID: string(rune('A' + i))}, Stock: s})
	}
	return rows
}

// ──────────────────────────────────────────────────────────────────────────────
// Vista de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterStock_SinFiltrosDevuelveTodo(t *testing.T) {
	rows := query.BuildStockRows(sampleProducts(), map[string]int{"IE-001": 7, "IE-002": 3})

	got := query.FilterStock(rows, query.StockFilter{Subwarehouse: query.AllSubwarehouses})
	assert.Equal(t, rows, got)

	got = query.FilterStock(rows, query.StockFilter{Search: []string{""}})
	assert.Equal(t, rows, got)
}

func TestFilterStock_Busqueda(t *testing.T) {
	rows := query.BuildStockRows(sampleProducts(), map[string]int{})

	byName := query.FilterStock(rows, query.StockFilter{Search: []string{"AGUA"}})
	require.Len(t, byName, 1)
	assert.Equal(t, "IE-001", byName[0].ID)

	bySubwarehouse := query.FilterStock(rows, query.StockFilter{Search: []string{"refri"}})
	assert.Len(t, bySubwarehouse, 2)

	anyTerm := query.FilterStock(rows, query.StockFilter{Search: []string{"edta", "ana"}})
	assert.Len(t, anyTerm, 2, "los términos se combinan con OR")
}

func TestFilterStock_Subalmacen(t *testing.T) {
	rows := query.BuildStockRows(sampleProducts(), map[string]int{})

	got := query.FilterStock(rows, query.StockFilter{Subwarehouse: "ESTANTE"})
	require.Len(t, got, 1)
	assert.Equal(t, "IE-002", got[0].ID)

	assert.Empty(t, query.FilterStock(rows, query.StockFilter{Subwarehouse: "estante"}), "igualdad exacta")
}

func TestFilterStock_RangoAbierto(t *testing.T) {
	rows := stockRows(4, 5, 6, 100)

	got := query.FilterStock(rows, query.StockFilter{Buckets: []int{5}})

	var stocks []int
	for _, r := range got {
		stocks = append(stocks, r.Stock)
	}
	assert.Equal(t, []int{5, 6, 100}, stocks)
}

func TestFilterStock_RangosExactosConOR(t *testing.T) {
	rows := stockRows(0, 1, 2, 3, 4, 5, 9)

	got := query.FilterStock(rows, query.StockFilter{Buckets: []int{0, 3}})

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Stock)
	assert.Equal(t, 3, got[1].Stock)
}

func TestFilterStock_DimensionesConAND(t *testing.T) {
	rows := query.BuildStockRows(sampleProducts(), map[string]int{"IE-001": 7, "IE-003": 0})

	got := query.FilterStock(rows, query.StockFilter{
		Subwarehouse: "REFRI",
		Buckets:      []int{0},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "IE-003", got[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildTransactionRows_DescartaHuerfanos(t *testing.T) {
	entries := query.BuildTransactionRows(sampleTransactions(), sampleProducts(), entity.TransactionEntry)

	require.Len(t, entries, 2)
	assert.Equal(t, "Agua destilada", entries[0].ProductName)
	for _, r := range entries {
		assert.NotEqual(t, "BORRADO", r.ProductID)
	}
}

func TestFilterEntries_SinFiltrosDevuelveTodo(t *testing.T) {
	rows := query.BuildTransactionRows(sampleTransactions(), sampleProducts(), entity.TransactionEntry)
	assert.Equal(t, rows, query.FilterEntries(rows, query.NoRange().WithSearch(nil)))
}

func TestFilterEntries_BusquedaNoMiraSubalmacen(t *testing.T) {
	rows := query.BuildTransactionRows(sampleTransactions(), sampleProducts(), entity.TransactionEntry)

	assert.Empty(t, query.FilterEntries(rows, query.TransactionFilter{Search: []string{"refri"}}))
	assert.Len(t, query.FilterEntries(rows, query.TransactionFilter{Search: []string{"ie-00"}}), 2)
}

func TestFilterExits_BusquedaPorLote(t *testing.T) {
	rows := query.BuildTransactionRows(sampleTransactions(), sampleProducts(), entity.TransactionExit)

	got := query.FilterExits(rows, query.TransactionFilter{Search: []string{"l-7"}})
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].ID)

	got = query.FilterExits(rows, query.TransactionFilter{Search: []string{"estante"}})
	require.Len(t, got, 1)
	assert.Equal(t, "t4", got[0].ID)
}

func TestFilterExits_RangoDeFechasInclusivo(t *testing.T) {
	rows := query.BuildTransactionRows(sampleTransactions(), sampleProducts(), entity.TransactionExit)

	from, to := day2, day2
	got := query.FilterExits(rows, query.TransactionFilter{From: &from, To: &to})
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].ID)

	onlyFrom := day3
	got = query.FilterExits(rows, query.TransactionFilter{From: &onlyFrom})
	require.Len(t, got, 1)
	assert.Equal(t, "t4", got[0].ID)

	onlyTo := day2.Add(-time.Nanosecond)
	assert.Empty(t, query.FilterExits(rows, query.TransactionFilter{To: &onlyTo}))
}

func TestFilterExits_SubalmacenYBusqueda(t *testing.T) {
	rows := query.BuildTransactionRows(sampleTransactions(), sampleProducts(), entity.TransactionExit)

	got := query.FilterExits(rows, query.TransactionFilter{Search: []string{"ie-"}, Subwarehouse: "REFRI"})
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].ID)
}

func TestSubwarehouses(t *testing.T) {
	assert.Equal(t, []string{"all", "ESTANTE", "REFRI"}, query.Subwarehouses(sampleProducts()))
	assert.Equal(t, []string{"all"}, query.Subwarehouses(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros en edición vs aplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestStaged(t *testing.T) {
	s := query.NewStaged(query.NoRange())
	from := day1

	s.Stage(query.RangeFilter{Subwarehouse: "REFRI", From: &from})
	assert.Equal(t, query.NoRange(), s.Applied(), "editar no filtra hasta confirmar")
	assert.Equal(t, "REFRI", s.Pending().Subwarehouse)

	s.Apply()
	assert.Equal(t, "REFRI", s.Applied().Subwarehouse)
	assert.Equal(t, &from, s.Applied().From)

	s.Clear()
	assert.Equal(t, query.NoRange(), s.Applied())
	assert.Equal(t, query.NoRange(), s.Pending())
}
