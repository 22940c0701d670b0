package inventory_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

func TestWriteStockCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []query.StockRow{{Product: entity.Product{ID: "007", Name: "Tubos, tapa lila", Subwarehouse: "ESTANTE"}, Stock: 12}}

	require.NoError(t, inventory.WriteStockCSV(&buf, rows))
	assert.Equal(t,
		"ITEM,NOMBRE DEL PRODUCTO,SUBALMACÉN,STOCK ACTUAL\n"+
			"007,\"Tubos, tapa lila\",ESTANTE,12\n",
		buf.String())
}

func TestWriteEntriesCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []query.TransactionRow{{
		Transaction: &entity.Transaction{ID: "e1", ProductID: "A", Quantity: 5, Date: time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)},
		ProductName: "Alcohol",
	}}

	require.NoError(t, inventory.WriteEntriesCSV(&buf, rows))
	assert.Equal(t, "FECHA,ITEM,NOMBRE DEL PRODUCTO,CANTIDAD\n9/3/2024,A,Alcohol,5\n", buf.String())
}

func TestWriteExitsCSV_CodigoComoFormula(t *testing.T) {
	var buf bytes.Buffer
	rows := []query.TransactionRow{{
		Transaction: &entity.Transaction{ID: "s1", ProductID: "00123", Quantity: 2, Batch: "L-9"},
	}}

	require.NoError(t, inventory.WriteExitsCSV(&buf, rows))
	assert.Equal(t, "ITEM,LOTE,CANTIDAD\n\"=\"\"00123\"\"\",L-9,2\n", buf.String())
}

func TestWriteExitsCSV_ComillasEnElCodigo(t *testing.T) {
	var buf bytes.Buffer
	rows := []query.TransactionRow{{
		Transaction: &entity.Transaction{ID: "s1", ProductID: `AB"1`, Quantity: 1, Batch: "L-1"},
	}}

	require.NoError(t, inventory.WriteExitsCSV(&buf, rows))
	// Celda: ="AB""1" (comilla interna duplicada dentro de la fórmula).
	assert.Equal(t, "ITEM,LOTE,CANTIDAD\n\"=\"\"AB\"\"\"\"1\"\"\",L-1,1\n", buf.String())
}

func TestWriteCSV_VistaVacia(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, inventory.WriteExitsCSV(&buf, nil))
	assert.Equal(t, "ITEM,LOTE,CANTIDAD\n", buf.String())
}
