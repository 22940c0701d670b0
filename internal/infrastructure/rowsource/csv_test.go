package rowsource_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/importer"
	"github.com/jhoicas/almacen-api/internal/infrastructure/rowsource"
)

func TestDecodeCSV_Coma(t *testing.T) {
	rows, err := rowsource.DecodeCSV(strings.NewReader("ID,Cantidad\nA,5\n\nB,\"1,000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, []importer.RowRecord{
		{"ID": "A", "Cantidad": "5"},
		{"ID": "B", "Cantidad": "1,000"},
	}, rows)
}

func TestDecodeCSV_PuntoYComaExcel(t *testing.T) {
	// Excel en español exporta con ';' y Windows-1252: "Código de item;Cantidad".
	latin1 := []byte("C\xf3digo de item;Cantidad\r\n00123;4\r\n;;\r\n")

	rows, err := rowsource.DecodeCSV(bytes.NewReader(latin1))
	require.NoError(t, err)

	require.Len(t, rows, 1, "las líneas solo con separadores se descartan")
	assert.Equal(t, importer.RowRecord{"Código de item": "00123", "Cantidad": "4"}, rows[0])
}

func TestDecodeCSV_BOMyTabulador(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("item\tcant.\nA\t2\n")...)

	rows, err := rowsource.DecodeCSV(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []importer.RowRecord{{"item": "A", "cant.": "2"}}, rows)
}

func TestDecodeCSV_FilaCorta(t *testing.T) {
	rows, err := rowsource.DecodeCSV(strings.NewReader("id,cantidad,notas\nA\n"))
	require.NoError(t, err)
	assert.Equal(t, []importer.RowRecord{{"id": "A"}}, rows)
}

func TestDecodeCSV_SinEncabezado(t *testing.T) {
	_, err := rowsource.DecodeCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, rowsource.ErrNoHeader)
}

// De punta a punta: archivo → filas → reconciliación.
func TestDecodeCSV_ConReconciliador(t *testing.T) {
	rows, err := rowsource.DecodeCSV(strings.NewReader("Código de item;Cantidad\nA;5\nZ;3\n;1\nA;0\n"))
	require.NoError(t, err)

	res := importer.NewReconciler(importer.DefaultAliases()).Reconcile(rows, importer.Catalog{
		"A": {ID: "A", Name: "Alcohol", Subwarehouse: "REFRI"},
	})

	assert.Len(t, res.Candidates, 1)
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, []int{5}, res.Skipped)
}
