package importer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/importer"
)

func catalog(products ...*entity.Product) importer.Catalog {
	return importer.NewCatalog(products)
}

func newReconciler() *importer.Reconciler {
	return importer.NewReconciler(importer.DefaultAliases())
}

// Escenario C: una fila válida, un producto desconocido y un código vacío.
func TestReconcile_EscenarioC(t *testing.T) {
	rows := []importer.RowRecord{
		{"id": "A", "cantidad": "5"},
		{"id": "Z", "cantidad": "3"},
		{"codigo": "", "cantidad": "1"},
	}

	res := newReconciler().Reconcile(rows, catalog(&entity.Product{ID: "A", Subwarehouse: "REFRI"}))

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, entity.TransactionDraft{
		ProductID:    "A",
		Type:         entity.TransactionEntry,
		Quantity:     5,
		Subwarehouse: "REFRI",
	}, res.Candidates[0])

	require.Len(t, res.Errors, 2)
	assert.Equal(t, importer.UnknownProduct, res.Errors[0].Reason)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, "Z", res.Errors[0].Value)
	assert.Equal(t, importer.EmptyProductID, res.Errors[1].Reason)
	assert.Equal(t, 4, res.Errors[1].Row)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 3, res.Total)
}

func TestReconcile_Clasificacion(t *testing.T) {
	products := catalog(&entity.Product{ID: "A"}, &entity.Product{ID: "00123"})

	tests := []struct {
		name string
		row  importer.RowRecord
		want importer.ErrorKind
	}{
		{name: "sin columna de código", row: importer.RowRecord{"nombre": "x", "cantidad": "1"}, want: importer.MissingIDColumn},
		{name: "sin columna de cantidad", row: importer.RowRecord{"id": "A", "total": "1"}, want: importer.MissingQuantityColumn},
		{name: "faltan ambas: gana el código", row: importer.RowRecord{"otra": "1"}, want: importer.MissingIDColumn},
		{name: "código en blanco", row: importer.RowRecord{"id": "   ", "cantidad": "1"}, want: importer.EmptyProductID},
		{name: "código nulo", row: importer.RowRecord{"id": nil, "cantidad": "1"}, want: importer.EmptyProductID},
		{name: "producto desconocido antes que cantidad inválida", row: importer.RowRecord{"id": "Q", "cantidad": "abc"}, want: importer.UnknownProduct},
		{name: "cantidad texto", row: importer.RowRecord{"id": "A", "cantidad": "abc"}, want: importer.InvalidQuantity},
		{name: "cantidad negativa", row: importer.RowRecord{"id": "A", "cantidad": "-3"}, want: importer.InvalidQuantity},
		{name: "cantidad fraccionaria", row: importer.RowRecord{"id": "A", "cantidad": 2.5}, want: importer.InvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newReconciler().Reconcile([]importer.RowRecord{tt.row}, products)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.want, res.Errors[0].Reason)
			assert.Equal(t, 2, res.Errors[0].Row, "la primera fila de datos es la línea 2")
			assert.Equal(t, tt.row, res.Errors[0].Raw)
			assert.NotEmpty(t, res.Errors[0].Message())
		})
	}
}

func TestReconcile_EncabezadosFlexibles(t *testing.T) {
	products := catalog(&entity.Product{ID: "A"}, &entity.Product{ID: "123"})

	rows := []importer.RowRecord{
		{"  CÓDIGO DE ITEM ": "A", "CANTIDAD": "2"},
		{"Item": "A", "Quantity": json.Number("3")},
		{"CODIGO": 123.0, "Cant.": 4.0},
		{"Id": " A ", "Número": "5.0"},
	}

	res := newReconciler().Reconcile(rows, products)

	require.Empty(t, res.Errors)
	require.Len(t, res.Candidates, 4)
	assert.Equal(t, 2, res.Candidates[0].Quantity)
	assert.Equal(t, 3, res.Candidates[1].Quantity)
	assert.Equal(t, "123", res.Candidates[2].ProductID, "los códigos numéricos se leen sin exponente")
	assert.Equal(t, 4, res.Candidates[2].Quantity)
	assert.Equal(t, "A", res.Candidates[3].ProductID)
	assert.Equal(t, 5, res.Candidates[3].Quantity)
}

func TestReconcile_PrioridadDeAlias(t *testing.T) {
	products := catalog(&entity.Product{ID: "A"}, &entity.Product{ID: "B"})

	// "código de item" precede a "id" en la tabla por defecto.
	res := newReconciler().Reconcile([]importer.RowRecord{
		{"id": "B", "código de item": "A", "cantidad": "1"},
	}, products)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "A", res.Candidates[0].ProductID)
}

func TestReconcile_TablaPersonalizada(t *testing.T) {
	r := importer.NewReconciler(importer.AliasTable{
		ID:       []string{" SKU ", "sku", ""},
		Quantity: []string{"unidades"},
	})

	res := r.Reconcile([]importer.RowRecord{
		{"sku": "A", "Unidades": "9"},
		{"id": "A", "cantidad": "1"},
	}, catalog(&entity.Product{ID: "A"}))

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, 9, res.Candidates[0].Quantity)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, importer.MissingIDColumn, res.Errors[0].Reason)
}

func TestReconcile_CantidadCeroSeOmite(t *testing.T) {
	res := newReconciler().Reconcile([]importer.RowRecord{
		{"id": "A", "cantidad": "0"},
		{"id": "A", "cantidad": ""},
		{"id": "A", "cantidad": nil},
		{"id": "A", "cantidad": 0.0},
	}, catalog(&entity.Product{ID: "A"}))

	assert.Empty(t, res.Candidates)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []int{2, 3, 4, 5}, res.Skipped)
}

// Toda fila cae en exactamente una clasificación.
func TestReconcile_ConteosCuadran(t *testing.T) {
	rows := []importer.RowRecord{
		{"id": "A", "cantidad": "5"},
		{"id": "A", "cantidad": "0"},
		{"id": "Z", "cantidad": "1"},
		{"cantidad": "1"},
		{"id": "A"},
		{"id": "A", "cantidad": "x"},
		{"codigo": "A", "cant.": 7},
		{"id": "", "cantidad": "2"},
	}

	res := newReconciler().Reconcile(rows, catalog(&entity.Product{ID: "A"}))

	assert.Equal(t, len(rows), res.Total)
	assert.Equal(t, res.Total, len(res.Candidates)+len(res.Errors)+len(res.Skipped))

	seen := map[int]bool{}
	for _, e := range res.Errors {
		assert.False(t, seen[e.Row], "fila %d clasificada dos veces", e.Row)
		seen[e.Row] = true
	}
	for _, line := range res.Skipped {
		assert.False(t, seen[line], "fila %d clasificada dos veces", line)
		seen[line] = true
	}
	assert.Len(t, res.Candidates, 2)
	assert.Len(t, seen, 6)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, importer.NormalizeHeader("código de item"), importer.NormalizeHeader("  CÓDIGO DE ITEM\t"))
	assert.NotEqual(t, importer.NormalizeHeader("codigo"), importer.NormalizeHeader("código"))
}
