// Package importer convierte filas crudas de una hoja de cálculo en entradas
// candidatas, clasificando cada fila rechazada con un motivo concreto.
//
// La reconciliación es una función pura: no persiste nada. El registro de los
// candidatos es un paso aparte, atómico sobre el lote y disparado por el operador.
package importer

import (
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// firstDataLine es el número de línea de la primera fila de datos: la línea 1 es el encabezado.
const firstDataLine = 2

// ErrorKind clasifica por qué una fila no produjo un candidato.
type ErrorKind string

// Motivos de rechazo, en el orden en que se evalúan.
const (
	MissingIDColumn       ErrorKind = "MISSING_ID_COLUMN"
	MissingQuantityColumn ErrorKind = "MISSING_QUANTITY_COLUMN"
	EmptyProductID        ErrorKind = "EMPTY_PRODUCT_ID"
	UnknownProduct        ErrorKind = "UNKNOWN_PRODUCT"
	InvalidQuantity       ErrorKind = "INVALID_QUANTITY"
)

// RowError describe una fila rechazada.
type RowError struct {
	Row    int       `json:"row"`
	Reason ErrorKind `json:"reason"`
	Value  string    `json:"value,omitempty"` // valor ofensivo (código o cantidad), si aplica
	Raw    RowRecord `json:"raw"`
}

// Message devuelve el texto para el operador.
func (e RowError) Message() string {
	switch e.Reason {
	case MissingIDColumn:
		return "No se encontró la columna de código ('ID', 'Codigo', etc.)."
	case MissingQuantityColumn:
		return "No se encontró la columna de cantidad ('Cantidad', 'Numero', etc.)."
	case EmptyProductID:
		return "El código del producto está vacío."
	case UnknownProduct:
		return fmt.Sprintf("El producto con código '%s' no existe en el sistema.", e.Value)
	case InvalidQuantity:
		return fmt.Sprintf("La cantidad '%s' no es un número válido o es negativo.", e.Value)
	}
	return string(e.Reason)
}

// ProductLookup resuelve un código de ítem contra el catálogo.
type ProductLookup interface {
	Lookup(id string) (*entity.Product, bool)
}

// Catalog es un ProductLookup en memoria.
type Catalog map[string]*entity.Product

// NewCatalog indexa los productos por ID.
func NewCatalog(products []*entity.Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.ID] = p
	}
	return c
}

// Lookup implementa ProductLookup.
func (c Catalog) Lookup(id string) (*entity.Product, bool) {
	p, ok := c[id]
	return p, ok
}

// Result agrupa el resultado de una reconciliación. Cada fila de entrada queda en
// exactamente una clasificación: candidato, error u omitida (cantidad 0).
type Result struct {
	Candidates []entity.TransactionDraft
	Errors     []RowError
	Skipped    []int // números de línea con cantidad 0
	Total      int
}

// Reconciler aplica la tabla de alias y las reglas de clasificación.
type Reconciler struct {
	aliases AliasTable
}

// NewReconciler construye el reconciliador con la tabla dada (ya normalizada aquí).
func NewReconciler(aliases AliasTable) *Reconciler {
	return &Reconciler{aliases: aliases.normalized()}
}

// Reconcile clasifica todas las filas; una fila inválida nunca detiene el resto.
func (r *Reconciler) Reconcile(rows []RowRecord, products ProductLookup) Result {
	res := Result{Total: len(rows)}
	for i, row := range rows {
		line := i + firstDataLine
		draft, rowErr, skipped := r.classify(row, products)
		switch {
		case rowErr != nil:
			rowErr.Row = line
			res.Errors = append(res.Errors, *rowErr)
		case skipped:
			res.Skipped = append(res.Skipped, line)
		default:
			res.Candidates = append(res.Candidates, draft)
		}
	}
	return res
}

func (r *Reconciler) classify(row RowRecord, products ProductLookup) (entity.TransactionDraft, *RowError, bool) {
	idx := headerIndex(row)

	idValue, ok := lookup(idx, r.aliases.ID)
	if !ok {
		return entity.TransactionDraft{}, &RowError{Reason: MissingIDColumn, Raw: row}, false
	}
	qtyValue, ok := lookup(idx, r.aliases.Quantity)
	if !ok {
		return entity.TransactionDraft{}, &RowError{Reason: MissingQuantityColumn, Raw: row}, false
	}

	productID := strings.TrimSpace(rawString(idValue))
	if productID == "" {
		return entity.TransactionDraft{}, &RowError{Reason: EmptyProductID, Raw: row}, false
	}
	product, ok := products.Lookup(productID)
	if !ok {
		return entity.TransactionDraft{}, &RowError{Reason: UnknownProduct, Value: productID, Raw: row}, false
	}
	quantity, ok := parseQuantity(qtyValue)
	if !ok {
		return entity.TransactionDraft{}, &RowError{Reason: InvalidQuantity, Value: rawString(qtyValue), Raw: row}, false
	}
	if quantity == 0 {
		return entity.TransactionDraft{}, nil, true
	}

	return entity.TransactionDraft{
		ProductID:    product.ID,
		Type:         entity.TransactionEntry,
		Quantity:     quantity,
		Subwarehouse: product.Subwarehouse,
	}, nil, false
}
