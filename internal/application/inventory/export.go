package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// Nombres de archivo de cada exportación.
const (
	StockExportName   = "Reporte_Stock.csv"
	EntriesExportName = "Reporte_Entradas.csv"
	ExitsExportName   = "Reporte_Salidas.csv"
)

// exportDateLayout fecha corta día/mes/año.
const exportDateLayout = "2/1/2006"

// WriteStockCSV exporta la vista de stock tal como está filtrada.
func WriteStockCSV(w io.Writer, rows []query.StockRow) error {
	return writeCSV(w, []string{"ITEM", "NOMBRE DEL PRODUCTO", "SUBALMACÉN", "STOCK ACTUAL"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{r.ID, r.Name, r.Subwarehouse, strconv.Itoa(r.Stock)}
	})
}

// WriteEntriesCSV exporta la vista de entradas.
func WriteEntriesCSV(w io.Writer, rows []query.TransactionRow) error {
	return writeCSV(w, []string{"FECHA", "ITEM", "NOMBRE DEL PRODUCTO", "CANTIDAD"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{r.Date.Format(exportDateLayout), r.ProductID, r.ProductName, strconv.Itoa(r.Quantity)}
	})
}

// WriteExitsCSV exporta la vista de salidas. El código va como fórmula ="..."
// para que la hoja de cálculo conserve los ceros a la izquierda.
func WriteExitsCSV(w io.Writer, rows []query.TransactionRow) error {
	return writeCSV(w, []string{"ITEM", "LOTE", "CANTIDAD"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{formulaText(r.ProductID), r.Batch, strconv.Itoa(r.Quantity)}
	})
}

func writeCSV(w io.Writer, header []string, n int, record func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(record(i)); err != nil {
			return fmt.Errorf("escribir fila: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formulaText arma ="valor"; las comillas internas se duplican como pide la sintaxis de fórmulas.
func formulaText(v string) string {
	return `="` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
