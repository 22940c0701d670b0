// Package pdf genera el reporte imprimible de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Almacén + título      │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Producto | Subalmacén | Stock                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos listados / unidades totales              │
//	│  FOOTER: aviso de modo degradado (si aplica)                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// Verificar en tiempo de compilación que StockReportGenerator implementa StockReportRenderer.
var _ ports.StockReportRenderer = (*StockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa ports.StockReportRenderer usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) RenderStockReport(ctx context.Context, report ports.StockReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		WithAuthor(report.Warehouse, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Rows))

	if report.Degraded {
		m.AddRows(degradedRow())
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: almacén + título (izq) y fecha de generación (der).
func headerRow(report ports.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(report.Warehouse, "Almacén"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("REPORTE DE STOCK ACTUAL", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ITEM", 2, align.Left),
		h("NOMBRE DEL PRODUCTO", 6, align.Left),
		h("SUBALMACÉN", 2, align.Left),
		h("STOCK", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por producto, con franjas alternas. Stock 0 en rojo.
func tableRows(rows []query.StockRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		stockProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if r.Stock <= 0 {
			stockProps.Color = colorAlert
			stockProps.Style = fontstyle.Bold
		}
		detail := row.New(7).Add(
			col.New(2).Add(text.New(r.ID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Subwarehouse, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(formatThousands(r.Stock), stockProps)),
		)
		if i%2 == 1 {
			detail = detail.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, detail)
	}
	if len(result) == 0 {
		result = append(result, row.New(10).Add(col.New(12).Add(
			text.New("Ningún producto coincide con los filtros.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	return result
}

// summaryRow: totales alineados a la derecha.
func summaryRow(rows []query.StockRow) core.Row {
	units := 0
	for _, r := range rows {
		units += r.Stock
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(4).Add(
			label("Productos listados:"),
			text.New("Unidades totales:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
		),
		col.New(2).Add(
			value(strconv.Itoa(len(rows)), 0),
			value(formatThousands(units), 6),
		),
	)
}

func degradedRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Almacenamiento no disponible: el reporte usa el catálogo de respaldo y stock sin movimientos.", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorAlert, Top: 3,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles.
// Ej: 25000 → "25.000", -1200 → "-1.200"
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
