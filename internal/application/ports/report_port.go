package ports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// StockReport datos del reporte imprimible de stock.
type StockReport struct {
	Warehouse   string
	GeneratedAt time.Time
	Rows        []query.StockRow
	Degraded    bool
}

// StockReportRenderer genera el documento del reporte (PDF).
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report StockReport) ([]byte, error)
}
