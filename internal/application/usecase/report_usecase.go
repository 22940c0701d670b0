package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// ReportUseCase genera el reporte imprimible de stock.
type ReportUseCase struct {
	renderer  ports.StockReportRenderer
	inventory *inventory.Service
	views     *inventory.ViewService
	warehouse string
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(renderer ports.StockReportRenderer, inv *inventory.Service, views *inventory.ViewService, warehouse string) *ReportUseCase {
	return &ReportUseCase{renderer: renderer, inventory: inv, views: views, warehouse: warehouse}
}

// StockPDF renderiza la vista de stock con el filtro dado.
func (uc *ReportUseCase) StockPDF(ctx context.Context, f query.StockFilter) ([]byte, error) {
	snap := uc.inventory.Recompute(ctx)
	doc, err := uc.renderer.RenderStockReport(ctx, ports.StockReport{
		Warehouse:   uc.warehouse,
		GeneratedAt: snap.At,
		Rows:        uc.views.Stock(snap, f),
		Degraded:    snap.Degraded,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: %w", err)
	}
	return doc, nil
}
