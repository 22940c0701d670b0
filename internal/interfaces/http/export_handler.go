package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// ExportHandler descarga las vistas como CSV y el reporte de stock en PDF.
type ExportHandler struct {
	inv     *inventory.Service
	views   *inventory.ViewService
	reports *usecase.ReportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(inv *inventory.Service, views *inventory.ViewService, reports *usecase.ReportUseCase) *ExportHandler {
	return &ExportHandler{inv: inv, views: views, reports: reports}
}

// CSV godoc
// @Summary      Exportar vista a CSV
// @Description  Exporta la vista tal como está filtrada. Stock usa q/subwarehouse/bucket;
// @Description  entradas y salidas usan q y sus filtros aplicados.
// @Tags         exports
// @Produce      text/csv
// @Param        view  path   string    true   "stock | entries | exits"
// @Param        q     query  []string  false  "Búsqueda (repetible)"  collectionFormat(multi)
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exports/{view} [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	v, err := inventory.ParseView(c.Params("view"))
	if err != nil {
		return writeError(c, err)
	}

	var sf query.StockFilter
	if v == inventory.ViewStock {
		if sf, err = stockFilter(c); err != nil {
			return writeError(c, err)
		}
	}

	snap := h.inv.Recompute(c.UserContext())
	markDegraded(c, snap.Degraded)

	var (
		buf  bytes.Buffer
		name string
	)
	switch v {
	case inventory.ViewStock:
		name, err = inventory.StockExportName, inventory.WriteStockCSV(&buf, h.views.Stock(snap, sf))
	case inventory.ViewEntries:
		name, err = inventory.EntriesExportName, inventory.WriteEntriesCSV(&buf, h.views.Entries(snap, searchTerms(c)))
	case inventory.ViewExits:
		name, err = inventory.ExitsExportName, inventory.WriteExitsCSV(&buf, h.views.Exits(snap, searchTerms(c)))
	}
	if err != nil {
		return internalError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         exports
// @Produce      application/pdf
// @Param        q             query  []string  false  "Búsqueda (repetible)"  collectionFormat(multi)
// @Param        subwarehouse  query  string    false  "Subalmacén o 'all'"
// @Param        bucket        query  []int     false  "0..4 exacto, 5 = cinco o más"  collectionFormat(multi)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ExportHandler) StockPDF(c *fiber.Ctx) error {
	f, err := stockFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.reports.StockPDF(c.UserContext(), f)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="Reporte_Stock.pdf"`)
	return c.Send(doc)
}
