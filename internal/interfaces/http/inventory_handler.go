package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// InventoryHandler maneja el registro de movimientos y las vistas filtradas.
type InventoryHandler struct {
	inv   *inventory.Service
	views *inventory.ViewService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(inv *inventory.Service, views *inventory.ViewService) *InventoryHandler {
	return &InventoryHandler{inv: inv, views: views}
}

// RegisterTransaction godoc
// @Summary      Registrar movimiento
// @Description  Entrada o Salida. Una salida exige lote y no puede superar el stock actual.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "productId, type, quantity, batch, notes"
// @Success      201   {object}  entity.Transaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	tx, err := h.inv.Register(c.UserContext(), entity.TransactionDraft{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Batch:     in.Batch,
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// DeleteTransaction godoc
// @Summary      Eliminar movimiento
// @Tags         transactions
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *InventoryHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.inv.DeleteTransaction(c.UserContext(), idParam(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stock godoc
// @Summary      Vista de stock
// @Tags         views
// @Produce      json
// @Param        q             query  []string  false  "Búsqueda (repetible)"  collectionFormat(multi)
// @Param        subwarehouse  query  string    false  "Subalmacén o 'all'"
// @Param        bucket        query  []int     false  "0..4 exacto, 5 = cinco o más"  collectionFormat(multi)
// @Success      200  {object}  dto.ListResponse[query.StockRow]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	f, err := stockFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	snap := h.inv.Recompute(c.UserContext())
	markDegraded(c, snap.Degraded)
	rows := h.views.Stock(snap, f)
	return c.JSON(dto.ListResponse[query.StockRow]{Items: rows, Total: len(rows), Degraded: snap.Degraded})
}

// Entries godoc
// @Summary      Vista de entradas
// @Description  Aplica la búsqueda y los filtros confirmados de la vista.
// @Tags         views
// @Produce      json
// @Param        q  query  []string  false  "Búsqueda (repetible)"  collectionFormat(multi)
// @Success      200  {object}  dto.ListResponse[query.TransactionRow]
// @Router       /api/transactions/entries [get]
func (h *InventoryHandler) Entries(c *fiber.Ctx) error {
	snap := h.inv.Recompute(c.UserContext())
	markDegraded(c, snap.Degraded)
	rows := h.views.Entries(snap, searchTerms(c))
	return c.JSON(dto.ListResponse[query.TransactionRow]{Items: rows, Total: len(rows), Degraded: snap.Degraded})
}

// Exits godoc
// @Summary      Vista de salidas
// @Description  Aplica la búsqueda (también por lote y subalmacén) y los filtros confirmados.
// @Tags         views
// @Produce      json
// @Param        q  query  []string  false  "Búsqueda (repetible)"  collectionFormat(multi)
// @Success      200  {object}  dto.ListResponse[query.TransactionRow]
// @Router       /api/transactions/exits [get]
func (h *InventoryHandler) Exits(c *fiber.Ctx) error {
	snap := h.inv.Recompute(c.UserContext())
	markDegraded(c, snap.Degraded)
	rows := h.views.Exits(snap, searchTerms(c))
	return c.JSON(dto.ListResponse[query.TransactionRow]{Items: rows, Total: len(rows), Degraded: snap.Degraded})
}

// GetFilters godoc
// @Summary      Filtros de una vista
// @Tags         views
// @Produce      json
// @Param        view  path  string  true  "entries | exits"
// @Success      200   {object}  dto.FiltersResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/views/{view}/filters [get]
func (h *InventoryHandler) GetFilters(c *fiber.Ctx) error {
	v, err := inventory.ParseView(c.Params("view"))
	if err != nil {
		return writeError(c, err)
	}
	return h.filtersResponse(c, v)
}

// StageFilters godoc
// @Summary      Editar filtros (sin aplicar)
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        view  path  string  true  "entries | exits"
// @Param        body  body  dto.StageFiltersRequest  true  "subwarehouse, from, to (YYYY-MM-DD)"
// @Success      200   {object}  dto.FiltersResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/views/{view}/filters [put]
func (h *InventoryHandler) StageFilters(c *fiber.Ctx) error {
	v, err := inventory.ParseView(c.Params("view"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StageFiltersRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	f, err := rangeFilter(in)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.views.Stage(v, f); err != nil {
		return writeError(c, err)
	}
	return h.filtersResponse(c, v)
}

// ApplyFilters godoc
// @Summary      Aplicar filtros en edición
// @Tags         views
// @Produce      json
// @Param        view  path  string  true  "entries | exits"
// @Success      200   {object}  dto.FiltersResponse
// @Router       /api/views/{view}/filters/apply [post]
func (h *InventoryHandler) ApplyFilters(c *fiber.Ctx) error {
	v, err := inventory.ParseView(c.Params("view"))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.views.Apply(v); err != nil {
		return writeError(c, err)
	}
	return h.filtersResponse(c, v)
}

// ClearFilters godoc
// @Summary      Limpiar filtros
// @Tags         views
// @Produce      json
// @Param        view  path  string  true  "entries | exits"
// @Success      200   {object}  dto.FiltersResponse
// @Router       /api/views/{view}/filters [delete]
func (h *InventoryHandler) ClearFilters(c *fiber.Ctx) error {
	v, err := inventory.ParseView(c.Params("view"))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.views.Clear(v); err != nil {
		return writeError(c, err)
	}
	return h.filtersResponse(c, v)
}

func (h *InventoryHandler) filtersResponse(c *fiber.Ctx, v inventory.View) error {
	staged, applied, err := h.views.Filters(v)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FiltersResponse{View: string(v), Staged: staged, Applied: applied})
}
