package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	inv *inventory.Service
}

// NewProductHandler construye el handler.
func NewProductHandler(inv *inventory.Service) *ProductHandler {
	return &ProductHandler{inv: inv}
}

// List godoc
// @Summary      Listar catálogo
// @Description  En modo degradado devuelve el último catálogo conocido.
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Product]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	snap := h.inv.Recompute(c.UserContext())
	markDegraded(c, snap.Degraded)
	return c.JSON(dto.ListResponse[*entity.Product]{
		Items:    snap.Products,
		Total:    len(snap.Products),
		Degraded: snap.Degraded,
	})
}

// Subwarehouses godoc
// @Summary      Subalmacenes del catálogo
// @Tags         products
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/subwarehouses [get]
func (h *ProductHandler) Subwarehouses(c *fiber.Ctx) error {
	snap := h.inv.Recompute(c.UserContext())
	markDegraded(c, snap.Degraded)
	return c.JSON(query.Subwarehouses(snap.Products))
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Código, nombre y subalmacén"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.inv.CreateProduct(c.UserContext(), entity.Product{ID: in.ID, Name: in.Name, Subwarehouse: in.Subwarehouse})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  El código no se edita.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Código del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Nombre y subalmacén"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.inv.UpdateProduct(c.UserContext(), idParam(c), in.Name, in.Subwarehouse)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Sus movimientos quedan en el registro.
// @Tags         products
// @Param        id   path  string  true  "Código del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.inv.DeleteProduct(c.UserContext(), idParam(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func markDegraded(c *fiber.Ctx, degraded bool) {
	if degraded {
		c.Set(degradedHeader, "true")
	}
}
