package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/marks"
)

// MarkHandler expone el conjunto de movimientos marcados.
type MarkHandler struct {
	marks *inventory.MarkService
}

// NewMarkHandler construye el handler.
func NewMarkHandler(m *inventory.MarkService) *MarkHandler {
	return &MarkHandler{marks: m}
}

// List godoc
// @Summary      Movimientos marcados
// @Tags         marks
// @Produce      json
// @Success      200  {object}  dto.MarksResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/marks [get]
func (h *MarkHandler) List(c *fiber.Ctx) error {
	set, err := h.marks.Current(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(marksResponse(set))
}

// Toggle godoc
// @Summary      Marcar/desmarcar movimiento
// @Description  Si la persistencia falla el conjunto anterior se conserva.
// @Tags         marks
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MarksResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/marks/{id}/toggle [post]
func (h *MarkHandler) Toggle(c *fiber.Ctx) error {
	set, err := h.marks.Toggle(c.UserContext(), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(marksResponse(set))
}

func marksResponse(set marks.Set) dto.MarksResponse {
	return dto.MarksResponse{IDs: set.IDs(), Version: set.Version()}
}
