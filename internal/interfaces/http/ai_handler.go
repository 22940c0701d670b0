package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// AssistantHandler maneja las preguntas al asistente de inventario.
type AssistantHandler struct {
	uc *usecase.AssistantUseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Ask godoc
// @Summary      Preguntar al asistente
// @Description  Responde solo con los datos de stock y los movimientos recientes.
// @Description  Timeout interno de 15 s.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AskRequest  true  "Pregunta"
// @Success      200   {object}  dto.AskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/assistant/ask [post]
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo de la petición inválido")
	}

	answer, err := h.uc.Ask(c.UserContext(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrAssistantUnavailable),
			errors.Is(err, context.DeadlineExceeded):
			return writeError(c, err)
		}
		// El proveedor respondió con error (cuota, clave inválida, etc.)
		c.Locals(localError, err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "AI_ERROR", Message: "el asistente no pudo responder; intenta de nuevo",
		})
	}
	return c.JSON(dto.AskResponse{Answer: answer})
}
