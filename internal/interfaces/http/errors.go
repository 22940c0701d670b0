package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// localError guarda el error original para el log de la petición.
const localError = "request_error"

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: los errores de validación más específicos van primero.
var errorMappings = []errorMapping{
	{domain.ErrMissingBatch, fiber.StatusBadRequest, "MISSING_BATCH", "el lote es obligatorio para una salida"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY", "la cantidad debe ser un entero positivo"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrUnknownProduct, fiber.StatusNotFound, "UNKNOWN_PRODUCT", "el producto no existe en el catálogo"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"},
	{domain.ErrImportExpired, fiber.StatusGone, "IMPORT_EXPIRED", "la importación no existe o expiró"},
	{domain.ErrNothingToImport, fiber.StatusUnprocessableEntity, "NOTHING_TO_IMPORT", "no hay entradas válidas para registrar"},
	{domain.ErrAssistantUnavailable, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE", "el asistente no está configurado"},
	{context.DeadlineExceeded, fiber.StatusRequestTimeout, "TIMEOUT", "la operación tardó demasiado; intenta de nuevo"},
}

// writeError traduce un error de dominio a {code, message}. Los errores del
// almacenamiento se informan de forma genérica, sin filtrar el detalle del driver.
func writeError(c *fiber.Ctx, err error) error {
	c.Locals(localError, err)
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code: "BACKEND_UNAVAILABLE", Message: "el almacenamiento no está disponible, intenta más tarde",
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// internalError respuesta 500 para fallos que no vienen del almacenamiento.
func internalError(c *fiber.Ctx, err error) error {
	c.Locals(localError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
