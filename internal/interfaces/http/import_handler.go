package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/importer"
	"github.com/jhoicas/almacen-api/internal/infrastructure/rowsource"
)

// ImportHandler maneja la importación masiva de entradas.
type ImportHandler struct {
	uc             *inventory.ImportUseCase
	maxUploadBytes int64
}

// NewImportHandler construye el handler. maxUploadBytes <= 0 no limita el archivo.
func NewImportHandler(uc *inventory.ImportUseCase, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{uc: uc, maxUploadBytes: maxUploadBytes}
}

// Preview godoc
// @Summary      Reconciliar filas de una hoja
// @Description  Acepta JSON {"rows": [...]} o multipart con un CSV en el campo "file".
// @Description  No registra nada: devuelve un resumen pendiente de confirmación.
// @Tags         imports
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.ImportRowsRequest  false  "Filas ya leídas"
// @Param        file  formData  file                   false  "Archivo CSV"
// @Success      201   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	var rows []importer.RowRecord
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "MISSING_FILE", "falta el archivo en el campo 'file'")
		}
		if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
				Code: "FILE_TOO_LARGE", Message: "el archivo supera el tamaño permitido",
			})
		}
		f, err := fh.Open()
		if err != nil {
			return internalError(c, err)
		}
		defer f.Close()

		rows, err = rowsource.DecodeCSV(f)
		if err != nil {
			if errors.Is(err, rowsource.ErrNoHeader) {
				return badRequest(c, "NO_HEADER", "el archivo no tiene encabezados")
			}
			return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo CSV")
		}
	} else {
		var in dto.ImportRowsRequest
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
		rows = in.Rows
	}
	if len(rows) == 0 {
		return badRequest(c, "EMPTY_IMPORT", "el archivo no contiene filas de datos")
	}

	p, err := h.uc.Preview(c.UserContext(), rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(previewResponse(p))
}

// Get godoc
// @Summary      Ver importación pendiente
// @Tags         imports
// @Produce      json
// @Param        id   path  string  true  "ID de la importación"
// @Success      200  {object}  dto.ImportPreviewResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/imports/{id} [get]
func (h *ImportHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(previewResponse(p))
}

// Confirm godoc
// @Summary      Confirmar importación
// @Description  Registra todas las entradas válidas en una sola transacción.
// @Tags         imports
// @Produce      json
// @Param        id   path  string  true  "ID de la importación"
// @Success      201  {object}  dto.ImportCommitResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/imports/{id}/confirm [post]
func (h *ImportHandler) Confirm(c *fiber.Ctx) error {
	txs, err := h.uc.Confirm(c.UserContext(), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportCommitResponse{Committed: len(txs)})
}

// Discard godoc
// @Summary      Descartar importación
// @Tags         imports
// @Param        id   path  string  true  "ID de la importación"
// @Success      204
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/imports/{id} [delete]
func (h *ImportHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(idParam(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func previewResponse(p *inventory.PendingImport) dto.ImportPreviewResponse {
	errs := make([]dto.ImportRowErrorDTO, 0, len(p.Result.Errors))
	for _, e := range p.Result.Errors {
		errs = append(errs, dto.ImportRowErrorDTO{Row: e.Row, Reason: e.Reason, Message: e.Message(), Raw: e.Raw})
	}
	return dto.ImportPreviewResponse{
		ID:        p.ID,
		Total:     p.Result.Total,
		Valid:     len(p.Result.Candidates),
		Skipped:   len(p.Result.Skipped),
		Errors:    errs,
		ExpiresAt: p.ExpiresAt,
	}
}
