package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/importer"
)

// ImportRowsRequest body JSON para POST /api/imports: filas ya leídas de la hoja.
type ImportRowsRequest struct {
	Rows []importer.RowRecord `json:"rows"`
}

// ImportRowErrorDTO fila rechazada con el mensaje para el operador.
type ImportRowErrorDTO struct {
	Row     int                `json:"row"`
	Reason  importer.ErrorKind `json:"reason"`
	Message string             `json:"message"`
	Raw     importer.RowRecord `json:"raw"`
}

// ImportPreviewResponse resultado de la reconciliación, pendiente de confirmar.
type ImportPreviewResponse struct {
	ID        string              `json:"id"`
	Total     int                 `json:"total"`
	Valid     int                 `json:"valid"`
	Skipped   int                 `json:"skipped"`
	Errors    []ImportRowErrorDTO `json:"errors"`
	ExpiresAt time.Time           `json:"expiresAt"`
}

// ImportCommitResponse resultado de confirmar una importación.
type ImportCommitResponse struct {
	Committed int `json:"committed"`
}
