package dto

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// RegisterTransactionRequest body para POST /api/transactions.
// Type es "Entrada" o "Salida"; Batch es obligatorio en salidas.
type RegisterTransactionRequest struct {
	ProductID string                 `json:"productId"`
	Type      entity.TransactionType `json:"type"`
	Quantity  int                    `json:"quantity"`
	Batch     string                 `json:"batch,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
}

// MarksResponse conjunto de movimientos marcados.
type MarksResponse struct {
	IDs     []string `json:"ids"`
	Version int64    `json:"version"`
}

// HealthResponse GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Degraded bool   `json:"degraded"`
}
