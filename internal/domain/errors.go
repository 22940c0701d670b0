package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrMissingBatch      = errors.New("el lote es obligatorio para una salida")
	ErrUnknownProduct    = errors.New("el producto no existe en el catálogo")

	// Importación masiva
	ErrImportExpired   = errors.New("la importación no existe o expiró")
	ErrNothingToImport = errors.New("no hay entradas válidas para registrar")

	// Asistente conversacional
	ErrAssistantUnavailable = errors.New("asistente no configurado")
)
