package inventory

import (
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Validate aplica las reglas de creación de un movimiento.
//
// currentStock debe recalcularse desde el log justo antes de validar (idealmente
// dentro de la misma transacción de escritura); un valor en caché puede estar
// desactualizado. Validate no tiene efectos: confirmar el movimiento es otro paso.
//
// Orden de los chequeos en una salida: lote, cantidad, suficiencia.
func Validate(kind entity.TransactionType, quantity int, batch string, currentStock int) error {
	switch kind {
	case entity.TransactionEntry:
		if quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		return nil
	case entity.TransactionExit:
		if strings.TrimSpace(batch) == "" {
			return domain.ErrMissingBatch
		}
		if quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if quantity > currentStock {
			return domain.ErrInsufficientStock
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// ValidateDraft valida un borrador contra el stock actual de su producto.
func ValidateDraft(d entity.TransactionDraft, currentStock int) error {
	return Validate(d.Type, d.Quantity, d.Batch, currentStock)
}
