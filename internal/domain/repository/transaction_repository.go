package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionRepository define el puerto del registro de movimientos.
// El registro es de solo agregado: la única mutación es borrar por ID.
type TransactionRepository interface {
	// List devuelve todos los movimientos ordenados por fecha ascendente (y por ID a igual fecha).
	List(ctx context.Context) ([]*entity.Transaction, error)
	// StockOf suma entradas menos salidas de un producto.
	StockOf(ctx context.Context, productID string) (int, error)
	Append(ctx context.Context, txs ...*entity.Transaction) error
	// Delete devuelve domain.ErrNotFound si el ID no existe.
	Delete(ctx context.Context, id string) error
}
