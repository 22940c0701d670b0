package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea el producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
