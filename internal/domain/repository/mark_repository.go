package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/marks"
)

//go:generate mockgen -destination=mock/mark_repository.go -package=mock . MarkRepository

// MarkRepository persiste el conjunto de movimientos marcados.
type MarkRepository interface {
	Get(ctx context.Context) (marks.Set, error)
	Set(ctx context.Context, set marks.Set) error
}
