package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateProduct agrega un producto al catálogo. Código, nombre y subalmacén son obligatorios.
func (s *Service) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	p = trimProduct(p)
	if p.ID == "" || p.Name == "" || p.Subwarehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", p.ID).Msg("producto creado")
	return &p, nil
}

// UpdateProduct cambia nombre y subalmacén; el código es inmutable.
func (s *Service) UpdateProduct(ctx context.Context, id, name, subwarehouse string) (*entity.Product, error) {
	p := trimProduct(entity.Product{ID: id, Name: name, Subwarehouse: subwarehouse})
	if p.ID == "" || p.Name == "" || p.Subwarehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.products.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct quita el producto del catálogo. Sus movimientos quedan en el
// registro pero dejan de aparecer en las vistas.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("producto eliminado")
	return nil
}

func trimProduct(p entity.Product) entity.Product {
	return entity.Product{
		ID:           strings.TrimSpace(p.ID),
		Name:         strings.TrimSpace(p.Name),
		Subwarehouse: strings.TrimSpace(p.Subwarehouse),
	}
}
