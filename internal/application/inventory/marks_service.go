package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/marks"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MarkService mantiene el conjunto de movimientos marcados. El conjunto en memoria
// solo avanza cuando la persistencia confirma; si falla, queda la versión anterior.
type MarkService struct {
	repo repository.MarkRepository
	log  zerolog.Logger

	mu     sync.Mutex
	set    marks.Set
	loaded bool
}

// NewMarkService construye el servicio.
func NewMarkService(repo repository.MarkRepository, log zerolog.Logger) *MarkService {
	return &MarkService{repo: repo, log: log, set: marks.New(nil)}
}

// Current devuelve el conjunto vigente, leyéndolo del almacenamiento la primera vez.
func (s *MarkService) Current(ctx context.Context) (marks.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return s.set, err
	}
	return s.set, nil
}

// Toggle marca o desmarca el movimiento. No verifica que exista.
func (s *MarkService) Toggle(ctx context.Context, id string) (marks.Set, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return marks.Set{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return s.set, err
	}

	next := s.set.Toggle(id)
	if err := s.repo.Set(ctx, next); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("no se pudo guardar la marca")
		return s.set, fmt.Errorf("guardar marcas: %w", err)
	}
	s.set = next
	return next, nil
}

func (s *MarkService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	set, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("leer marcas: %w", err)
	}
	s.set = set
	s.loaded = true
	return nil
}
