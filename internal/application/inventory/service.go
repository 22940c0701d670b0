package inventory

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Snapshot es el estado derivado en un instante: catálogo, registro y stock.
// Degraded indica que el almacenamiento no respondió y se usa el último catálogo
// conocido (o el catálogo por defecto) con un registro vacío.
type Snapshot struct {
	Products     []*entity.Product
	Transactions []*entity.Transaction
	Stock        map[string]int
	Degraded     bool
	At           time.Time
}

// Service orquesta catálogo, registro de movimientos y recálculo de stock.
type Service struct {
	txRunner     repository.TxRunner
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	fallback     []*entity.Product
	log          zerolog.Logger

	now   func() time.Time
	newID func() string

	mu        sync.Mutex
	lastKnown []*entity.Product
	degraded  bool
}

// NewService construye el servicio. fallback es el catálogo por defecto para el modo degradado.
func NewService(
	txRunner repository.TxRunner,
	products repository.ProductRepository,
	transactions repository.TransactionRepository,
	fallback []*entity.Product,
	log zerolog.Logger,
) *Service {
	return &Service{
		txRunner:     txRunner,
		products:     products,
		transactions: transactions,
		fallback:     fallback,
		log:          log,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

// Recompute lee catálogo y registro y recalcula el stock completo.
// Nunca falla: ante un error del almacenamiento devuelve un Snapshot degradado.
func (s *Service) Recompute(ctx context.Context) Snapshot {
	products, err := s.products.List(ctx)
	catalogRead := err == nil
	if catalogRead {
		var txs []*entity.Transaction
		if txs, err = s.transactions.List(ctx); err == nil {
			s.mu.Lock()
			s.lastKnown = products
			s.degraded = false
			s.mu.Unlock()
			return Snapshot{
				Products:     products,
				Transactions: txs,
				Stock:        inventory.ComputeStock(products, txs),
				At:           s.now(),
			}
		}
	}

	s.mu.Lock()
	catalog := s.lastKnown
	if catalogRead {
		// El catálogo respondió y solo falló el registro.
		catalog = products
		s.lastKnown = products
	}
	if catalog == nil && !catalogRead {
		catalog = s.fallback
	}
	s.degraded = true
	s.mu.Unlock()

	s.log.Warn().Err(err).Int("products", len(catalog)).Msg("almacenamiento no disponible, usando catálogo de respaldo")
	return Snapshot{
		Products: catalog,
		Stock:    inventory.ComputeStock(catalog, nil),
		Degraded: true,
		At:       s.now(),
	}
}

// Degraded indica si el último Recompute cayó en modo degradado.
func (s *Service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Register valida y agrega un movimiento. En una sola transacción bloquea el
// producto, recalcula su stock desde el registro, valida y recién entonces agrega:
// dos salidas concurrentes no pueden dejar el stock negativo.
func (s *Service) Register(ctx context.Context, draft entity.TransactionDraft) (*entity.Transaction, error) {
	draft.ProductID = strings.TrimSpace(draft.ProductID)
	draft.Batch = strings.TrimSpace(draft.Batch)
	draft.Notes = strings.TrimSpace(draft.Notes)
	if draft.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Errores de forma (lote, cantidad) antes de tocar el almacenamiento.
	if err := inventory.ValidateDraft(draft, math.MaxInt); err != nil {
		return nil, err
	}

	var committed *entity.Transaction
	err := s.txRunner.Run(ctx, func(products repository.ProductRepository, transactions repository.TransactionRepository) error {
		product, err := products.GetForUpdate(ctx, draft.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrUnknownProduct
		}
		stock, err := transactions.StockOf(ctx, product.ID)
		if err != nil {
			return err
		}
		if err := inventory.ValidateDraft(draft, stock); err != nil {
			return err
		}

		draft.Subwarehouse = product.Subwarehouse
		committed = draft.Commit(s.newID(), s.now())
		return transactions.Append(ctx, committed)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("id", committed.ID).
		Str("product", committed.ProductID).
		Str("type", string(committed.Type)).
		Int("quantity", committed.Quantity).
		Msg("movimiento registrado")
	return committed, nil
}

// DeleteTransaction borra un movimiento del registro. Las marcas que lo referencian se conservan.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("movimiento eliminado")
	return nil
}
