package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/importer"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PendingImport es una reconciliación mostrada al operador y aún no confirmada.
type PendingImport struct {
	ID        string
	Result    importer.Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ImportUseCase reconcilia filas contra el catálogo y registra los candidatos
// como un lote atómico cuando el operador confirma.
type ImportUseCase struct {
	txRunner   repository.TxRunner
	products   repository.ProductRepository
	reconciler *importer.Reconciler
	ttl        time.Duration
	log        zerolog.Logger

	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	pending map[string]*PendingImport
}

// NewImportUseCase construye el caso de uso. ttl <= 0 usa 30 minutos.
func NewImportUseCase(
	txRunner repository.TxRunner,
	products repository.ProductRepository,
	aliases importer.AliasTable,
	ttl time.Duration,
	log zerolog.Logger,
) *ImportUseCase {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ImportUseCase{
		txRunner:   txRunner,
		products:   products,
		reconciler: importer.NewReconciler(aliases),
		ttl:        ttl,
		log:        log,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		pending:    make(map[string]*PendingImport),
	}
}

// Preview reconcilia las filas y deja el resultado pendiente de confirmación.
// Nada se escribe en el registro.
func (uc *ImportUseCase) Preview(ctx context.Context, rows []importer.RowRecord) (*PendingImport, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	res := uc.reconciler.Reconcile(rows, importer.NewCatalog(products))
	for _, e := range res.Errors {
		uc.log.Debug().Int("row", e.Row).Str("reason", string(e.Reason)).Msg(e.Message())
	}
	if len(res.Errors) > 0 {
		uc.log.Warn().
			Int("total", res.Total).
			Int("valid", len(res.Candidates)).
			Int("errors", len(res.Errors)).
			Msg("importación con filas rechazadas")
	}

	now := uc.now()
	p := &PendingImport{
		ID:        uc.newID(),
		Result:    res,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	uc.mu.Lock()
	uc.purgeLocked(now)
	uc.pending[p.ID] = p
	uc.mu.Unlock()
	return p, nil
}

// Confirm registra todos los candidatos en una sola transacción: o entran todos o ninguno.
// Si el almacenamiento falla, la importación sigue pendiente y puede reintentarse.
func (uc *ImportUseCase) Confirm(ctx context.Context, id string) ([]*entity.Transaction, error) {
	// Sin candidatos la importación queda pendiente: todavía puede consultarse o descartarse.
	p, err := uc.take(id, func(p *PendingImport) error {
		if len(p.Result.Candidates) == 0 {
			return domain.ErrNothingToImport
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	at := uc.now()
	txs := make([]*entity.Transaction, 0, len(p.Result.Candidates))
	for _, c := range p.Result.Candidates {
		txs = append(txs, c.Commit(uc.newID(), at))
	}

	err = uc.txRunner.Run(ctx, func(_ repository.ProductRepository, transactions repository.TransactionRepository) error {
		return transactions.Append(ctx, txs...)
	})
	if err != nil {
		uc.mu.Lock()
		uc.pending[p.ID] = p
		uc.mu.Unlock()
		return nil, err
	}

	uc.log.Info().Str("import", p.ID).Int("committed", len(txs)).Msg("importación registrada")
	return txs, nil
}

// Discard descarta una importación pendiente.
func (uc *ImportUseCase) Discard(id string) error {
	_, err := uc.take(id, nil)
	return err
}

// Get devuelve una importación pendiente sin consumirla.
func (uc *ImportUseCase) Get(id string) (*PendingImport, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.purgeLocked(uc.now())
	p, ok := uc.pending[id]
	if !ok {
		return nil, domain.ErrImportExpired
	}
	return p, nil
}

// take saca la importación del mapa: desde aquí ya no puede descartarse ni confirmarse dos veces.
// Si check falla la importación no se toca.
func (uc *ImportUseCase) take(id string, check func(*PendingImport) error) (*PendingImport, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.purgeLocked(uc.now())
	p, ok := uc.pending[id]
	if !ok {
		return nil, domain.ErrImportExpired
	}
	if check != nil {
		if err := check(p); err != nil {
			return nil, err
		}
	}
	delete(uc.pending, id)
	return p, nil
}

func (uc *ImportUseCase) purgeLocked(now time.Time) {
	for id, p := range uc.pending {
		if now.After(p.ExpiresAt) {
			delete(uc.pending, id)
		}
	}
}
