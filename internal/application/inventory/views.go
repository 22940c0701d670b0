package inventory

import (
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// View identifica una vista filtrable.
type View string

// Vistas disponibles.
const (
	ViewStock   View = "stock"
	ViewEntries View = "entries"
	ViewExits   View = "exits"
)

// ParseView valida el nombre de vista recibido por HTTP.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewStock, ViewEntries, ViewExits:
		return v, nil
	}
	return "", domain.ErrNotFound
}

// ViewService guarda los filtros en edición/aplicados de las vistas de movimientos
// y construye las vistas filtradas sobre un Snapshot.
type ViewService struct {
	mu      sync.Mutex
	entries query.Staged[query.RangeFilter]
	exits   query.Staged[query.RangeFilter]
}

// NewViewService construye el servicio sin filtros.
func NewViewService() *ViewService {
	return &ViewService{
		entries: query.NewStaged(query.NoRange()),
		exits:   query.NewStaged(query.NoRange()),
	}
}

func (s *ViewService) staged(v View) (*query.Staged[query.RangeFilter], error) {
	switch v {
	case ViewEntries:
		return &s.entries, nil
	case ViewExits:
		return &s.exits, nil
	}
	// La vista de stock filtra al instante, no tiene filtros en edición.
	return nil, domain.ErrNotFound
}

// Filters devuelve (en edición, aplicados).
func (s *ViewService) Filters(v View) (query.RangeFilter, query.RangeFilter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staged(v)
	if err != nil {
		return query.RangeFilter{}, query.RangeFilter{}, err
	}
	return st.Pending(), st.Applied(), nil
}

// Stage reemplaza el filtro en edición. La vista de entradas no filtra por subalmacén.
func (s *ViewService) Stage(v View, f query.RangeFilter) error {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return domain.ErrInvalidInput
	}
	if f.Subwarehouse == "" || v == ViewEntries {
		f.Subwarehouse = query.AllSubwarehouses
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staged(v)
	if err != nil {
		return err
	}
	st.Stage(f)
	return nil
}

// Apply confirma el filtro en edición.
func (s *ViewService) Apply(v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staged(v)
	if err != nil {
		return err
	}
	st.Apply()
	return nil
}

// Clear vuelve la vista a "sin filtros".
func (s *ViewService) Clear(v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staged(v)
	if err != nil {
		return err
	}
	st.Clear()
	return nil
}

// Stock arma la vista de stock filtrada.
func (s *ViewService) Stock(snap Snapshot, f query.StockFilter) []query.StockRow {
	return query.FilterStock(query.BuildStockRows(snap.Products, snap.Stock), f)
}

// Entries arma la vista de entradas con la búsqueda dada y los filtros aplicados.
func (s *ViewService) Entries(snap Snapshot, search []string) []query.TransactionRow {
	_, applied, _ := s.Filters(ViewEntries)
	rows := query.BuildTransactionRows(snap.Transactions, snap.Products, entity.TransactionEntry)
	return query.FilterEntries(rows, applied.WithSearch(search))
}

// Exits arma la vista de salidas con la búsqueda dada y los filtros aplicados.
func (s *ViewService) Exits(snap Snapshot, search []string) []query.TransactionRow {
	_, applied, _ := s.Filters(ViewExits)
	rows := query.BuildTransactionRows(snap.Transactions, snap.Products, entity.TransactionExit)
	return query.FilterExits(rows, applied.WithSearch(search))
}
