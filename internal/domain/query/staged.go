package query

import "time"

// Staged separa los valores que el operador está editando de los que realmente
// filtran la vista. Apply copia pendiente → aplicado; Clear reinicia ambos.
type Staged[T any] struct {
	initial T
	pending T
	applied T
}

// NewStaged crea el estado con el valor "sin filtro" de la vista.
func NewStaged[T any](initial T) Staged[T] {
	return Staged[T]{initial: initial, pending: initial, applied: initial}
}

// Stage reemplaza el valor en edición sin afectar la vista.
func (s *Staged[T]) Stage(v T) { s.pending = v }

// Apply confirma el valor en edición.
func (s *Staged[T]) Apply() { s.applied = s.pending }

// Clear vuelve ambos valores al inicial.
func (s *Staged[T]) Clear() {
	s.pending = s.initial
	s.applied = s.initial
}

// Pending devuelve el valor en edición.
func (s *Staged[T]) Pending() T { return s.pending }

// Applied devuelve el valor con el que se filtra.
func (s *Staged[T]) Applied() T { return s.applied }

// RangeFilter es la parte de TransactionFilter que se edita y confirma explícitamente.
// La búsqueda de texto no pasa por aquí: se aplica al escribir.
type RangeFilter struct {
	Subwarehouse string     `json:"subwarehouse"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
}

// NoRange es el RangeFilter que no descarta nada.
func NoRange() RangeFilter {
	return RangeFilter{Subwarehouse: AllSubwarehouses}
}

// WithSearch arma el filtro completo de una vista de movimientos.
func (r RangeFilter) WithSearch(search []string) TransactionFilter {
	return TransactionFilter{
		Search:       search,
		Subwarehouse: r.Subwarehouse,
		From:         r.From,
		To:           r.To,
	}
}
