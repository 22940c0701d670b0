// Package memory implementa los puertos de persistencia en memoria. Se usa en
// tests y con STORE_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/marks"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.MarkRepository        = (*MarkRepo)(nil)
	_ repository.TxRunner              = (*Store)(nil)
)

type state struct {
	products     map[string]entity.Product
	transactions []entity.Transaction
}

func (s *state) clone() *state {
	c := &state{
		products:     make(map[string]entity.Product, len(s.products)),
		transactions: make([]entity.Transaction, len(s.transactions)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	copy(c.transactions, s.transactions)
	return c
}

// Store guarda catálogo, registro y marcas. Un único mutex serializa escrituras
// y transacciones, equivalente a bloquear la fila del producto.
type Store struct {
	mu    sync.Mutex
	data  *state
	marks marks.Set
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		data:  &state{products: map[string]entity.Product{}},
		marks: marks.New(nil),
	}
}

// Products devuelve el repositorio de catálogo fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Transactions devuelve el registro de movimientos fuera de transacción.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{store: s} }

// Marks devuelve el repositorio de marcas.
func (s *Store) Marks() *MarkRepo { return &MarkRepo{store: s} }

// Run ejecuta fn sobre una copia del estado; la copia reemplaza al original solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(products repository.ProductRepository, transactions repository.TransactionRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.data.clone()
	if err := fn(&ProductRepo{tx: work}, &TransactionRepo{tx: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// view ejecuta fn con el estado vigente, tomando el lock solo fuera de transacción.
func view(store *Store, tx *state, fn func(*state) error) error {
	if tx != nil {
		return fn(tx)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	return fn(store.data)
}

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
	tx    *state
}

// List devuelve el catálogo ordenado por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := view(r.store, r.tx, func(s *state) error {
		out = make([]*entity.Product, 0, len(s.products))
		for _, p := range s.products {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := view(r.store, r.tx, func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el lock del store ya está tomado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Create devuelve domain.ErrDuplicate si el ID ya existe.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return view(r.store, r.tx, func(s *state) error {
		if _, ok := s.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		s.products[product.ID] = *product
		return nil
	})
}

// Update devuelve domain.ErrNotFound si el producto no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return view(r.store, r.tx, func(s *state) error {
		if _, ok := s.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		s.products[product.ID] = *product
		return nil
	})
}

// Delete devuelve domain.ErrNotFound si el producto no existe. Sus movimientos se conservan.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return view(r.store, r.tx, func(s *state) error {
		if _, ok := s.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.products, id)
		return nil
	})
}

// TransactionRepo implementación en memoria de TransactionRepository.
type TransactionRepo struct {
	store *Store
	tx    *state
}

// List devuelve el registro por fecha ascendente y por ID a igual fecha.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := view(r.store, r.tx, func(s *state) error {
		out = make([]*entity.Transaction, 0, len(s.transactions))
		for _, t := range s.transactions {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, err
}

// StockOf suma el registro del producto.
func (r *TransactionRepo) StockOf(ctx context.Context, productID string) (int, error) {
	var stock int
	err := view(r.store, r.tx, func(s *state) error {
		txs := make([]*entity.Transaction, 0, len(s.transactions))
		for i := range s.transactions {
			txs = append(txs, &s.transactions[i])
		}
		stock = inventory.StockOf(productID, txs)
		return nil
	})
	return stock, err
}

// Append agrega los movimientos; un ID repetido hace fallar todo el lote.
func (r *TransactionRepo) Append(ctx context.Context, txs ...*entity.Transaction) error {
	return view(r.store, r.tx, func(s *state) error {
		seen := make(map[string]struct{}, len(s.transactions)+len(txs))
		for _, t := range s.transactions {
			seen[t.ID] = struct{}{}
		}
		for _, t := range txs {
			if _, ok := seen[t.ID]; ok {
				return domain.ErrDuplicate
			}
			seen[t.ID] = struct{}{}
		}
		for _, t := range txs {
			s.transactions = append(s.transactions, *t)
		}
		return nil
	})
}

// Delete devuelve domain.ErrNotFound si el ID no existe.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	return view(r.store, r.tx, func(s *state) error {
		for i, t := range s.transactions {
			if t.ID == id {
				s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// MarkRepo guarda el conjunto de marcas.
type MarkRepo struct {
	store *Store
}

// Get devuelve el conjunto vigente.
func (r *MarkRepo) Get(ctx context.Context) (marks.Set, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.marks, nil
}

// Set reemplaza el conjunto; Set es inmutable, no hace falta copiarlo.
func (r *MarkRepo) Set(ctx context.Context, set marks.Set) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.marks = set
	return nil
}
