// Package query implementa el filtrado compuesto de las vistas de stock,
// entradas y salidas. Todas las funciones son puras sobre una instantánea.
//
// Cada dimensión activa se combina con AND; dentro de una dimensión con varios
// valores aceptados (términos de búsqueda, rangos de stock) se combina con OR.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AllSubwarehouses es el valor centinela que desactiva el filtro de subalmacén.
const AllSubwarehouses = "all"

// OpenBucket es el rango abierto: stock >= OpenBucket.
const OpenBucket = 5

// StockRow es una fila de la vista de stock.
type StockRow struct {
	entity.Product
	Stock int `json:"stock"`
}

// TransactionRow es un movimiento unido a su producto del catálogo.
type TransactionRow struct {
	*entity.Transaction
	ProductName string `json:"productName"`
}

// StockFilter filtra la vista de stock.
type StockFilter struct {
	Search       []string
	Subwarehouse string
	Buckets      []int // 0..4 igualdad exacta, 5 = "5 o más"
}

// TransactionFilter filtra las vistas de entradas y salidas.
type TransactionFilter struct {
	Search       []string
	Subwarehouse string
	From         *time.Time // inclusivo; nil = sin límite
	To           *time.Time // inclusivo; nil = sin límite
}

// BuildStockRows une catálogo y stock calculado, en el orden del catálogo.
func BuildStockRows(products []*entity.Product, stock map[string]int) []StockRow {
	rows := make([]StockRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, StockRow{Product: *p, Stock: stock[p.ID]})
	}
	return rows
}

// BuildTransactionRows toma los movimientos del tipo dado y los une con su producto.
// Los movimientos cuyo producto ya no está en el catálogo no forman parte de la vista.
func BuildTransactionRows(txs []*entity.Transaction, products []*entity.Product, kind entity.TransactionType) []TransactionRow {
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		if tx.Type != kind {
			continue
		}
		p, ok := byID[tx.ProductID]
		if !ok {
			continue
		}
		rows = append(rows, TransactionRow{Transaction: tx, ProductName: p.Name})
	}
	return rows
}

// FilterStock aplica búsqueda (nombre, código, subalmacén), subalmacén y rangos de stock.
func FilterStock(rows []StockRow, f StockFilter) []StockRow {
	terms := searchTerms(f.Search)
	buckets := bucketSet(f.Buckets)
	out := make([]StockRow, 0, len(rows))
	for _, r := range rows {
		if !matchesSearch(terms, r.Name, r.ID, r.Subwarehouse) {
			continue
		}
		if !matchesSubwarehouse(f.Subwarehouse, r.Subwarehouse) {
			continue
		}
		if !matchesBuckets(buckets, r.Stock) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterEntries busca por nombre y código del producto.
func FilterEntries(rows []TransactionRow, f TransactionFilter) []TransactionRow {
	return filterTransactions(rows, f, func(r TransactionRow) []string {
		return []string{r.ProductName, r.ProductID}
	})
}

// FilterExits busca además por lote y subalmacén.
func FilterExits(rows []TransactionRow, f TransactionFilter) []TransactionRow {
	return filterTransactions(rows, f, func(r TransactionRow) []string {
		return []string{r.ProductName, r.ProductID, r.Batch, r.Subwarehouse}
	})
}

func filterTransactions(rows []TransactionRow, f TransactionFilter, fields func(TransactionRow) []string) []TransactionRow {
	terms := searchTerms(f.Search)
	out := make([]TransactionRow, 0, len(rows))
	for _, r := range rows {
		if !matchesSearch(terms, fields(r)...) {
			continue
		}
		if !matchesSubwarehouse(f.Subwarehouse, r.Subwarehouse) {
			continue
		}
		if !matchesDate(f.From, f.To, r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Subwarehouses devuelve el centinela "all" seguido de los subalmacenes del catálogo, ordenados.
func Subwarehouses(products []*entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	names := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Subwarehouse]; ok {
			continue
		}
		seen[p.Subwarehouse] = struct{}{}
		names = append(names, p.Subwarehouse)
	}
	sort.Strings(names)
	return append([]string{AllSubwarehouses}, names...)
}

// ── Predicados ────────────────────────────────────────────────────────────────

func searchTerms(search []string) []string {
	terms := make([]string, 0, len(search))
	for _, s := range search {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			terms = append(terms, s)
		}
	}
	return terms
}

func matchesSearch(terms []string, fields ...string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, term := range terms {
		for _, f := range fields {
			if f != "" && strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
	}
	return false
}

func matchesSubwarehouse(filter, value string) bool {
	return filter == "" || filter == AllSubwarehouses || filter == value
}

func bucketSet(buckets []int) map[int]struct{} {
	set := make(map[int]struct{}, len(buckets))
	for _, b := range buckets {
		set[b] = struct{}{}
	}
	return set
}

func matchesBuckets(buckets map[int]struct{}, stock int) bool {
	if len(buckets) == 0 {
		return true
	}
	if _, ok := buckets[stock]; ok && stock < OpenBucket {
		return true
	}
	_, open := buckets[OpenBucket]
	return open && stock >= OpenBucket
}

func matchesDate(from, to *time.Time, at time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && at.After(*to) {
		return false
	}
	return true
}
