// Package marks mantiene el conjunto de movimientos marcados por el operador.
//
// Set es inmutable: Toggle devuelve una nueva versión y deja intacta la anterior,
// de modo que un fallo al persistir no deja el estado a medias.
package marks

import "sort"

// Set es un conjunto versionado de IDs de movimiento.
type Set struct {
	ids     map[string]struct{}
	version int64
}

// New construye un Set con los IDs dados (versión 0). Los vacíos se ignoran.
func New(ids []string) Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			m[id] = struct{}{}
		}
	}
	return Set{ids: m}
}

// WithVersion devuelve el mismo conjunto con la versión indicada.
func (s Set) WithVersion(v int64) Set {
	s.version = v
	return s
}

// Toggle agrega el ID si no estaba y lo quita si estaba. No valida que el
// movimiento exista: una marca huérfana se conserva.
func (s Set) Toggle(id string) Set {
	next := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return Set{ids: next, version: s.version + 1}
}

// Has indica si el movimiento está marcado.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs devuelve los IDs marcados, ordenados.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len cantidad de marcas.
func (s Set) Len() int { return len(s.ids) }

// Version número de versión; cada Toggle lo incrementa en uno.
func (s Set) Version() int64 { return s.version }
