package importer

import (
	"strings"

	"golang.org/x/text/cases"
)

// AliasTable declara qué encabezados se aceptan para cada campo de la importación.
// El orden de cada lista es la prioridad: si una fila trae varios alias, gana el primero.
type AliasTable struct {
	ID       []string
	Quantity []string
}

// DefaultAliases es la tabla usada cuando la configuración no define otra.
func DefaultAliases() AliasTable {
	return AliasTable{
		ID:       []string{"código de item", "codigo de item", "id", "item", "codigo", "código"},
		Quantity: []string{"cantidad", "quantity", "numero", "número", "cant."},
	}
}

// normalized devuelve una copia con cada alias normalizado y sin vacíos ni duplicados.
func (t AliasTable) normalized() AliasTable {
	return AliasTable{
		ID:       normalizeList(t.ID),
		Quantity: normalizeList(t.Quantity),
	}
}

func normalizeList(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	seen := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		key := NormalizeHeader(a)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// NormalizeHeader recorta espacios y aplica case folding Unicode,
// de modo que "CÓDIGO DE ITEM " y "código de item" coinciden.
func NormalizeHeader(h string) string {
	return cases.Fold().String(strings.TrimSpace(h))
}
