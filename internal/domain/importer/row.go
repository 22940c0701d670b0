package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RowRecord es una fila decodificada: encabezado de columna (tal como viene en el
// archivo) → valor crudo (string o número). CSV y hojas de cálculo producen lo mismo.
type RowRecord map[string]any

// headerIndex indexa una fila por encabezado normalizado. Si dos encabezados
// normalizan igual, gana el menor en orden lexicográfico (resultado determinista).
func headerIndex(row RowRecord) map[string]any {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := make(map[string]any, len(keys))
	for _, k := range keys {
		norm := NormalizeHeader(k)
		if _, taken := idx[norm]; taken {
			continue
		}
		idx[norm] = row[k]
	}
	return idx
}

// lookup busca el primer alias presente en la fila.
func lookup(idx map[string]any, aliases []string) (any, bool) {
	for _, a := range aliases {
		if v, ok := idx[a]; ok {
			return v, true
		}
	}
	return nil, false
}

// rawString representa un valor crudo como texto; los números no usan notación exponencial.
func rawString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// parseQuantity interpreta la cantidad de una fila. Una celda vacía cuenta como 0.
// Acepta enteros escritos como decimales ("5.0"); rechaza fracciones, negativos y texto.
func parseQuantity(v any) (int, bool) {
	s := strings.TrimSpace(rawString(v))
	if s == "" {
		return 0, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if !d.IsInteger() || d.IsNegative() || d.GreaterThan(maxQuantity) {
		return 0, false
	}
	return int(d.IntPart()), true
}
