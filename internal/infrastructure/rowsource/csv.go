// Package rowsource decodifica archivos subidos por el operador en filas crudas
// para la reconciliación. Solo CSV: los formatos binarios de hoja de cálculo
// se exportan a CSV antes de subirlos.
package rowsource

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain/importer"
)

// ErrNoHeader el archivo no tiene una fila de encabezado.
var ErrNoHeader = errors.New("el archivo no tiene encabezados")

// candidatos de separador, en orden de preferencia ante empate.
var delimiters = []rune{',', ';', '\t'}

// DecodeCSV lee un CSV con encabezado y devuelve una fila por línea de datos.
// Las celdas conservan su texto tal cual; las líneas vacías (o solo con
// separadores) no generan fila. Una fila más corta que el encabezado no trae
// las columnas que le faltan.
func DecodeCSV(r io.Reader) ([]importer.RowRecord, error) {
	u, err := utf8Reader(r)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(u)

	first, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(firstLine(first))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}

	var rows []importer.RowRecord
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, toRow(header, record))
	}
	return rows, nil
}

func toRow(header, record []string) importer.RowRecord {
	row := make(importer.RowRecord, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" || i >= len(record) {
			continue
		}
		if _, dup := row[h]; dup {
			continue
		}
		row[h] = record[i]
	}
	return row
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func firstLine(b []byte) string {
	s := string(b)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// sniffDelimiter elige el separador más frecuente fuera de comillas en la primera línea.
func sniffDelimiter(line string) rune {
	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, c := range line {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}
	best := delimiters[0]
	for _, d := range delimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
