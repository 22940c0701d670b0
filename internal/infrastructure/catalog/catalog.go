// Package catalog carga el catálogo por defecto desde un archivo (JSON o CSV).
// Se usa para sembrar el almacenamiento y como respaldo en modo degradado.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/importer"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/rowsource"
)

// Encabezados aceptados en el CSV del catálogo (ya normalizados al comparar).
var (
	idHeaders           = []string{"item", "código de item", "codigo", "código", "id"}
	nameHeaders         = []string{"nombre del producto", "nombre", "producto", "name"}
	subwarehouseHeaders = []string{"subalmacén", "subalmacen", "sub almacén", "subwarehouse"}
)

// LoadFile lee el catálogo. La extensión .json indica JSON ([{id,name,subwarehouse}]);
// cualquier otra se lee como CSV con encabezado.
func LoadFile(path string) ([]*entity.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(f)
	}
	return DecodeCSV(f)
}

// DecodeJSON lee un arreglo de productos.
func DecodeJSON(r io.Reader) ([]*entity.Product, error) {
	var raw []*entity.Product
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decodificar catálogo JSON: %w", err)
	}
	return clean(raw)
}

// DecodeCSV lee un catálogo con columnas de código, nombre y subalmacén.
func DecodeCSV(r io.Reader) ([]*entity.Product, error) {
	rows, err := rowsource.DecodeCSV(r)
	if err != nil {
		return nil, err
	}
	raw := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		idx := make(map[string]string, len(row))
		for k, v := range row {
			if s, ok := v.(string); ok {
				idx[importer.NormalizeHeader(k)] = s
			}
		}
		raw = append(raw, &entity.Product{
			ID:           pick(idx, idHeaders),
			Name:         pick(idx, nameHeaders),
			Subwarehouse: pick(idx, subwarehouseHeaders),
		})
	}
	return clean(raw)
}

// clean recorta espacios, exige los tres campos y rechaza códigos repetidos.
func clean(raw []*entity.Product) ([]*entity.Product, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]*entity.Product, 0, len(raw))
	for i, p := range raw {
		if p == nil {
			continue
		}
		c := &entity.Product{
			ID:           strings.TrimSpace(p.ID),
			Name:         strings.TrimSpace(p.Name),
			Subwarehouse: strings.TrimSpace(p.Subwarehouse),
		}
		if c.ID == "" || c.Name == "" || c.Subwarehouse == "" {
			return nil, fmt.Errorf("producto %d incompleto: %w", i+1, domain.ErrInvalidInput)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("código %q repetido: %w", c.ID, domain.ErrDuplicate)
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func pick(idx map[string]string, headers []string) string {
	for _, h := range headers {
		if v, ok := idx[importer.NormalizeHeader(h)]; ok {
			return v
		}
	}
	return ""
}

// Seed crea los productos que aún no existen. Los existentes no se modifican.
func Seed(ctx context.Context, repo repository.ProductRepository, products []*entity.Product) (created, skipped int, err error) {
	for _, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("crear %s: %w", p.ID, err)
		}
		created++
	}
	return created, skipped, nil
}
