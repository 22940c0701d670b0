// seed_catalog carga el catálogo por defecto en el almacenamiento configurado
// (STORE_DRIVER). Los productos que ya existen no se modifican.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.json|.csv]
// Por defecto usa CATALOG_SEED_PATH o data/catalogo.json.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/almacen-api/internal/infrastructure/catalog"
	"github.com/jhoicas/almacen-api/internal/infrastructure/storage"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	path := cfg.App.CatalogSeedPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = "data/catalogo.json"
	}

	products, err := catalog.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	created, skipped, err := catalog.Seed(ctx, backend.Products, products)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo %s en %s: %d creados, %d ya existían.\n", path, backend.Driver, created, skipped)
}
