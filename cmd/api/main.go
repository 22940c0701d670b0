package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/importer"
	infraai "github.com/jhoicas/almacen-api/internal/infrastructure/ai"
	"github.com/jhoicas/almacen-api/internal/infrastructure/catalog"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	// Catálogo por defecto: respaldo del modo degradado.
	var fallback []*entity.Product
	if cfg.App.CatalogSeedPath != "" {
		fallback, err = catalog.LoadFile(cfg.App.CatalogSeedPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.App.CatalogSeedPath).Msg("catálogo por defecto no disponible")
		}
	}

	aliases := importer.DefaultAliases()
	if len(cfg.Import.IDAliases) > 0 {
		aliases.ID = cfg.Import.IDAliases
	}
	if len(cfg.Import.QuantityAliases) > 0 {
		aliases.Quantity = cfg.Import.QuantityAliases
	}

	inventorySvc := inventory.NewService(backend.Tx, backend.Products, backend.Transactions, fallback, log.Component("inventory"))
	viewSvc := inventory.NewViewService()
	importUC := inventory.NewImportUseCase(backend.Tx, backend.Products, aliases, cfg.Import.PendingTTL, log.Component("import"))
	markSvc := inventory.NewMarkService(backend.Marks, log.Component("marks"))

	// Sin API key el asistente responde 503.
	var llm ports.LLMService
	if cfg.AI.APIKey() != "" {
		switch cfg.AI.Provider {
		case config.ProviderGemini:
			llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		default:
			llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		}
	} else {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("asistente deshabilitado: falta API key")
	}
	assistantUC := usecase.NewAssistantUseCase(llm, inventorySvc, cfg.App.WarehouseName, cfg.AI.HistoryLimit)

	// PDF: reporte de stock
	reportUC := usecase.NewReportUseCase(infrapdf.NewStockReportGenerator(), inventorySvc, viewSvc, cfg.App.WarehouseName)

	maxUpload := int64(cfg.Import.MaxUploadMB) << 20
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(maxUpload) + 1<<20,
		UnescapePath: true,
		Immutable:    true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:      inventorySvc,
		Views:          viewSvc,
		Imports:        importUC,
		Marks:          markSvc,
		Reports:        reportUC,
		Assistant:      assistantUC,
		MaxUploadBytes: maxUpload,
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
