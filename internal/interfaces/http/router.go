package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory      *inventory.Service
	Views          *inventory.ViewService
	Imports        *inventory.ImportUseCase
	Marks          *inventory.MarkService
	Reports        *usecase.ReportUseCase
	Assistant      *usecase.AssistantUseCase
	MaxUploadBytes int64
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		degraded := deps.Inventory.Degraded()
		markDegraded(c, degraded)
		return c.JSON(dto.HealthResponse{Status: "ok", Degraded: degraded})
	})

	api := app.Group("/api")

	// Catálogo
	productHandler := NewProductHandler(deps.Inventory)
	api.Get("/products", productHandler.List)
	api.Post("/products", productHandler.Create)
	api.Put("/products/:id", productHandler.Update)
	api.Delete("/products/:id", productHandler.Delete)
	api.Get("/subwarehouses", productHandler.Subwarehouses)

	// Movimientos y vistas
	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Views)
	api.Get("/stock", inventoryHandler.Stock)
	api.Get("/transactions/entries", inventoryHandler.Entries)
	api.Get("/transactions/exits", inventoryHandler.Exits)
	api.Post("/transactions", inventoryHandler.RegisterTransaction)
	api.Delete("/transactions/:id", inventoryHandler.DeleteTransaction)

	views := api.Group("/views/:view/filters")
	views.Get("/", inventoryHandler.GetFilters)
	views.Put("/", inventoryHandler.StageFilters)
	views.Delete("/", inventoryHandler.ClearFilters)
	views.Post("/apply", inventoryHandler.ApplyFilters)

	// Importación masiva
	importHandler := NewImportHandler(deps.Imports, deps.MaxUploadBytes)
	api.Post("/imports", importHandler.Preview)
	api.Get("/imports/:id", importHandler.Get)
	api.Post("/imports/:id/confirm", importHandler.Confirm)
	api.Delete("/imports/:id", importHandler.Discard)

	// Marcas
	markHandler := NewMarkHandler(deps.Marks)
	api.Get("/marks", markHandler.List)
	api.Post("/marks/:id/toggle", markHandler.Toggle)

	// Exportaciones
	exportHandler := NewExportHandler(deps.Inventory, deps.Views, deps.Reports)
	api.Get("/exports/:view", exportHandler.CSV)
	api.Get("/reports/stock.pdf", exportHandler.StockPDF)

	// Asistente
	assistantHandler := NewAssistantHandler(deps.Assistant)
	api.Post("/assistant/ask", assistantHandler.Ask)
}
