package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/bom"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC  *ledger.MovementUseCase
	VoidUC      *ledger.VoidUseCase
	HistoryUC   *ledger.HistoryUseCase
	CatalogUC   *catalog.UseCase
	ImportUC    *catalog.ImportUseCase
	StocktakeUC *ledger.StocktakeUseCase
	RegistryUC  *bom.RegistryUseCase
	OutboundUC  *bom.OutboundUseCase
	Sessions    *bom.SessionStore
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos simples e historial
	movementHandler := NewMovementHandler(deps.MovementUC, deps.VoidUC, deps.HistoryUC, deps.AuthUC)
	movements := protected.Group("/movements")
	movements.Post("/", movementHandler.Submit)
	movements.Get("/", movementHandler.List)
	movements.Post("/:id/void", RequireAdmin(), movementHandler.Void)

	// Catálogo de artículos
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.ImportUC, deps.StocktakeUC, deps.AuthUC)
	items := protected.Group("/items")
	items.Get("/", catalogHandler.SearchItems)
	items.Post("/", catalogHandler.UpsertItem)
	items.Get("/low-stock", catalogHandler.LowStockReport)
	items.Post("/import", RequireAdmin(), catalogHandler.ImportItems)
	items.Get("/:barcode", catalogHandler.ItemDetail)
	items.Put("/:barcode/safe-stock", catalogHandler.SetSafeStock)
	items.Delete("/:barcode", RequireAdmin(), catalogHandler.DeleteItem)

	// Ubicaciones y mapa
	locations := protected.Group("/locations")
	locations.Get("/", catalogHandler.ListLocations)
	locations.Post("/import", RequireAdmin(), catalogHandler.ImportLocations)
	locations.Post("/rename-floor", RequireAdmin(), catalogHandler.RenameFloor)

	// Conteo físico y reportes
	protected.Post("/inventory/import", RequireAdmin(), catalogHandler.ImportInventory)
	protected.Get("/reports/inventory", catalogHandler.InventoryReport)

	// BOM: registro y sesión de salida
	bomHandler := NewBomHandler(deps.RegistryUC, deps.OutboundUC, deps.Sessions)
	bomGroup := protected.Group("/bom")
	bomGroup.Get("/", bomHandler.ListAssemblies)
	bomGroup.Post("/import", RequireAdmin(), bomHandler.ImportBOM)
	bomGroup.Post("/outbound/start", bomHandler.StartOutbound)
	bomGroup.Get("/outbound/session", bomHandler.GetSession)
	bomGroup.Post("/outbound/pick", bomHandler.StagePick)
	bomGroup.Post("/outbound/skip", bomHandler.SkipComponent)
	bomGroup.Post("/outbound/cancel", bomHandler.CancelOutbound)
	bomGroup.Post("/outbound/commit", bomHandler.CommitOutbound)
}
