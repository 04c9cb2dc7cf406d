package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticleUC       *usecase.ArticleUseCase
	CategoryUC      *usecase.CategoryUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	StockUC         *usecase.StockUseCase
	ProcessMovement *movement.ProcessUseCase
	TransferUC      *transfer.UseCase
	ReplenishmentUC *replenishment.UseCase
	PurchaseUC      *purchase.UseCase
	InventoryUC     *inventory.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Toda la API exige Bearer Token; las
// decisiones de workflow exigen además rol de gestión.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	manage := RequireRole(domain.RoleAdmin, domain.RoleStockManager)

	// Catálogo
	articles := api.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Post("/", manage, articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", manage, articleHandler.Update)
	articles.Delete("/:id", manage, articleHandler.Delete)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", manage, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", manage, categoryHandler.Update)
	categories.Delete("/:id", manage, categoryHandler.Delete)

	// Almacenes
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", manage, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", manage, warehouseHandler.Update)
	warehouses.Delete("/:id", manage, warehouseHandler.Delete)

	// Stock (solo lectura)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/item", stockHandler.Get)
	stock.Get("/alerts", stockHandler.ListAlerts)

	// Movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.ProcessMovement)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	// Transferencias
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/receive", transferHandler.Receive)

	// Reaprovisionamiento
	replenishments := api.Group("/replenishment-requests")
	replenishmentHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	replenishments.Post("/", replenishmentHandler.Create)
	replenishments.Get("/", replenishmentHandler.List)
	replenishments.Get("/:id", replenishmentHandler.GetByID)
	replenishments.Post("/:id/approve", manage, replenishmentHandler.Approve)
	replenishments.Post("/:id/reject", manage, replenishmentHandler.Reject)

	// Compras
	purchases := api.Group("/purchase-requests")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/approve", RequireRole(domain.RoleAdmin), purchaseHandler.ApproveFinance)
	purchases.Post("/:id/reject", RequireRole(domain.RoleAdmin), purchaseHandler.RejectFinance)
	purchases.Post("/:id/receive", purchaseHandler.Receive)

	// Inventarios físicos
	counts := api.Group("/inventory-counts")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	counts.Post("/", inventoryHandler.Create)
	counts.Get("/", inventoryHandler.List)
	counts.Get("/:id", inventoryHandler.GetByID)
	counts.Post("/:id/lines", inventoryHandler.AddLine)
	counts.Post("/:id/validate", manage, inventoryHandler.Validate)
	counts.Post("/:id/reject", manage, inventoryHandler.Reject)
}
