package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/authsvc"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	articleRepo := postgres.NewArticleRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	replenishmentRepo := postgres.NewReplenishmentRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	countRepo := postgres.NewInventoryCountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authorizer := authsvc.New(authsvc.Options{
		BaseURL: cfg.Auth.ServiceURL,
		Timeout: time.Duration(cfg.Auth.TimeoutSeconds) * time.Second,
		TTL:     time.Duration(cfg.Auth.CacheTTLSeconds) * time.Second,
		Logger:  log,
	})

	articleUC := usecase.NewArticleUseCase(articleRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	stockUC := usecase.NewStockUseCase(stockRepo)
	processMovementUC := movement.NewProcessUseCase(txRunner, movementRepo, articleRepo, warehouseRepo, authorizer)
	transferUC := transfer.NewUseCase(txRunner, transferRepo, articleRepo, warehouseRepo)
	replenishmentUC := replenishment.NewUseCase(replenishmentRepo, articleRepo, warehouseRepo)
	purchaseUC := purchase.NewUseCase(txRunner, purchaseRepo, articleRepo, warehouseRepo)
	inventoryUC := inventory.NewUseCase(txRunner, countRepo, stockRepo, articleRepo, warehouseRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ArticleUC:       articleUC,
		CategoryUC:      categoryUC,
		WarehouseUC:     warehouseUC,
		StockUC:         stockUC,
		ProcessMovement: processMovementUC,
		TransferUC:      transferUC,
		ReplenishmentUC: replenishmentUC,
		PurchaseUC:      purchaseUC,
		InventoryUC:     inventoryUC,
		JWTSecret:       cfg.JWT.Secret,
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
