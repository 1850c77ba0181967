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
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/bom"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool: lecturas fuera de transacción. Las escrituras van
	// siempre por el TxRunner con repos atados a la tx.
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	bomRepo := postgres.NewBomRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := ledger.NewMovementUseCase(txRunner, invRepo, itemRepo)
	voidUC := ledger.NewVoidUseCase(txRunner)
	historyUC := ledger.NewHistoryUseCase(txRepo)
	catalogUC := catalog.NewUseCase(itemRepo, locationRepo, invRepo)
	importUC := catalog.NewImportUseCase(txRunner)
	stocktakeUC := ledger.NewStocktakeUseCase(txRunner)
	registryUC := bom.NewRegistryUseCase(txRunner, bomRepo, itemRepo, invRepo)
	outboundUC := bom.NewOutboundUseCase(txRunner, bomRepo, itemRepo, invRepo)
	sessions := bom.NewSessionStore()
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:  movementUC,
		VoidUC:      voidUC,
		HistoryUC:   historyUC,
		CatalogUC:   catalogUC,
		ImportUC:    importUC,
		StocktakeUC: stocktakeUC,
		RegistryUC:  registryUC,
		OutboundUC:  outboundUC,
		Sessions:    sessions,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
