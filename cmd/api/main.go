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
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// collaborators puertos del libro según STORE_DRIVER.
type collaborators struct {
	inventory      repository.InventoryRepository
	movements      repository.MovementRepository
	purchaseOrders repository.PurchaseOrderRepository
	salesOrders    repository.SalesOrderRepository
	leadTimes      repository.LeadTimeRepository
	totals         repository.MovementTotalsRepository
	demand         repository.DemandRepository
	users          repository.UserRepository
}

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

	var deps collaborators
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		deps = postgresCollaborators(pool)
	default:
		deps = memoryCollaborators()
	}

	// Los saldos viven en memoria en ambos modos; se siembran desde la proyección persistida.
	balanceStore := memory.NewBalanceStore(deps.inventory)

	ledgerUC := inventory.NewFinalizeMovementUseCase(inventory.LedgerDeps{
		Store:          balanceStore,
		Inventory:      deps.inventory,
		Movements:      deps.movements,
		PurchaseOrders: deps.purchaseOrders,
		SalesOrders:    deps.salesOrders,
		LeadTimes:      deps.leadTimes,
		Totals:         deps.totals,
		Log:            log,
	})

	reportGenerator := infrapdf.NewReplenishmentReportGenerator(cfg.App.Name)
	replenishmentUC := inventory.NewReplenishmentUseCase(
		deps.demand, deps.inventory, deps.leadTimes, reportGenerator,
		inventory.ReplenishmentConfig{
			Window: domaininv.DemandWindow{
				MinWeeks:          cfg.Reorder.MinWeeks,
				MaxWeeks:          cfg.Reorder.MaxWeeks,
				ExcludePromoWeeks: cfg.Reorder.ExcludePromoWeeks,
			},
			ServiceLevelZ:        cfg.Reorder.ServiceLevelZ,
			DefaultLeadTimeWeeks: cfg.Reorder.DefaultLeadTimeWeeks,
		},
	)

	authUC := auth.NewAuthUseCase(deps.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Auth.AdminEmail != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Auth.AdminEmail).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Replenishment: replenishmentUC,
		Auth:          authUC,
		JWTSecret:     cfg.JWT.Secret,
		AppName:       cfg.App.Name,
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

func memoryCollaborators() collaborators {
	return collaborators{
		inventory:      memory.NewInventoryRepository(),
		movements:      memory.NewMovementRepository(),
		purchaseOrders: memory.NewPurchaseOrderRepository(),
		salesOrders:    memory.NewSalesOrderRepository(),
		leadTimes:      memory.NewLeadTimeRepository(),
		totals:         memory.NewMovementTotalsRepository(),
		demand:         memory.NewDemandRepository(),
		users:          memory.NewUserRepository(),
	}
}

func postgresCollaborators(pool *pgxpool.Pool) collaborators {
	return collaborators{
		inventory:      postgres.NewInventoryRepository(pool),
		movements:      postgres.NewMovementRepository(pool),
		purchaseOrders: postgres.NewPurchaseOrderRepository(pool),
		salesOrders:    postgres.NewSalesOrderRepository(pool),
		leadTimes:      postgres.NewLeadTimeRepository(pool),
		totals:         postgres.NewMovementTotalsRepository(pool),
		demand:         postgres.NewDemandRepository(pool),
		users:          postgres.NewUserRepository(pool),
	}
}
