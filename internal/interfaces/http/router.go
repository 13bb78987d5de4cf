package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.FinalizeMovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Auth          *auth.AuthUseCase
	JWTSecret     string
	AppName       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Rutas públicas: se registran antes del grupo protegido (Fiber respeta el orden).
	var authHandler *AuthHandler
	if deps.Auth != nil {
		authHandler = NewAuthHandler(deps.Auth)
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	if authHandler != nil {
		protected.Post("/auth/register", RequireRole(RoleAdmin), authHandler.Register)
	}

	invGroup := protected.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	invGroup.Post("/movements", ledgerHandler.FinalizeMovement)
	invGroup.Get("/balances", ledgerHandler.GetBalances)
	invGroup.Get("/skus/:sku", ledgerHandler.GetSKUInventory)
	invGroup.Get("/skus/:sku/totals", ledgerHandler.GetSKUTotals)
	invGroup.Get("/skus/:sku/movements", ledgerHandler.ListSKUMovements)
	invGroup.Post("/reset", RequireRole(RoleAdmin), ledgerHandler.ResetState)

	if deps.Replenishment != nil {
		repGroup := protected.Group("/replenishment")
		repHandler := NewReplenishmentHandler(deps.Replenishment)
		repGroup.Post("/reorder-point", repHandler.CalculateReorderPoint)
		repGroup.Get("/list", repHandler.GetReplenishmentList)
		repGroup.Get("/report.pdf", repHandler.GetReplenishmentReport)
	}
}
