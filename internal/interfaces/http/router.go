package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cmi-stock/internal/application/auth"
	"github.com/jhoicas/cmi-stock/internal/application/movement"
	"github.com/jhoicas/cmi-stock/internal/application/quotation"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router. WS es opcional.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Results     ResultProvider
	QuotationUC *quotation.UseCase
	MovementUC  *movement.UseCase
	WS          fiber.Handler
	WSUpgrade   fiber.Handler
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

	ledgerHandler := NewLedgerHandler(deps.Results)
	protected.Get("/ledger", ledgerHandler.List)
	protected.Get("/ledger/:productId", ledgerHandler.Get)
	protected.Get("/units", ledgerHandler.Units)
	protected.Get("/analytics", ledgerHandler.Analytics)
	protected.Get("/diagnostics", ledgerHandler.Diagnostics)

	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	protected.Post("/quotations/calculate", quotationHandler.Calculate)
	protected.Get("/quotations/:id/summary", quotationHandler.Summary)
	protected.Get("/quotations/:id/pdf", quotationHandler.PDF)

	movementHandler := NewMovementHandler(deps.MovementUC)
	protected.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleStaff), movementHandler.Post)

	// WebSocket: invalidaciones de la instantánea
	if deps.WS != nil {
		upgrade := deps.WSUpgrade
		if upgrade == nil {
			upgrade = func(c *fiber.Ctx) error { return c.Next() }
		}
		app.Get("/ws", upgrade, AuthMiddleware(deps.JWTSecret), deps.WS)
	}
}
