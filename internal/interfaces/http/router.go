package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Impuestos-api/internal/application/taxcalc"
	"github.com/jhoicas/Impuestos-api/pkg/jwt"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CalculateTaxes *taxcalc.CalculateOrderTaxesUseCase
	Lookup         *taxcalc.LookupUseCase
	JWTSecret      string
	JWTIssuer      string
	Logger         *logger.Logger
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Cálculo (cualquier rol)
	taxHandler := NewTaxHandler(deps.CalculateTaxes, deps.Logger)
	api.Post("/taxes/calculate",
		RequireRole(jwt.RoleAdmin, jwt.RoleAuditor, jwt.RoleOperator),
		taxHandler.Calculate)

	// Auditoría de versiones (auditor/admin)
	lookupHandler := NewLookupHandler(deps.Lookup)
	auditOnly := RequireRole(jwt.RoleAdmin, jwt.RoleAuditor)
	api.Get("/taxpayers/:id/classification", auditOnly, lookupHandler.Classification)
	api.Get("/rules/:taxType", auditOnly, lookupHandler.Rule)
}
