package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fincas-api/internal/application/billing"
	"github.com/jhoicas/fincas-api/internal/application/fiscal"
	"github.com/jhoicas/fincas-api/internal/application/reporting"
	"github.com/jhoicas/fincas-api/pkg/logger"
)

// RouterDeps dependencias para el router. VATBookUC puede ser nil (sin base de datos).
type RouterDeps struct {
	DocumentUC    *fiscal.DocumentUseCase
	CalculationUC *billing.CalculationUseCase
	VATBookUC     *reporting.VATBookUseCase
	Logger        *logger.Logger
	JWTSecret     string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireCompany())

	// Documentos fiscales y catastro
	fiscalGroup := protected.Group("/fiscal")
	fiscalHandler := NewFiscalHandler(deps.DocumentUC, log.Component("fiscal"))
	fiscalGroup.Post("/validate", fiscalHandler.Validate)
	fiscalGroup.Get("/classify", fiscalHandler.Classify)
	fiscalGroup.Post("/cadastral/verify", fiscalHandler.VerifyCadastralReference)

	// Facturación
	billingGroup := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.CalculationUC)
	billingGroup.Post("/calculate", billingHandler.Calculate)
	billingGroup.Post("/check", billingHandler.CheckTotal)

	// Informes
	reports := protected.Group("/reports")
	vatBookHandler := NewVATBookHandler(deps.VATBookUC, log.Component("reports"))
	reports.Get("/vat-book", vatBookHandler.GetReport)
}
