package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fincas-api/internal/application/billing"
	"github.com/jhoicas/fincas-api/internal/application/dto"
)

// BillingHandler cálculo de IVA, retención y total de líneas facturables.
type BillingHandler struct {
	uc *billing.CalculationUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.CalculationUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcula IVA, retención y total de una línea
// @Description  Con proportional se prorratea la base por días sobre el mes de referencia.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BillableLineRequest  true  "Línea"
// @Success      200   {object}  dto.CalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  domain.ValidationResult
// @Router       /api/billing/calculate [post]
func (h *BillingHandler) Calculate(c *fiber.Ctx) error {
	var req dto.BillableLineRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Calculate(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// CheckTotal godoc
// @Summary      Compara un total informado con el recalculado (tolerancia 0.01)
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CheckTotalRequest  true  "Línea y total"
// @Success      200   {object}  domain.ValidationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/check [post]
func (h *BillingHandler) CheckTotal(c *fiber.Ctx) error {
	var req dto.CheckTotalRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.CheckTotal(req))
}
