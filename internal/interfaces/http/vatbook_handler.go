package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/internal/application/reporting"
	"github.com/jhoicas/fincas-api/internal/domain"
	"github.com/jhoicas/fincas-api/pkg/logger"
)

// VATBookHandler libros registro de IVA.
type VATBookHandler struct {
	uc  *reporting.VATBookUseCase
	log *logger.Logger
}

// NewVATBookHandler construye el handler. uc nil si no hay base de datos configurada.
func NewVATBookHandler(uc *reporting.VATBookUseCase, log *logger.Logger) *VATBookHandler {
	return &VATBookHandler{uc: uc, log: log}
}

// GetReport godoc
// @Summary      Libros de IVA repercutido y soportado
// @Description  Filtra por ejercicio y, opcionalmente, trimestre o mes (el mes tiene prioridad).
//
//	Incluye desglose por tipo y neto por propietario ("A pagar" / "A favor").
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year     query  int     true   "Ejercicio"
// @Param        quarter  query  int     false  "Trimestre 1-4"
// @Param        month    query  int     false  "Mes 1-12"
// @Param        sort     query  string  false  "date, id, counterparty_name, counterparty_tax_id, tax_base, vat_rate, vat_amount, total_amount"
// @Param        dir      query  string  false  "asc o desc"
// @Success      200  {object}  dto.VATBookReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/vat-book [get]
func (h *VATBookHandler) GetReport(c *fiber.Ctx) error {
	if h.uc == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "REPORTS_UNAVAILABLE", Message: "informes no disponibles: base de datos no configurada",
		})
	}

	var req dto.VATBookRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	companyID := GetCompanyID(c)
	report, err := h.uc.GetReport(c.UserContext(), companyID, req)
	if err != nil {
		ev := h.log.Error()
		if errors.Is(err, domain.ErrInvalidInput) {
			ev = h.log.Debug()
		}
		ev.Err(err).Str("company_id", companyID).Msg("libro de IVA")
		return writeError(c, err)
	}
	return c.JSON(report)
}
