package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/internal/application/fiscal"
	"github.com/jhoicas/fincas-api/pkg/logger"
)

// FiscalHandler validación de NIF/NIE/CIF/pasaporte y de referencias catastrales.
type FiscalHandler struct {
	uc  *fiscal.DocumentUseCase
	log *logger.Logger
}

// NewFiscalHandler construye el handler.
func NewFiscalHandler(uc *fiscal.DocumentUseCase, log *logger.Logger) *FiscalHandler {
	return &FiscalHandler{uc: uc, log: log}
}

// Validate godoc
// @Summary      Valida un documento de identificación
// @Description  PERSON admite NIF, NIE o pasaporte; COMPANY exige CIF. El veredicto va en el cuerpo.
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ValidateDocumentRequest  true  "Documento"
// @Success      200   {object}  domain.ValidationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/validate [post]
func (h *FiscalHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.Validate(req))
}

// Classify godoc
// @Summary      Tipo de documento por su forma
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        value  query     string  true  "Documento"
// @Success      200    {object}  dto.ClassifyResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/fiscal/classify [get]
func (h *FiscalHandler) Classify(c *fiber.Ctx) error {
	value := c.Query("value")
	if value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "value es obligatorio"})
	}
	return c.JSON(h.uc.Classify(value))
}

// VerifyCadastralReference godoc
// @Summary      Verifica una referencia catastral
// @Description  Formato en local; si es correcto, consulta el Catastro. Si el Catastro no responde
//
//	se devuelve el veredicto de formato con registry_error.
//
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CadastralVerifyRequest  true  "Referencia"
// @Success      200   {object}  dto.CadastralVerifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fiscal/cadastral/verify [post]
func (h *FiscalHandler) VerifyCadastralReference(c *fiber.Ctx) error {
	var req dto.CadastralVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.VerifyCadastralReference(c.UserContext(), req)
	if err != nil {
		if resp == nil {
			return writeError(c, err)
		}
		h.log.Warn().Err(err).Str("reference", resp.Reference).Msg("catastro no disponible; solo formato")
	}
	return c.JSON(resp)
}
