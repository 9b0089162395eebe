// Package fiscal expone la validación de documentos y la verificación de referencias catastrales
// a la capa de entrada (formularios de clientes, propietarios, empleados y proveedores).
package fiscal

import (
	"context"
	"time"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/internal/domain"
	domfiscal "github.com/jhoicas/fincas-api/internal/domain/fiscal"
)

// DocumentUseCase valida documentos con el motor local y delega la existencia catastral al checker.
type DocumentUseCase struct {
	checker CadastralChecker
	timeout time.Duration
}

// NewDocumentUseCase construye el caso de uso. checker puede ser nil: entonces solo se valida el formato.
func NewDocumentUseCase(checker CadastralChecker, timeout time.Duration) *DocumentUseCase {
	return &DocumentUseCase{checker: checker, timeout: timeout}
}

// Validate valida el documento según el tipo de sujeto; por defecto PERSON.
func (uc *DocumentUseCase) Validate(in dto.ValidateDocumentRequest) domain.ValidationResult {
	kind := domfiscal.SubjectKind(in.SubjectKind)
	if kind == "" {
		kind = domfiscal.SubjectPerson
	}
	return domfiscal.ValidateIdentification(in.Value, kind)
}

// Classify tipo de documento por forma.
func (uc *DocumentUseCase) Classify(value string) dto.ClassifyResponse {
	return dto.ClassifyResponse{
		Value:        domfiscal.Normalize(value),
		DocumentType: string(domfiscal.Classify(value)),
	}
}

// VerifyCadastralReference valida el formato en local y, solo si es correcto, consulta el registro
// con su propio plazo. Si el registro falla se devuelve el veredicto de formato junto al error:
// el llamador decide si el formato basta.
func (uc *DocumentUseCase) VerifyCadastralReference(ctx context.Context, in dto.CadastralVerifyRequest) (*dto.CadastralVerifyResponse, error) {
	format := domfiscal.CheckCadastralReference(in.Reference)
	resp := &dto.CadastralVerifyResponse{
		Reference:   domfiscal.Normalize(in.Reference),
		FormatValid: format.Valid,
		Message:     format.Message,
	}
	if !format.Valid || uc.checker == nil {
		return resp, nil
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}
	res, err := uc.checker.Check(ctx, resp.Reference)
	if err != nil {
		resp.RegistryErr = err.Error()
		return resp, err
	}
	resp.Registry = &dto.CadastralRegistry{IsValid: res.IsValid, Message: res.Message}
	return resp, nil
}
