package fiscal

import "context"

// CadastralCheck respuesta del registro sobre una referencia con formato válido.
type CadastralCheck struct {
	IsValid bool
	Message string
}

// CadastralChecker puerto de salida hacia el registro catastral (operación remota y asíncrona).
// La implementación concreta consulta la OVC del Catastro; en tests se inyecta un mock.
type CadastralChecker interface {
	Check(ctx context.Context, reference string) (*CadastralCheck, error)
}
