package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidPeriod   = errors.New("período de facturación inválido")
	ErrInvalidDocument = errors.New("documento con formato inválido")
	ErrUpstream        = errors.New("servicio externo no disponible")
)

// ValidationError envuelve un ValidationResult inválido para propagarlo como error.
// errors.Is(err, ErrInvalidInput) es cierto.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	if e.Result.Message == "" {
		return ErrInvalidInput.Error()
	}
	return e.Result.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
