package repository

import (
	"context"

	"github.com/jhoicas/fincas-api/internal/domain/vatbook"
)

// VATBookRepository fuente de filas para los libros registro de IVA.
// Las implementaciones son read-only; el filtrado fino por trimestre/mes lo hace vatbook.
type VATBookRepository interface {
	// ListCharged facturas emitidas (IVA repercutido) del ejercicio, con el propietario del inmueble facturado.
	ListCharged(ctx context.Context, companyID string, year int) ([]vatbook.Entry, error)

	// ListSupported facturas recibidas y gastos (IVA soportado) del ejercicio, imputados al
	// propietario del inmueble al que se cargan.
	ListSupported(ctx context.Context, companyID string, year int) ([]vatbook.Entry, error)
}
