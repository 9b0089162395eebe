package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fincas-api/internal/domain/repository"
	"github.com/jhoicas/fincas-api/internal/domain/vatbook"
)

var _ repository.VATBookRepository = (*VATBookRepo)(nil)

// VATBookRepo consultas de solo lectura que alimentan los libros de IVA.
// Los importes NULL llegan como decimal.NullDecimal inválido y vatbook los trata como 0.
type VATBookRepo struct {
	q Querier
}

// NewVATBookRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVATBookRepository(q Querier) *VATBookRepo {
	return &VATBookRepo{q: q}
}

// ListCharged facturas emitidas a inquilinos/clientes; el propietario es el del inmueble facturado.
func (r *VATBookRepo) ListCharged(ctx context.Context, companyID string, year int) ([]vatbook.Entry, error) {
	const query = `
	SELECT
	    i.id::TEXT,
	    i.date,
	    COALESCE(c.name, '')       AS counterparty_name,
	    COALESCE(c.tax_id, '')     AS counterparty_tax_id,
	    i.tax_base,
	    i.vat_rate,
	    i.vat_amount,
	    i.total,
	    NULL::BOOLEAN              AS is_deductible,
	    COALESCE(o.id::TEXT, '')   AS owner_id,
	    COALESCE(o.name, '')       AS owner_name
	FROM invoices i
	LEFT JOIN clients c ON c.id = i.client_id
	LEFT JOIN estates e ON e.id = i.estate_id
	LEFT JOIN owners  o ON o.id = e.owner_id
	WHERE i.company_id = $1
	  AND EXTRACT(YEAR FROM i.date) = $2
	ORDER BY i.date, i.id`

	rows, err := r.q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("vatbook.ListCharged: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("vatbook.ListCharged: %w", err)
	}
	return entries, nil
}

// ListSupported gastos y facturas de proveedores cargados a los inmuebles de la cartera.
func (r *VATBookRepo) ListSupported(ctx context.Context, companyID string, year int) ([]vatbook.Entry, error) {
	const query = `
	SELECT
	    x.id::TEXT,
	    x.date,
	    COALESCE(x.supplier_name, '')   AS counterparty_name,
	    COALESCE(x.supplier_tax_id, '') AS counterparty_tax_id,
	    x.tax_base,
	    x.vat_rate,
	    x.vat_amount,
	    x.total,
	    x.is_deductible,
	    COALESCE(o.id::TEXT, '')        AS owner_id,
	    COALESCE(o.name, '')            AS owner_name
	FROM expenses x
	LEFT JOIN estates e ON e.id = x.estate_id
	LEFT JOIN owners  o ON o.id = e.owner_id
	WHERE x.company_id = $1
	  AND EXTRACT(YEAR FROM x.date) = $2
	ORDER BY x.date, x.id`

	rows, err := r.q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("vatbook.ListSupported: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("vatbook.ListSupported: %w", err)
	}
	return entries, nil
}

func scanEntries(rows pgx.Rows) ([]vatbook.Entry, error) {
	defer rows.Close()

	var entries []vatbook.Entry
	for rows.Next() {
		var e vatbook.Entry
		var date *time.Time
		if err := rows.Scan(
			&e.ID,
			&date,
			&e.CounterpartyName,
			&e.CounterpartyTaxID,
			&e.TaxBase,
			&e.VATRatePercent,
			&e.VATAmount,
			&e.TotalAmount,
			&e.IsDeductible,
			&e.OwnerID,
			&e.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if date != nil {
			e.Date = *date
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
