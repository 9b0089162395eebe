// Package vatbook consolida facturas y gastos ya calculados en los libros registro de IVA
// (repercutido y soportado), agrupados por tipo, y en el resumen de IVA neto por propietario.
//
// Un campo numérico ausente cuenta como 0: una fila defectuosa no debe abortar el informe.
// Los datos ya pasaron por la validación de billing antes de llegar aquí.
package vatbook

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatutoryRates tipos de IVA vigentes. Solo se usan para etiquetar; cualquier otro tipo se procesa igual.
var StatutoryRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(4),
	decimal.NewFromInt(10),
	decimal.NewFromInt(21),
}

// Entry fila del libro registro. Los importes son anulables porque provienen de datos externos.
type Entry struct {
	ID                string              `json:"id"`
	Date              time.Time           `json:"date"`
	CounterpartyName  string              `json:"counterparty_name"`
	CounterpartyTaxID string              `json:"counterparty_tax_id"`
	TaxBase           decimal.NullDecimal `json:"tax_base"`
	VATRatePercent    decimal.NullDecimal `json:"vat_rate"`
	VATAmount         decimal.NullDecimal `json:"vat_amount"`
	TotalAmount       decimal.NullDecimal `json:"total_amount"`
	IsDeductible      *bool               `json:"is_deductible,omitempty"`
	OwnerID           string              `json:"owner_id,omitempty"`
	OwnerName         string              `json:"owner_name,omitempty"`
}

// Base base imponible o 0.
func (e Entry) Base() decimal.Decimal { return orZero(e.TaxBase) }

// Rate tipo de IVA o 0.
func (e Entry) Rate() decimal.Decimal { return orZero(e.VATRatePercent) }

// VAT cuota de IVA o 0.
func (e Entry) VAT() decimal.Decimal { return orZero(e.VATAmount) }

// Total importe total o 0.
func (e Entry) Total() decimal.Decimal { return orZero(e.TotalAmount) }

// Deductible nil se considera deducible.
func (e Entry) Deductible() bool { return e.IsDeductible == nil || *e.IsDeductible }

// Complete false si algún importe tuvo que sustituirse por 0.
func (e Entry) Complete() bool {
	return e.TaxBase.Valid && e.VATRatePercent.Valid && e.VATAmount.Valid && e.TotalAmount.Valid
}

// Incomplete cuenta las filas con algún importe ausente.
func Incomplete(entries []Entry) int {
	var n int
	for _, e := range entries {
		if !e.Complete() {
			n++
		}
	}
	return n
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// Period período de declaración. Quarter y Month son opcionales (0 = no indicado);
// si se indican ambos, Month tiene prioridad.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter,omitempty"`
	Month   int `json:"month,omitempty"`
}

// Contains indica si la fecha cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() || t.Year() != p.Year {
		return false
	}
	m := int(t.Month())
	switch {
	case p.Month != 0:
		return m == p.Month
	case p.Quarter != 0:
		return m >= 3*p.Quarter-2 && m <= 3*p.Quarter
	default:
		return true
	}
}

// FilterByPeriod devuelve, en el mismo orden, las filas cuya fecha cae en el período.
func FilterByPeriod(entries []Entry, p Period) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
