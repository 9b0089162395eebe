package vatbook

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField campo de ordenación del libro.
type SortField string

const (
	SortByDate              SortField = "date"
	SortByID                SortField = "id"
	SortByCounterpartyName  SortField = "counterparty_name"
	SortByCounterpartyTaxID SortField = "counterparty_tax_id"
	SortByTaxBase           SortField = "tax_base"
	SortByVATRate           SortField = "vat_rate"
	SortByVATAmount         SortField = "vat_amount"
	SortByTotalAmount       SortField = "total_amount"
)

// Direction sentido de la ordenación.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortField valida el nombre del campo recibido del cliente.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByDate, SortByID, SortByCounterpartyName, SortByCounterpartyTaxID,
		SortByTaxBase, SortByVATRate, SortByVATAmount, SortByTotalAmount:
		return f, nil
	default:
		return "", fmt.Errorf("campo de ordenación no soportado: %q", s)
	}
}

// ParseDirection "asc" o "desc"; vacío equivale a ascendente.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("dirección de ordenación no soportada: %q", s)
	}
}

// SortEntries devuelve una copia ordenada de forma estable. Textos con colación española
// (distingue mayúsculas), importes y fechas por valor. Los valores ausentes van siempre al final.
func SortEntries(entries []Entry, field SortField, dir Direction) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	col := collate.New(language.Spanish)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aMissing, bMissing := missing(a, field), missing(b, field)
		if aMissing || bMissing {
			return !aMissing && bMissing
		}
		c := compare(col, a, b, field)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func missing(e Entry, field SortField) bool {
	switch field {
	case SortByDate:
		return e.Date.IsZero()
	case SortByID:
		return e.ID == ""
	case SortByCounterpartyName:
		return e.CounterpartyName == ""
	case SortByCounterpartyTaxID:
		return e.CounterpartyTaxID == ""
	case SortByTaxBase:
		return !e.TaxBase.Valid
	case SortByVATRate:
		return !e.VATRatePercent.Valid
	case SortByVATAmount:
		return !e.VATAmount.Valid
	case SortByTotalAmount:
		return !e.TotalAmount.Valid
	default:
		return false
	}
}

func compare(col *collate.Collator, a, b Entry, field SortField) int {
	switch field {
	case SortByDate:
		return a.Date.Compare(b.Date)
	case SortByID:
		return col.CompareString(a.ID, b.ID)
	case SortByCounterpartyName:
		return col.CompareString(a.CounterpartyName, b.CounterpartyName)
	case SortByCounterpartyTaxID:
		return col.CompareString(a.CounterpartyTaxID, b.CounterpartyTaxID)
	case SortByTaxBase:
		return a.Base().Cmp(b.Base())
	case SortByVATRate:
		return a.Rate().Cmp(b.Rate())
	case SortByVATAmount:
		return a.VAT().Cmp(b.VAT())
	case SortByTotalAmount:
		return a.Total().Cmp(b.Total())
	default:
		return 0
	}
}
