package vatbook

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Etiquetas del saldo de IVA neto. Positivo: el propietario debe a Hacienda.
const (
	LabelPayable = "A pagar"
	LabelCredit  = "A favor"
)

// RateGroup acumulado de un tipo de IVA.
type RateGroup struct {
	Rate      decimal.Decimal `json:"rate"`
	Count     int             `json:"count"`
	TotalBase decimal.Decimal `json:"total_base"`
	TotalVAT  decimal.Decimal `json:"total_vat"`
	Statutory bool            `json:"statutory"`
}

// Totals totales de un libro.
type Totals struct {
	TotalBase     decimal.Decimal `json:"total_base"`
	TotalVAT      decimal.Decimal `json:"total_vat"`
	TotalInvoices int             `json:"total_invoices"`
	AverageVAT    decimal.Decimal `json:"average_vat"`
}

// OwnerSummary IVA repercutido, soportado y neto de un propietario.
type OwnerSummary struct {
	OwnerID      string          `json:"owner_id"`
	OwnerName    string          `json:"owner_name"`
	VATCharged   decimal.Decimal `json:"vat_charged"`
	VATSupported decimal.Decimal `json:"vat_supported"`
	NetVAT       decimal.Decimal `json:"net_vat"`
}

// Label "A pagar" si NetVAT >= 0, "A favor" si es negativo.
func (s OwnerSummary) Label() string {
	if s.NetVAT.IsNegative() {
		return LabelCredit
	}
	return LabelPayable
}

// GroupByVATRate agrupa por tipo nominal, ordenado de menor a mayor tipo.
// 21 y 21.00 caen en el mismo grupo.
func GroupByVATRate(entries []Entry) []RateGroup {
	index := make(map[string]int)
	var groups []RateGroup
	for _, e := range entries {
		rate := e.Rate()
		key := rate.String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, RateGroup{Rate: rate, Statutory: isStatutory(rate)})
		}
		g := &groups[i]
		g.Count++
		g.TotalBase = g.TotalBase.Add(e.Base())
		g.TotalVAT = g.TotalVAT.Add(e.VAT())
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Rate.LessThan(groups[b].Rate) })
	return groups
}

func isStatutory(rate decimal.Decimal) bool {
	for _, r := range StatutoryRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// AggregateTotals suma bases y cuotas. AverageVAT = TotalVAT / número de filas, 0 si no hay filas.
func AggregateTotals(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		t.TotalBase = t.TotalBase.Add(e.Base())
		t.TotalVAT = t.TotalVAT.Add(e.VAT())
	}
	t.TotalInvoices = len(entries)
	if t.TotalInvoices > 0 {
		t.AverageVAT = t.TotalVAT.Div(decimal.NewFromInt(int64(t.TotalInvoices))).Round(2)
	}
	return t
}

// ComputeOwnerSummary IVA neto por propietario: repercutido (facturas emitidas) menos
// soportado (facturas recibidas y gastos imputables a sus inmuebles).
// Orden de primera aparición; las filas sin propietario no se imputan a nadie.
func ComputeOwnerSummary(charged, supported []Entry) []OwnerSummary {
	index := make(map[string]int)
	var out []OwnerSummary
	get := func(e Entry) *OwnerSummary {
		i, ok := index[e.OwnerID]
		if !ok {
			i = len(out)
			index[e.OwnerID] = i
			out = append(out, OwnerSummary{OwnerID: e.OwnerID, OwnerName: e.OwnerName})
		}
		s := &out[i]
		if s.OwnerName == "" {
			s.OwnerName = e.OwnerName
		}
		return s
	}

	for _, e := range charged {
		if e.OwnerID == "" {
			continue
		}
		s := get(e)
		s.VATCharged = s.VATCharged.Add(e.VAT())
	}
	for _, e := range supported {
		if e.OwnerID == "" {
			continue
		}
		s := get(e)
		s.VATSupported = s.VATSupported.Add(e.VAT())
	}
	for i := range out {
		out[i].NetVAT = out[i].VATCharged.Sub(out[i].VATSupported)
	}
	return out
}

// Book libro registro con sus filas, grupos por tipo y totales.
type Book struct {
	Entries []Entry     `json:"entries"`
	ByRate  []RateGroup `json:"by_rate"`
	Totals  Totals      `json:"totals"`
}

// Books libros de IVA repercutido y soportado de un período y el resumen por propietario.
type Books struct {
	Period    Period         `json:"period"`
	Charged   Book           `json:"charged"`
	Supported Book           `json:"supported"`
	Owners    []OwnerSummary `json:"owners"`
}

// BuildBooks filtra por período, descarta del libro soportado lo no deducible y agrega.
func BuildBooks(charged, supported []Entry, p Period) Books {
	charged = FilterByPeriod(charged, p)

	deductible := make([]Entry, 0, len(supported))
	for _, e := range supported {
		if p.Contains(e.Date) && e.Deductible() {
			deductible = append(deductible, e)
		}
	}

	return Books{
		Period:    p,
		Charged:   newBook(charged),
		Supported: newBook(deductible),
		Owners:    ComputeOwnerSummary(charged, deductible),
	}
}

func newBook(entries []Entry) Book {
	return Book{
		Entries: entries,
		ByRate:  GroupByVATRate(entries),
		Totals:  AggregateTotals(entries),
	}
}
