// Package billing calcula IVA, retención IRPF y total de una línea facturable,
// incluida la facturación proporcional (prorrateo por días) dentro de un mes de referencia.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fincas-api/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	// Tolerance diferencia absoluta admitida entre un total informado y el recalculado.
	Tolerance = decimal.RequireFromString("0.01")
)

// Mode modo de cálculo de la línea.
type Mode int

const (
	ModeStandard Mode = iota
	ModeProportional
)

// Period rango de fechas facturado (ambos extremos incluidos) y mes de referencia
// cuyo número de días actúa como denominador del prorrateo.
type Period struct {
	StartDate      time.Time
	EndDate        time.Time
	ReferenceMonth time.Time
}

// BillableLine línea facturable. TaxBase solo puede ser negativa si IsRefund es true;
// los porcentajes deben estar en [0, 100].
type BillableLine struct {
	TaxBase            decimal.Decimal
	VATRatePercent     decimal.Decimal
	WithholdingPercent decimal.Decimal
	IsRefund           bool
	Proportional       *Period
}

// Mode deriva el modo de cálculo de la presencia del período.
func (l BillableLine) Mode() Mode {
	if l.Proportional != nil {
		return ModeProportional
	}
	return ModeStandard
}

// CalculationResult importes calculados. ProratedBase y DaysBilled solo se informan en modo proporcional.
type CalculationResult struct {
	VATAmount         decimal.Decimal
	WithholdingAmount decimal.Decimal
	Total             decimal.Decimal
	ProratedBase      *decimal.Decimal
	DaysBilled        int
}

// CalculateStandard IVA = base*tipo/100, retención = base*%/100, total = base + IVA - retención.
// Importes redondeados a 2 decimales (mitad alejándose de cero). Válido para bases negativas (abonos).
func CalculateStandard(line BillableLine) CalculationResult {
	return calculateOn(line.TaxBase, line)
}

func calculateOn(base decimal.Decimal, line BillableLine) CalculationResult {
	vat := base.Mul(line.VATRatePercent).Div(hundred).Round(2)
	withholding := base.Mul(line.WithholdingPercent).Div(hundred).Round(2)
	return CalculationResult{
		VATAmount:         vat,
		WithholdingAmount: withholding,
		Total:             base.Add(vat).Sub(withholding).Round(2),
	}
}

// CalculateProportional prorratea la base por los días facturados sobre los días del mes de referencia
// y después aplica CalculateStandard sobre la base prorrateada. El período no puede superar los días
// del mes de referencia: la base prorrateada nunca excede la base mensual.
func CalculateProportional(line BillableLine) (CalculationResult, error) {
	p := line.Proportional
	if p == nil {
		return CalculationResult{}, fmt.Errorf("%w: la línea no tiene período proporcional", domain.ErrInvalidPeriod)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() || p.ReferenceMonth.IsZero() {
		return CalculationResult{}, fmt.Errorf("%w: fechas de inicio, fin y mes de referencia son obligatorias", domain.ErrInvalidPeriod)
	}
	days := DaysBetweenInclusive(p.StartDate, p.EndDate)
	if days < 1 {
		return CalculationResult{}, fmt.Errorf("%w: la fecha de inicio (%s) es posterior a la de fin (%s)",
			domain.ErrInvalidPeriod, p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly))
	}

	monthDays := DaysInMonth(p.ReferenceMonth)
	if days > monthDays {
		return CalculationResult{}, fmt.Errorf("%w: %d días facturados superan los %d del mes de referencia (%s)",
			domain.ErrInvalidPeriod, days, monthDays, p.ReferenceMonth.Format("2006-01"))
	}

	// Multiplicar antes de dividir: un mes completo devuelve exactamente la base.
	prorated := line.TaxBase.Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(int64(monthDays)))

	res := calculateOn(prorated, line)
	res.ProratedBase = &prorated
	res.DaysBilled = days
	return res, nil
}

// Calculate elige el cálculo según el modo de la línea.
func Calculate(line BillableLine) (CalculationResult, error) {
	switch line.Mode() {
	case ModeStandard:
		return CalculateStandard(line), nil
	case ModeProportional:
		return CalculateProportional(line)
	default:
		return CalculationResult{}, fmt.Errorf("modo de cálculo desconocido: %d", line.Mode())
	}
}

// EffectiveBase base sobre la que se calcularon los importes.
func (r CalculationResult) EffectiveBase(line BillableLine) decimal.Decimal {
	if r.ProratedBase != nil {
		return *r.ProratedBase
	}
	return line.TaxBase
}

// DaysInMonth días naturales del mes al que pertenece t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetweenInclusive días naturales entre start y end, ambos incluidos. Ignora la hora;
// devuelve 0 o menos si start es posterior a end.
func DaysBetweenInclusive(start, end time.Time) int {
	s := civilDate(start)
	e := civilDate(end)
	return int(e.Sub(s).Hours()/24) + 1
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
