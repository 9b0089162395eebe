package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fincas-api/internal/domain"
	"github.com/jhoicas/fincas-api/internal/domain/billing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

// ── Cálculo estándar ──────────────────────────────────────────────────────────

func TestCalculateStandard_IVAyRetencion(t *testing.T) {
	res := billing.CalculateStandard(billing.BillableLine{
		TaxBase:            dec("1000"),
		VATRatePercent:     dec("21"),
		WithholdingPercent: dec("15"),
	})
	assertDecimal(t, "210.00", res.VATAmount, "IVA")
	assertDecimal(t, "150.00", res.WithholdingAmount, "retención")
	assertDecimal(t, "1060.00", res.Total, "total")
	assert.Nil(t, res.ProratedBase)
	assert.Zero(t, res.DaysBilled)
}

func TestCalculateStandard_Abono(t *testing.T) {
	res := billing.CalculateStandard(billing.BillableLine{
		TaxBase:        dec("-1000"),
		VATRatePercent: dec("21"),
		IsRefund:       true,
	})
	assertDecimal(t, "-210", res.VATAmount, "IVA")
	assertDecimal(t, "-1210.00", res.Total, "total")
}

func TestCalculateStandard_RedondeoMitadAlejandoseDeCero(t *testing.T) {
	// 10.05 * 10% = 1.005 -> 1.01 ; -10.05 * 10% = -1.005 -> -1.01
	res := billing.CalculateStandard(billing.BillableLine{TaxBase: dec("10.05"), VATRatePercent: dec("10")})
	assertDecimal(t, "1.01", res.VATAmount, "IVA positivo")

	res = billing.CalculateStandard(billing.BillableLine{TaxBase: dec("-10.05"), VATRatePercent: dec("10"), IsRefund: true})
	assertDecimal(t, "-1.01", res.VATAmount, "IVA negativo")
}

// total == base + IVA - retención dentro de la tolerancia de redondeo.
func TestCalculateStandard_InvarianteTotal(t *testing.T) {
	bases := []string{"0", "0.01", "33.33", "99.995", "1234.56", "-87.13"}
	rates := []string{"0", "4", "10", "21", "7.5"}
	for _, b := range bases {
		for _, r := range rates {
			line := billing.BillableLine{TaxBase: dec(b), VATRatePercent: dec(r), WithholdingPercent: dec("19"), IsRefund: true}
			res := billing.CalculateStandard(line)
			expected := line.TaxBase.Add(res.VATAmount).Sub(res.WithholdingAmount)
			assert.True(t, res.Total.Sub(expected).Abs().LessThanOrEqual(billing.Tolerance), "base %s tipo %s", b, r)
		}
	}
}

// ── Cálculo proporcional ──────────────────────────────────────────────────────

func TestCalculateProportional_MitadDeMes(t *testing.T) {
	res, err := billing.CalculateProportional(billing.BillableLine{
		TaxBase:        dec("1000"),
		VATRatePercent: dec("21"),
		Proportional: &billing.Period{
			StartDate:      date(2024, time.April, 1),
			EndDate:        date(2024, time.April, 15),
			ReferenceMonth: date(2024, time.April, 1),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, res.DaysBilled)
	require.NotNil(t, res.ProratedBase)
	assertDecimal(t, "500", *res.ProratedBase, "base prorrateada")
	assertDecimal(t, "105", res.VATAmount, "IVA")
	assertDecimal(t, "605", res.Total, "total")
}

func TestCalculateProportional_MesCompletoFacturaLaBaseExacta(t *testing.T) {
	line := billing.BillableLine{
		TaxBase:        dec("733.17"),
		VATRatePercent: dec("21"),
		Proportional: &billing.Period{
			StartDate:      date(2024, time.June, 1),
			EndDate:        date(2024, time.June, 30),
			ReferenceMonth: date(2024, time.June, 10),
		},
	}
	res, err := billing.CalculateProportional(line)
	require.NoError(t, err)
	assert.Equal(t, 30, res.DaysBilled)
	assert.True(t, res.ProratedBase.Equal(line.TaxBase), "base prorrateada %s", res.ProratedBase)

	std := billing.CalculateStandard(line)
	assert.True(t, std.Total.Equal(res.Total))
}

func TestCalculateProportional_UnSoloDia(t *testing.T) {
	res, err := billing.CalculateProportional(billing.BillableLine{
		TaxBase: dec("310"),
		Proportional: &billing.Period{
			StartDate:      date(2024, time.January, 20),
			EndDate:        date(2024, time.January, 20),
			ReferenceMonth: date(2024, time.January, 1),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DaysBilled)
	assertDecimal(t, "10", *res.ProratedBase, "310 / 31 días")
}

func TestCalculateProportional_IgnoraLaHora(t *testing.T) {
	res, err := billing.CalculateProportional(billing.BillableLine{
		TaxBase: dec("290"),
		Proportional: &billing.Period{
			StartDate:      time.Date(2024, time.February, 1, 23, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, time.February, 2, 1, 0, 0, 0, time.UTC),
			ReferenceMonth: date(2024, time.February, 1),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DaysBilled)
	assertDecimal(t, "20", *res.ProratedBase, "290 * 2 / 29 (bisiesto)")
}

func TestCalculateProportional_PeriodoInvalido(t *testing.T) {
	_, err := billing.CalculateProportional(billing.BillableLine{
		TaxBase: dec("100"),
		Proportional: &billing.Period{
			StartDate:      date(2024, time.March, 10),
			EndDate:        date(2024, time.March, 9),
			ReferenceMonth: date(2024, time.March, 1),
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = billing.CalculateProportional(billing.BillableLine{TaxBase: dec("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = billing.CalculateProportional(billing.BillableLine{
		TaxBase:      dec("100"),
		Proportional: &billing.Period{StartDate: date(2024, time.March, 1), EndDate: date(2024, time.March, 2)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "sin mes de referencia")
}

func TestCalculateProportional_PeriodoMayorQueElMesDeReferencia(t *testing.T) {
	line := billing.BillableLine{
		TaxBase:        dec("1000"),
		VATRatePercent: dec("21"),
		Proportional: &billing.Period{
			StartDate:      date(2024, time.January, 1),
			EndDate:        date(2024, time.March, 31),
			ReferenceMonth: date(2024, time.February, 1),
		},
	}
	_, err := billing.CalculateProportional(line)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	assert.Contains(t, err.Error(), "91")

	// 30 días contra un febrero bisiesto de 29 también excede.
	line.Proportional.StartDate = date(2024, time.February, 1)
	line.Proportional.EndDate = date(2024, time.March, 1)
	_, err = billing.CalculateProportional(line)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	// Exactamente los días del mes, aunque cruce meses, sí se admite.
	line.Proportional.StartDate = date(2024, time.February, 15)
	line.Proportional.EndDate = date(2024, time.March, 14)
	res, err := billing.CalculateProportional(line)
	require.NoError(t, err)
	assert.Equal(t, 29, res.DaysBilled)
	assertDecimal(t, "1000", *res.ProratedBase, "29/29 de la base")
}

func TestCalculate_DespachaPorModo(t *testing.T) {
	line := billing.BillableLine{TaxBase: dec("100"), VATRatePercent: dec("10")}
	assert.Equal(t, billing.ModeStandard, line.Mode())
	res, err := billing.Calculate(line)
	require.NoError(t, err)
	assertDecimal(t, "110", res.Total, "estándar")

	line.Proportional = &billing.Period{
		StartDate:      date(2023, time.November, 1),
		EndDate:        date(2023, time.November, 3),
		ReferenceMonth: date(2023, time.November, 1),
	}
	assert.Equal(t, billing.ModeProportional, line.Mode())
	res, err = billing.Calculate(line)
	require.NoError(t, err)
	assert.Equal(t, 3, res.DaysBilled)
	assertDecimal(t, "10", res.EffectiveBase(line), "100 * 3 / 30")
	assertDecimal(t, "11", res.Total, "proporcional")
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, billing.DaysInMonth(date(2024, time.February, 15)))
	assert.Equal(t, 28, billing.DaysInMonth(date(2023, time.February, 1)))
	assert.Equal(t, 31, billing.DaysInMonth(date(2023, time.December, 31)))
	assert.Equal(t, 30, billing.DaysInMonth(date(2023, time.September, 30)))
}
