package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fincas-api/internal/domain"
	"github.com/jhoicas/fincas-api/internal/domain/billing"
)

func TestValidateNumericConsistency_Tolerancia(t *testing.T) {
	line := billing.BillableLine{TaxBase: dec("1000"), VATRatePercent: dec("21"), WithholdingPercent: dec("15")}

	assert.True(t, billing.ValidateNumericConsistency(line, dec("1060.00")).Valid, "exacto")
	assert.True(t, billing.ValidateNumericConsistency(line, dec("1060.009")).Valid, "diferencia 0.009")
	assert.True(t, billing.ValidateNumericConsistency(line, dec("1059.991")).Valid, "diferencia -0.009")
	assert.True(t, billing.ValidateNumericConsistency(line, dec("1060.01")).Valid, "diferencia igual a la tolerancia")

	r := billing.ValidateNumericConsistency(line, dec("1060.02"))
	assert.False(t, r.Valid, "diferencia 0.02")
	assert.Equal(t, domain.CodeConsistency, r.Code)
	assert.Contains(t, r.Message, "1060.02")
	assert.Contains(t, r.Message, "1060.00")
}

func TestValidateNumericConsistency_Proporcional(t *testing.T) {
	line := billing.BillableLine{
		TaxBase:        dec("1000"),
		VATRatePercent: dec("21"),
		Proportional: &billing.Period{
			StartDate:      time.Date(2024, time.April, 16, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
			ReferenceMonth: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	assert.True(t, billing.ValidateNumericConsistency(line, dec("605")).Valid)
	assert.False(t, billing.ValidateNumericConsistency(line, dec("1210")).Valid, "total sin prorratear")

	line.Proportional.EndDate = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	r := billing.ValidateNumericConsistency(line, dec("605"))
	assert.False(t, r.Valid)
	assert.Equal(t, domain.CodeRange, r.Code)
}

func TestValidateNumericConsistency_LineaInvalida(t *testing.T) {
	r := billing.ValidateNumericConsistency(billing.BillableLine{TaxBase: dec("-5")}, dec("-5"))
	assert.False(t, r.Valid, "base negativa sin abono")
	assert.Equal(t, domain.CodeRange, r.Code)
}

func TestValidatePercentageBounds(t *testing.T) {
	r := billing.ValidatePercentageBounds(nil, "IVA")
	assert.Equal(t, domain.CodeRequired, r.Code)
	assert.Contains(t, r.Message, "obligatorio")

	neg := dec("-1")
	r = billing.ValidatePercentageBounds(&neg, "IVA")
	assert.Equal(t, domain.CodeRange, r.Code)
	assert.Contains(t, r.Message, "negativo")

	over := dec("100.01")
	r = billing.ValidatePercentageBounds(&over, "IVA")
	assert.Equal(t, domain.CodeRange, r.Code)
	assert.Contains(t, r.Message, "100")

	for _, s := range []string{"0", "21", "100"} {
		v := dec(s)
		assert.True(t, billing.ValidatePercentageBounds(&v, "IVA").Valid, s)
	}
}

func TestValidatePercentageInput(t *testing.T) {
	assert.True(t, billing.ValidatePercentageInput(" 21 ", "IVA").Valid)
	assert.True(t, billing.ValidatePercentageInput("7,5", "IVA").Valid, "coma decimal")
	assert.Equal(t, domain.CodeFormat, billing.ValidatePercentageInput("abc", "IVA").Code)
	assert.Equal(t, domain.CodeRequired, billing.ValidatePercentageInput("", "IVA").Code)
	assert.Equal(t, domain.CodeRange, billing.ValidatePercentageInput("150", "IVA").Code)
}

func TestValidateLine(t *testing.T) {
	assert.True(t, billing.ValidateLine(billing.BillableLine{TaxBase: dec("-10"), IsRefund: true}).Valid)
	assert.False(t, billing.ValidateLine(billing.BillableLine{TaxBase: dec("10"), VATRatePercent: decimal.NewFromInt(101)}).Valid)
	assert.False(t, billing.ValidateLine(billing.BillableLine{TaxBase: dec("10"), WithholdingPercent: decimal.NewFromInt(-1)}).Valid)
}
