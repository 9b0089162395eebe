package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fincas-api/internal/domain"
)

// ValidatePercentageBounds comprueba que el porcentaje exista y esté en [0, 100].
func ValidatePercentageBounds(value *decimal.Decimal, label string) domain.ValidationResult {
	if value == nil {
		return domain.Invalid("", domain.CodeRequired, fmt.Sprintf("%s es obligatorio", label))
	}
	if value.IsNegative() {
		return domain.Invalid("", domain.CodeRange, fmt.Sprintf("%s no puede ser negativo (mínimo 0)", label))
	}
	if value.GreaterThan(hundred) {
		return domain.Invalid("", domain.CodeRange, fmt.Sprintf("%s no puede superar 100 (recibido %s)", label, value.String()))
	}
	return domain.Valid("")
}

// ValidatePercentageInput como ValidatePercentageBounds pero a partir del texto del formulario.
func ValidatePercentageInput(raw, label string) domain.ValidationResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ValidatePercentageBounds(nil, label)
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return domain.Invalid("", domain.CodeFormat, fmt.Sprintf("%s debe ser numérico", label))
	}
	return ValidatePercentageBounds(&v, label)
}

// ValidateLine comprueba los invariantes de la línea antes de calcular.
func ValidateLine(line BillableLine) domain.ValidationResult {
	if line.TaxBase.IsNegative() && !line.IsRefund {
		return domain.Invalid("", domain.CodeRange, "la base imponible solo puede ser negativa en un abono")
	}
	if r := ValidatePercentageBounds(&line.VATRatePercent, "el tipo de IVA"); !r.Valid {
		return r
	}
	if r := ValidatePercentageBounds(&line.WithholdingPercent, "el porcentaje de retención"); !r.Valid {
		return r
	}
	return domain.Valid("")
}

// ValidateNumericConsistency recalcula el total de la línea y lo compara con el informado.
// Una diferencia mayor que Tolerance se informa como discrepancia; nunca se corrige el dato.
func ValidateNumericConsistency(line BillableLine, reportedTotal decimal.Decimal) domain.ValidationResult {
	if r := ValidateLine(line); !r.Valid {
		return r
	}
	res, err := Calculate(line)
	if err != nil {
		code := domain.CodeFormat
		if errors.Is(err, domain.ErrInvalidPeriod) {
			code = domain.CodeRange
		}
		return domain.Invalid("", code, err.Error())
	}
	diff := res.Total.Sub(reportedTotal).Abs()
	if diff.GreaterThan(Tolerance) {
		return domain.Invalid("", domain.CodeConsistency,
			fmt.Sprintf("el total informado (%s) no coincide con el calculado (%s): diferencia %s",
				reportedTotal.StringFixed(2), res.Total.StringFixed(2), diff.String()))
	}
	return domain.Valid("")
}
