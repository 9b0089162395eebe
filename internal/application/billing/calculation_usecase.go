// Package billing orquesta el cálculo de líneas facturables: traduce el DTO a la línea de dominio,
// valida sus invariantes y devuelve el desglose o el veredicto de consistencia.
package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/internal/domain"
	dombilling "github.com/jhoicas/fincas-api/internal/domain/billing"
)

const monthLayout = "2006-01"

// CalculationUseCase caso de uso sin estado; seguro para uso concurrente.
type CalculationUseCase struct{}

// NewCalculationUseCase construye el caso de uso.
func NewCalculationUseCase() *CalculationUseCase {
	return &CalculationUseCase{}
}

// Calculate devuelve IVA, retención y total de la línea. Los fallos de validación se devuelven
// como *domain.ValidationError.
func (uc *CalculationUseCase) Calculate(in dto.BillableLineRequest) (*dto.CalculationResponse, error) {
	line, vr := toLine(in)
	if !vr.Valid {
		return nil, &domain.ValidationError{Result: vr}
	}
	if vr := dombilling.ValidateLine(line); !vr.Valid {
		return nil, &domain.ValidationError{Result: vr}
	}
	res, err := dombilling.Calculate(line)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return nil, &domain.ValidationError{Result: domain.Invalid("", domain.CodeRange, err.Error())}
		}
		return nil, err
	}
	return &dto.CalculationResponse{
		TaxBase:           res.EffectiveBase(line),
		VATAmount:         res.VATAmount,
		WithholdingAmount: res.WithholdingAmount,
		Total:             res.Total,
		ProratedBase:      res.ProratedBase,
		DaysBilled:        res.DaysBilled,
	}, nil
}

// CheckTotal compara el total informado con el recalculado. Nunca corrige el dato.
func (uc *CalculationUseCase) CheckTotal(in dto.CheckTotalRequest) domain.ValidationResult {
	line, vr := toLine(in.Line)
	if !vr.Valid {
		return vr
	}
	return dombilling.ValidateNumericConsistency(line, in.ReportedTotal)
}

func toLine(in dto.BillableLineRequest) (dombilling.BillableLine, domain.ValidationResult) {
	if r := dombilling.ValidatePercentageBounds(in.VATRate, "el tipo de IVA"); !r.Valid {
		return dombilling.BillableLine{}, r
	}
	line := dombilling.BillableLine{
		TaxBase:            in.TaxBase,
		VATRatePercent:     *in.VATRate,
		WithholdingPercent: decimal.Zero,
		IsRefund:           in.IsRefund,
	}
	if in.WithholdingRate != nil {
		line.WithholdingPercent = *in.WithholdingRate
	}
	if in.Proportional == nil {
		return line, domain.Valid("")
	}

	p := in.Proportional
	start, err := parseDate(p.StartDate, "la fecha de inicio")
	if err != nil {
		return line, domain.Invalid("", domain.CodeFormat, err.Error())
	}
	end, err := parseDate(p.EndDate, "la fecha de fin")
	if err != nil {
		return line, domain.Invalid("", domain.CodeFormat, err.Error())
	}
	ref, err := parseMonth(p.ReferenceMonth)
	if err != nil {
		return line, domain.Invalid("", domain.CodeFormat, err.Error())
	}
	line.Proportional = &dombilling.Period{StartDate: start, EndDate: end, ReferenceMonth: ref}
	return line, domain.Valid("")
}

func parseDate(raw, label string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s es obligatoria", label)
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s debe tener formato AAAA-MM-DD", label)
	}
	return t, nil
}

func parseMonth(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(monthLayout, raw); err == nil {
		return t, nil
	}
	if raw == "" {
		return time.Time{}, errors.New("el mes de referencia es obligatorio")
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, errors.New("el mes de referencia debe tener formato AAAA-MM")
	}
	return t, nil
}
