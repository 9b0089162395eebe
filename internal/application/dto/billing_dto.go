package dto

import "github.com/shopspring/decimal"

// BillableLineRequest línea a calcular. Proportional es opcional (facturación por días).
type BillableLineRequest struct {
	TaxBase         decimal.Decimal     `json:"tax_base"`
	VATRate         *decimal.Decimal    `json:"vat_rate"`
	WithholdingRate *decimal.Decimal    `json:"withholding_rate,omitempty"`
	IsRefund        bool                `json:"is_refund"`
	Proportional    *ProportionalPeriod `json:"proportional,omitempty"`
}

// ProportionalPeriod fechas en formato YYYY-MM-DD; ReferenceMonth admite YYYY-MM o YYYY-MM-DD.
type ProportionalPeriod struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	ReferenceMonth string `json:"reference_month"`
}

// CalculationResponse desglose del cálculo.
type CalculationResponse struct {
	TaxBase           decimal.Decimal  `json:"tax_base"`
	VATAmount         decimal.Decimal  `json:"vat_amount"`
	WithholdingAmount decimal.Decimal  `json:"withholding_amount"`
	Total             decimal.Decimal  `json:"total"`
	ProratedBase      *decimal.Decimal `json:"prorated_base,omitempty"`
	DaysBilled        int              `json:"days_billed,omitempty"`
}

// CheckTotalRequest body para POST /api/billing/check.
type CheckTotalRequest struct {
	Line          BillableLineRequest `json:"line"`
	ReportedTotal decimal.Decimal     `json:"reported_total"`
}
