package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fincas-api/internal/domain/vatbook"
)

// VATBookRequest query params de GET /api/reports/vat-book.
type VATBookRequest struct {
	Year    int    `query:"year"`
	Quarter int    `query:"quarter"`
	Month   int    `query:"month"`
	Sort    string `query:"sort"`
	Dir     string `query:"dir"`
}

// VATBookReportDTO libros de IVA repercutido y soportado y el resumen por propietario.
type VATBookReportDTO struct {
	Period     vatbook.Period    `json:"period"`
	Charged    vatbook.Book      `json:"charged"`
	Supported  vatbook.Book      `json:"supported"`
	Owners     []OwnerSummaryDTO `json:"owners"`
	Incomplete int               `json:"incomplete_rows"`
}

// OwnerSummaryDTO IVA neto por propietario con la etiqueta "A pagar" / "A favor".
type OwnerSummaryDTO struct {
	OwnerID      string          `json:"owner_id"`
	OwnerName    string          `json:"owner_name"`
	VATCharged   decimal.Decimal `json:"vat_charged"`
	VATSupported decimal.Decimal `json:"vat_supported"`
	NetVAT       decimal.Decimal `json:"net_vat"`
	Label        string          `json:"label"`
}
