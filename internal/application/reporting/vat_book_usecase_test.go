package reporting_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/internal/application/reporting"
	"github.com/jhoicas/fincas-api/internal/domain"
	"github.com/jhoicas/fincas-api/internal/domain/vatbook"
	"github.com/jhoicas/fincas-api/pkg/logger"
)

const companyID = "7f1c2a3e-5b6d-4e8f-9a0b-1c2d3e4f5a6b"

type fakeRepo struct {
	charged      []vatbook.Entry
	supported    []vatbook.Entry
	chargedErr   error
	supportedErr error
	gotCompany   string
	gotYear      int
}

func (f *fakeRepo) ListCharged(_ context.Context, company string, year int) ([]vatbook.Entry, error) {
	f.gotCompany, f.gotYear = company, year
	return f.charged, f.chargedErr
}

func (f *fakeRepo) ListSupported(_ context.Context, _ string, _ int) ([]vatbook.Entry, error) {
	return f.supported, f.supportedErr
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func row(id string, month time.Month, name, base, vat, owner string) vatbook.Entry {
	return vatbook.Entry{
		ID:               id,
		Date:             time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC),
		CounterpartyName: name,
		TaxBase:          nd(base),
		VATRatePercent:   nd("21"),
		VATAmount:        nd(vat),
		TotalAmount:      nd(base),
		OwnerID:          owner,
		OwnerName:        "Propietario " + owner,
	}
}

func TestGetReport_TrimestreOrdenadoYResumen(t *testing.T) {
	noDeducible := false
	gasto := row("G2", time.February, "Limpiezas", "50", "10.5", "p1")
	gasto.IsDeductible = &noDeducible

	repo := &fakeRepo{
		charged: []vatbook.Entry{
			row("F1", time.January, "Óscar", "100", "21", "p1"),
			row("F2", time.March, "Ana", "200", "42", "p1"),
			row("F3", time.May, "Bea", "300", "63", "p1"),
		},
		supported: []vatbook.Entry{
			row("G1", time.February, "Fontanería", "500", "105", "p1"),
			gasto,
		},
	}
	uc := reporting.NewVATBookUseCase(repo, nil)

	rep, err := uc.GetReport(context.Background(), companyID, dto.VATBookRequest{
		Year: 2024, Quarter: 1, Sort: "counterparty_name",
	})
	require.NoError(t, err)
	assert.Equal(t, companyID, repo.gotCompany)
	assert.Equal(t, 2024, repo.gotYear)

	require.Len(t, rep.Charged.Entries, 2)
	assert.Equal(t, "F2", rep.Charged.Entries[0].ID)
	assert.Equal(t, "F1", rep.Charged.Entries[1].ID)
	assert.Equal(t, "63", rep.Charged.Totals.TotalVAT.String())

	require.Len(t, rep.Supported.Entries, 1)
	assert.Equal(t, "G1", rep.Supported.Entries[0].ID)

	require.Len(t, rep.Owners, 1)
	assert.Equal(t, "-42", rep.Owners[0].NetVAT.String())
	assert.Equal(t, vatbook.LabelCredit, rep.Owners[0].Label)
	assert.Zero(t, rep.Incomplete)
}

func TestGetReport_FilasIncompletasSeAvisan(t *testing.T) {
	incompleta := row("F9", time.June, "Sin base", "0", "0", "p2")
	incompleta.TaxBase = decimal.NullDecimal{}

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "warn", Output: &buf})
	uc := reporting.NewVATBookUseCase(&fakeRepo{charged: []vatbook.Entry{incompleta}}, log)

	rep, err := uc.GetReport(context.Background(), companyID, dto.VATBookRequest{Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Incomplete)
	assert.Contains(t, buf.String(), `"incomplete_rows":1`)
}

func TestGetReport_ErrorDelRepositorio(t *testing.T) {
	boom := errors.New("conexión perdida")
	uc := reporting.NewVATBookUseCase(&fakeRepo{supportedErr: boom}, logger.Nop())

	_, err := uc.GetReport(context.Background(), companyID, dto.VATBookRequest{Year: 2024})
	assert.ErrorIs(t, err, boom)
}

func TestGetReport_EntradaInvalida(t *testing.T) {
	uc := reporting.NewVATBookUseCase(&fakeRepo{}, nil)
	cases := []struct {
		name    string
		company string
		req     dto.VATBookRequest
	}{
		{"empresa no uuid", "acme", dto.VATBookRequest{Year: 2024}},
		{"sin ejercicio", companyID, dto.VATBookRequest{}},
		{"trimestre 5", companyID, dto.VATBookRequest{Year: 2024, Quarter: 5}},
		{"mes 13", companyID, dto.VATBookRequest{Year: 2024, Month: 13}},
		{"campo de orden", companyID, dto.VATBookRequest{Year: 2024, Sort: "owner"}},
		{"dirección", companyID, dto.VATBookRequest{Year: 2024, Dir: "up"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.GetReport(context.Background(), tc.company, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
