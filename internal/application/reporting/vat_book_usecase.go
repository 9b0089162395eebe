// Package reporting genera los libros registro de IVA (repercutido y soportado) de una administración.
package reporting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/internal/domain"
	"github.com/jhoicas/fincas-api/internal/domain/repository"
	"github.com/jhoicas/fincas-api/internal/domain/vatbook"
	"github.com/jhoicas/fincas-api/pkg/logger"
)

const (
	minYear = 2000
	maxYear = 2100
)

// VATBookUseCase carga las filas del ejercicio y construye los libros del período pedido.
type VATBookUseCase struct {
	repo repository.VATBookRepository
	log  *logger.Logger
}

// NewVATBookUseCase construye el caso de uso. log puede ser nil.
func NewVATBookUseCase(repo repository.VATBookRepository, log *logger.Logger) *VATBookUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &VATBookUseCase{repo: repo, log: log.Component("vat_book")}
}

// GetReport devuelve ambos libros ordenados, sus desgloses por tipo y el neto por propietario.
func (uc *VATBookUseCase) GetReport(ctx context.Context, companyID string, req dto.VATBookRequest) (*dto.VATBookReportDTO, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, fmt.Errorf("%w: empresa %q", domain.ErrInvalidInput, companyID)
	}
	period, err := parsePeriod(req)
	if err != nil {
		return nil, err
	}
	field := vatbook.SortByDate
	if req.Sort != "" {
		if field, err = vatbook.ParseSortField(req.Sort); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	dir, err := vatbook.ParseDirection(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// Repercutido y soportado son consultas independientes.
	var charged, supported []vatbook.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.repo.ListCharged(gctx, companyID, period.Year)
		if err != nil {
			return fmt.Errorf("libro repercutido: %w", err)
		}
		charged = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.repo.ListSupported(gctx, companyID, period.Year)
		if err != nil {
			return fmt.Errorf("libro soportado: %w", err)
		}
		supported = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	books := vatbook.BuildBooks(charged, supported, period)
	books.Charged.Entries = vatbook.SortEntries(books.Charged.Entries, field, dir)
	books.Supported.Entries = vatbook.SortEntries(books.Supported.Entries, field, dir)

	incomplete := vatbook.Incomplete(books.Charged.Entries) + vatbook.Incomplete(books.Supported.Entries)
	if incomplete > 0 {
		uc.log.Warn().
			Str("company_id", companyID).
			Int("year", period.Year).
			Int("quarter", period.Quarter).
			Int("month", period.Month).
			Int("incomplete_rows", incomplete).
			Msg("filas sin base, tipo o cuota; se computan como 0")
	}

	owners := make([]dto.OwnerSummaryDTO, 0, len(books.Owners))
	for _, o := range books.Owners {
		owners = append(owners, dto.OwnerSummaryDTO{
			OwnerID:      o.OwnerID,
			OwnerName:    o.OwnerName,
			VATCharged:   o.VATCharged,
			VATSupported: o.VATSupported,
			NetVAT:       o.NetVAT,
			Label:        o.Label(),
		})
	}

	return &dto.VATBookReportDTO{
		Period:     books.Period,
		Charged:    books.Charged,
		Supported:  books.Supported,
		Owners:     owners,
		Incomplete: incomplete,
	}, nil
}

func parsePeriod(req dto.VATBookRequest) (vatbook.Period, error) {
	if req.Year < minYear || req.Year > maxYear {
		return vatbook.Period{}, fmt.Errorf("%w: ejercicio %d fuera de rango", domain.ErrInvalidInput, req.Year)
	}
	if req.Quarter < 0 || req.Quarter > 4 {
		return vatbook.Period{}, fmt.Errorf("%w: trimestre %d (1-4)", domain.ErrInvalidInput, req.Quarter)
	}
	if req.Month < 0 || req.Month > 12 {
		return vatbook.Period{}, fmt.Errorf("%w: mes %d (1-12)", domain.ErrInvalidInput, req.Month)
	}
	return vatbook.Period{Year: req.Year, Quarter: req.Quarter, Month: req.Month}, nil
}
