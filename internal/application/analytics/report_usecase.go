package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	"github.com/jhoicas/Convenios-api/pkg/logger"
)

// ReportUseCase arma el informe financiero por rango de fechas y sus exportaciones.
type ReportUseCase struct {
	agreements    repository.AgreementRepository
	disbursements repository.DisbursementRepository
	yields        repository.YieldRepository
	pdf           ReportPDFGenerator
	csv           ReportCSVGenerator
	log           *logger.Logger
}

// NewReportUseCase construye el caso de uso. pdf y csv pueden ser nil si no se exporta.
func NewReportUseCase(
	agreements repository.AgreementRepository,
	disbursements repository.DisbursementRepository,
	yields repository.YieldRepository,
	pdf ReportPDFGenerator,
	csv ReportCSVGenerator,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		agreements:    agreements,
		disbursements: disbursements,
		yields:        yields,
		pdf:           pdf,
		csv:           csv,
		log:           log.Component("reports"),
	}
}

// ParseRange interpreta from/to (AAAA-MM-DD). Vacío = sin límite; from posterior a to es inválido.
func ParseRange(req dto.ReportRequest) (from, to time.Time, err error) {
	if s := strings.TrimSpace(req.From); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			return from, to, domain.NewValidationError("from", "fecha %q inválida, use AAAA-MM-DD", s)
		}
	}
	if s := strings.TrimSpace(req.To); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			return from, to, domain.NewValidationError("to", "fecha %q inválida, use AAAA-MM-DD", s)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, domain.NewValidationError("to", "la fecha final es anterior a la inicial")
	}
	return from, to, nil
}

// Generate lee convenios, giros ejecutados y rendimientos del rango en paralelo y agrega.
func (uc *ReportUseCase) Generate(ctx context.Context, from, to time.Time) (*dto.ReportDTO, error) {
	var (
		records  []repository.AgreementRecord
		executed []entity.Disbursement
		yields   []entity.YieldRecord
	)
	fromPeriod, toPeriod := "", ""
	if !from.IsZero() {
		fromPeriod = monthKey(from)
	}
	if !to.IsZero() {
		toPeriod = monthKey(to)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if records, err = uc.agreements.ListRecords(gctx, from, to); err != nil {
			return fmt.Errorf("informe: convenios: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if executed, err = uc.disbursements.ListExecuted(gctx, from, to); err != nil {
			return fmt.Errorf("informe: giros: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if yields, err = uc.yields.ListByPeriod(gctx, fromPeriod, toPeriod); err != nil {
			return fmt.Errorf("informe: rendimientos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return uc.compute(records, executed, yields, from, to), nil
}

func (uc *ReportUseCase) compute(
	records []repository.AgreementRecord,
	executed []entity.Disbursement,
	yields []entity.YieldRecord,
	from, to time.Time,
) (out *dto.ReportDTO) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().Interface("panic", r).Msg("agregación del informe falló")
			empty := ComputeReport(ReportInput{From: from, To: to})
			empty.HasErrors = true
			empty.Warnings = append(empty.Warnings, domain.DataGap{Field: "convenios", Reason: fmt.Sprint("datos mal formados: ", r)})
			out = &empty
		}
	}()

	views, gaps := AdaptAll(records)
	report := ComputeReport(ReportInput{
		Agreements:    views,
		Disbursements: executed,
		Yields:        yields,
		From:          from,
		To:            to,
	})
	report.Warnings = append(gaps, report.Warnings...)
	return &report
}

// DownloadPDF genera el informe y su PDF. Retorna los bytes y el nombre sugerido del archivo.
func (uc *ReportUseCase) DownloadPDF(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("informe: exportación PDF no configurada")
	}
	report, err := uc.Generate(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generación PDF fallida: %w", err)
	}
	return b, reportFilename(from, to, "pdf"), nil
}

// DownloadCSV genera el informe y exporta sus series mensuales a CSV.
func (uc *ReportUseCase) DownloadCSV(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	if uc.csv == nil {
		return nil, "", fmt.Errorf("informe: exportación CSV no configurada")
	}
	report, err := uc.Generate(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.csv.GenerateReportCSV(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generación CSV fallida: %w", err)
	}
	return b, reportFilename(from, to, "csv"), nil
}

func reportFilename(from, to time.Time, ext string) string {
	name := "informe_convenios"
	if !from.IsZero() {
		name += "_" + from.Format("20060102")
	}
	if !to.IsZero() {
		name += "_" + to.Format("20060102")
	}
	return name + "." + ext
}
