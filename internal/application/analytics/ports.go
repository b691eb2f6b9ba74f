package analytics

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
)

// ReportPDFGenerator genera la representación en PDF del informe financiero.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.ReportDTO) ([]byte, error)
}

// ReportCSVGenerator exporta las series mensuales del informe a CSV.
type ReportCSVGenerator interface {
	GenerateReportCSV(ctx context.Context, report *dto.ReportDTO) ([]byte, error)
}
