// Package csvexport exporta el informe financiero a CSV para hojas de cálculo.
package csvexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
)

var _ analytics.ReportCSVGenerator = (*ReportCSVWriter)(nil)

// Delimiter ';' porque la coma es el separador decimal en es-CO.
const Delimiter = ';'

// utf8BOM hace que Excel detecte la codificación y muestre bien las tildes.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReportCSVWriter implementa analytics.ReportCSVGenerator con gocsv.
type ReportCSVWriter struct{}

// NewReportCSVWriter construye el exportador.
func NewReportCSVWriter() *ReportCSVWriter { return &ReportCSVWriter{} }

// GenerateReportCSV escribe una fila por mes (periodo;mes;ingresos;egresos;rendimientos).
func (w *ReportCSVWriter) GenerateReportCSV(_ context.Context, report *dto.ReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("csv: informe vacío")
	}
	months := report.Months
	if months == nil {
		months = []dto.ReportMonthDTO{}
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(months, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return nil, fmt.Errorf("csv: escribir informe: %w", err)
	}
	return buf.Bytes(), nil
}
