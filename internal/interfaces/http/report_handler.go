package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
)

// ReportHandler maneja el informe financiero y sus exportaciones.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get GET /api/reports?from=AAAA-MM-DD&to=AAAA-MM-DD
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	from, to, err := parseReportRange(c)
	if err != nil {
		return writeError(c, err)
	}
	report, err := h.uc.Generate(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// PDF GET /api/reports/pdf
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	return h.download(c, h.uc.DownloadPDF, "application/pdf")
}

// CSV GET /api/reports/csv
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	return h.download(c, h.uc.DownloadCSV, "text/csv; charset=utf-8")
}

func (h *ReportHandler) download(
	c *fiber.Ctx,
	fn func(ctx context.Context, from, to time.Time) ([]byte, string, error),
	contentType string,
) error {
	from, to, err := parseReportRange(c)
	if err != nil {
		return writeError(c, err)
	}
	body, filename, err := fn(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Attachment(filename)
	return c.Send(body)
}

func parseReportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return appanalytics.ParseRange(req)
}
