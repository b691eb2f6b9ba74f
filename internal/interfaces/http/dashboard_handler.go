package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Convenios-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary recalcula las métricas del tablero.
// GET /api/dashboard/summary
//
// Respuesta: DashboardMetricsDTO (totales, series mensuales, estados, dependencias, advertencias).
// Si un refresco más nuevo ya se publicó, la respuesta sigue siendo la calculada para esta
// petición pero /current no retrocede.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Refresh(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetCurrent devuelve la última vista publicada (refresca si aún no hay).
// GET /api/dashboard/current
func (h *DashboardHandler) GetCurrent(c *fiber.Ctx) error {
	current, err := h.uc.Current(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(current)
}
