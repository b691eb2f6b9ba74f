package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
)

// AlertHandler expone las alertas del usuario autenticado.
type AlertHandler struct {
	uc *appanalytics.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *appanalytics.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List alertas vigentes. GET /api/alerts?leida=false
func (h *AlertHandler) List(c *fiber.Ctx) error {
	onlyUnread := c.Query("leida") == "false"
	out, err := h.uc.List(c.Context(), GetUserID(c), onlyUnread)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead POST /api/alerts/:id/read
//
// Los IDs llevan ':' (tipo:origen); se aceptan con o sin escapar.
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de alerta inválido"})
	}
	alert, err := h.uc.MarkRead(c.Context(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(alert)
}

// MarkAllRead POST /api/alerts/read-all
func (h *AlertHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MarkAllReadResponse{Marked: n})
}
