package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Convenios-api/internal/application/usecase"
)

// DocumentHandler expone los documentos soporte de un convenio.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// List godoc
// @Summary      Documentos de un convenio
// @Tags         agreements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del convenio"
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agreements/{id}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByAgreement(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
