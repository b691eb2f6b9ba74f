package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain/convenio"
)

// AgreementHandler maneja convenios y su presupuesto.
type AgreementHandler struct {
	uc *agreement.AgreementUseCase
}

// NewAgreementHandler construye el handler.
func NewAgreementHandler(uc *agreement.AgreementUseCase) *AgreementHandler {
	return &AgreementHandler{uc: uc}
}

// List lista convenios. GET /api/agreements?estado=&dependencia_id=&q=&limit=&offset=
func (h *AgreementHandler) List(c *fiber.Ctx) error {
	var req dto.AgreementListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un convenio con su presupuesto. GET /api/agreements/:id
func (h *AgreementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create registra un convenio desde el borrador del formulario.
// POST /api/agreements
//
// Respuesta 201: SubmitAgreementResponse; las advertencias del presupuesto no bloquean el registro.
func (h *AgreementHandler) Create(c *fiber.Ctx) error {
	var draft convenio.Draft
	if err := c.BodyParser(&draft); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Submit(c.Context(), GetUserID(c), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Budget devuelve líneas y verificación de totales. GET /api/agreements/:id/budget
func (h *AgreementHandler) Budget(c *fiber.Ctx) error {
	out, err := h.uc.Budget(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
