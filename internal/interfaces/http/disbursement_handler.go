package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
)

// DisbursementHandler maneja el seguimiento de giros.
type DisbursementHandler struct {
	uc *agreement.DisbursementUseCase
}

// NewDisbursementHandler construye el handler.
func NewDisbursementHandler(uc *agreement.DisbursementUseCase) *DisbursementHandler {
	return &DisbursementHandler{uc: uc}
}

// Track GET /api/agreements/:id/disbursements
func (h *DisbursementHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create programa un giro. POST /api/agreements/:id/disbursements
func (h *DisbursementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDisbursementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	d, err := h.uc.Add(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// Execute registra la ejecución. POST /api/disbursements/:id/execute
func (h *DisbursementHandler) Execute(c *fiber.Ctx) error {
	var in dto.ExecuteDisbursementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	d, err := h.uc.Execute(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}

// MarkOverdue POST /api/disbursements/:id/overdue
func (h *DisbursementHandler) MarkOverdue(c *fiber.Ctx) error {
	d, err := h.uc.MarkOverdue(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}
