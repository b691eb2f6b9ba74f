package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
)

// YieldHandler maneja la calculadora y el historial de rendimientos.
type YieldHandler struct {
	uc *agreement.YieldUseCase
}

// NewYieldHandler construye el handler.
func NewYieldHandler(uc *agreement.YieldUseCase) *YieldHandler {
	return &YieldHandler{uc: uc}
}

// Simulate calcula sin persistir. POST /api/yields/simulate
func (h *YieldHandler) Simulate(c *fiber.Ctx) error {
	var in dto.SimulateYieldRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Simulate(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/agreements/:id/yields
func (h *YieldHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Record calcula y guarda el rendimiento del período. POST /api/agreements/:id/yields
func (h *YieldHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordYieldRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	y, err := h.uc.Record(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(y)
}
