package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/application/usecase"
)

// DepartmentHandler expone el catálogo de dependencias.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler inyectando el caso de uso.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar dependencias
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DepartmentResponse{ID: d.ID, Name: d.Name, Code: d.Code, Status: d.Status})
	}
	return c.JSON(out)
}
