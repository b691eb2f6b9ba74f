package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// DepartmentUseCase consulta y asegura dependencias (datos maestros de solo lectura para la API).
type DepartmentUseCase struct {
	repo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso con el puerto de persistencia.
func NewDepartmentUseCase(repo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

// List devuelve todas las dependencias.
func (uc *DepartmentUseCase) List(ctx context.Context) ([]*entity.Department, error) {
	return uc.repo.List(ctx)
}

// Ensure devuelve la dependencia con ese nombre, creándola si no existe (importación masiva).
func (uc *DepartmentUseCase) Ensure(ctx context.Context, name string) (*entity.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("dependencia", "el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	d := &entity.Department{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
