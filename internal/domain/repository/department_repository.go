package repository

import (
	"context"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// DepartmentRepository define el puerto de persistencia para dependencias (DIP).
// La implementación vive en infrastructure.
type DepartmentRepository interface {
	Create(ctx context.Context, d *entity.Department) error
	// GetByID y GetByName devuelven nil si la dependencia no existe.
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	GetByName(ctx context.Context, name string) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
}
