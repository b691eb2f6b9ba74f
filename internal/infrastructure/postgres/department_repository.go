package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// Asegura que DepartmentRepo implementa repository.DepartmentRepository.
var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para dependencias.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste una nueva dependencia.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	query := `
		INSERT INTO departments (id, name, code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, nullIfEmpty(d.Code), d.Status, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: dependencia %s", domain.ErrDuplicate, d.Name)
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene una dependencia por ID.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByName obtiene una dependencia por nombre, sin distinguir mayúsculas.
func (r *DepartmentRepo) GetByName(ctx context.Context, name string) (*entity.Department, error) {
	return r.getOne(ctx, `WHERE lower(name) = lower($1)`, name)
}

func (r *DepartmentRepo) getOne(ctx context.Context, where string, arg any) (*entity.Department, error) {
	query := `SELECT id, name, COALESCE(code, ''), status, created_at, updated_at FROM departments ` + where
	var d entity.Department
	err := r.q.QueryRow(ctx, query, arg).Scan(&d.ID, &d.Name, &d.Code, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List devuelve todas las dependencias en orden alfabético.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, COALESCE(code, ''), status, created_at, updated_at
		FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
