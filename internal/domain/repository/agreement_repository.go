package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// DepartmentRef referencia anidada a la dependencia tal como la entrega el backend.
type DepartmentRef struct {
	Name *string `json:"nombre"`
}

// AgreementRecord registro crudo de convenio leído de la fuente. Todos los campos salvo ID
// pueden faltar; la capa de aplicación lo normaliza con un valor por defecto por campo.
type AgreementRecord struct {
	ID            string           `json:"id"`
	Number        *string          `json:"numero_convenio"`
	Validity      *string          `json:"vigencia"`
	Status        *string          `json:"estado"`
	StartDate     *time.Time       `json:"fecha_inicio"`
	EndDate       *time.Time       `json:"fecha_final"`
	ApprovedValue *decimal.Decimal `json:"valor_total_aprobado"`
	CreatedAt     *time.Time       `json:"fecha_creacion"`
	Department    *DepartmentRef   `json:"dependencia"`
}

// AgreementFilter criterios de listado. Los valores vacíos no filtran.
type AgreementFilter struct {
	Status       string
	DepartmentID string
	Search       string // número, objeto o entidad (ILIKE)
	Limit        int
	Offset       int
}

// AgreementRepository define el puerto de persistencia para convenios y sus líneas de presupuesto.
type AgreementRepository interface {
	// Create inserta la cabecera y las líneas de presupuesto. Número repetido → domain.ErrDuplicate.
	Create(ctx context.Context, a *entity.Agreement) error
	// GetByID devuelve el convenio con su presupuesto, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Agreement, error)
	GetByNumber(ctx context.Context, number string) (*entity.Agreement, error)
	List(ctx context.Context, f AgreementFilter) ([]*entity.Agreement, error)

	// ListRecords devuelve los registros crudos para tablero e informes. Un extremo en cero no
	// limita el rango de fecha de creación.
	ListRecords(ctx context.Context, from, to time.Time) ([]AgreementRecord, error)
}
