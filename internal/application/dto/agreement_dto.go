package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
)

// AgreementListRequest query de GET /api/agreements.
type AgreementListRequest struct {
	PageRequest
	Status       string `query:"estado"`
	DepartmentID string `query:"dependencia_id"`
	Search       string `query:"q"`
}

// AgreementResponse salida de un convenio.
type AgreementResponse struct {
	ID                 string              `json:"id"`
	Number             string              `json:"numero_convenio"`
	Validity           string              `json:"vigencia"`
	Supervisor         string              `json:"supervisor"`
	DepartmentID       string              `json:"dependencia_id"`
	DepartmentName     string              `json:"dependencia"`
	Object             string              `json:"objeto"`
	Status             string              `json:"estado"`
	StartDate          string              `json:"fecha_inicio"`
	EndDate            string              `json:"fecha_final"`
	CounterpartEntity  string              `json:"entidad"`
	TotalValue         decimal.Decimal     `json:"valor_total_aprobado"`
	CARContribution    decimal.Decimal     `json:"aporte_car"`
	EntityContribution decimal.Decimal     `json:"aporte_entidad"`
	TotalValueLabel    string              `json:"valor_total_label"`
	BudgetLines        []entity.BudgetLine `json:"presupuesto,omitempty"`
	CreatedAt          time.Time           `json:"fecha_creacion"`
}

// BudgetResponse respuesta de GET /api/agreements/:id/budget.
type BudgetResponse struct {
	AgreementID string                    `json:"convenio_id"`
	Lines       []entity.BudgetLine       `json:"lineas"`
	Consistency finance.ConsistencyReport `json:"consistencia"`
}

// AgreementListResponse listado paginado.
type AgreementListResponse struct {
	Items []AgreementResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// SubmitAgreementResponse resultado del envío de un borrador.
type SubmitAgreementResponse struct {
	Agreement AgreementResponse `json:"convenio"`
	Warnings  []domain.DataGap  `json:"advertencias,omitempty"`
}
