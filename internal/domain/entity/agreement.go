package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un convenio.
const (
	AgreementStatusActive    = "active"
	AgreementStatusFinished  = "finished"
	AgreementStatusInProcess = "in_process"
)

// Agreement representa un convenio interinstitucional (raíz del agregado).
// TotalValue, CARContribution y EntityContribution se derivan de las líneas de presupuesto
// en cada guardado; nunca se editan por separado.
type Agreement struct {
	ID                 string
	Number             string // numero_convenio
	Supervisor         string
	DepartmentID       string
	DepartmentName     string
	Object             string // objeto del convenio
	Status             string // active, finished, in_process
	StartDate          time.Time
	EndDate            time.Time
	CounterpartEntity  string
	TotalValue         decimal.Decimal // valor_total_aprobado
	CARContribution    decimal.Decimal // aporte CAR (institucional)
	EntityContribution decimal.Decimal // aporte entidad (contrapartida)
	BudgetLines        []BudgetLine
	Disbursements      []Disbursement
	Yields             []YieldRecord
	Documents          []Document
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validity devuelve la vigencia como "AAAA-AAAA" (o un solo año si coinciden).
func (a *Agreement) Validity() string {
	return ValidityLabel(a.StartDate, a.EndDate)
}

// ValidityLabel deriva la vigencia a partir de las fechas de inicio y fin.
func ValidityLabel(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	if start.Year() == end.Year() {
		return start.Format("2006")
	}
	return start.Format("2006") + "-" + end.Format("2006")
}
