package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

// NoDepartmentLabel etiqueta para convenios sin dependencia.
const NoDepartmentLabel = "Sin dependencia"

// AgreementView convenio normalizado: todos los campos tienen valor, sin punteros.
type AgreementView struct {
	ID             string
	Number         string
	Validity       string
	Status         string
	StartDate      time.Time // cero si la fuente no la trae
	EndDate        time.Time // cero = sin fecha final
	HasEndDate     bool
	ApprovedValue  decimal.Decimal
	CreatedAt      time.Time
	HasCreatedAt   bool
	DepartmentName string
}

// AdaptAgreement convierte el registro crudo en AgreementView. Valores por defecto:
//
//	numero_convenio       → ""
//	estado                → "in_process"
//	fecha_inicio          → sin fecha (cero)
//	fecha_final           → sin fecha; el convenio se considera vigente
//	vigencia              → derivada de fecha_inicio/fecha_final, o "" si falta alguna
//	valor_total_aprobado  → 0 (advertencia); negativo → 0 (advertencia)
//	fecha_creacion        → sin fecha; no entra en series mensuales (advertencia)
//	dependencia.nombre    → "Sin dependencia"
func AdaptAgreement(rec repository.AgreementRecord) (AgreementView, []domain.DataGap) {
	var gaps []domain.DataGap
	gap := func(field, reason string) {
		gaps = append(gaps, domain.DataGap{Field: fmt.Sprintf("convenio[%s].%s", rec.ID, field), Reason: reason})
	}

	v := AgreementView{
		ID:             rec.ID,
		Number:         strOr(rec.Number, ""),
		Status:         strOr(rec.Status, entity.AgreementStatusInProcess),
		ApprovedValue:  decimal.Zero,
		DepartmentName: NoDepartmentLabel,
	}
	if rec.StartDate != nil {
		v.StartDate = *rec.StartDate
	}
	if rec.EndDate != nil && !rec.EndDate.IsZero() {
		v.EndDate = *rec.EndDate
		v.HasEndDate = true
	}
	if rec.CreatedAt != nil && !rec.CreatedAt.IsZero() {
		v.CreatedAt = *rec.CreatedAt
		v.HasCreatedAt = true
	} else {
		gap("fecha_creacion", "sin fecha de creación; se excluye de las series mensuales")
	}

	switch {
	case rec.ApprovedValue == nil:
		gap("valor_total_aprobado", "sin valor aprobado; se toma 0")
	case rec.ApprovedValue.IsNegative():
		gap("valor_total_aprobado", fmt.Sprintf("valor negativo %s; se toma 0", rec.ApprovedValue))
	default:
		v.ApprovedValue = *rec.ApprovedValue
	}

	if rec.Department != nil {
		if name := strOr(rec.Department.Name, ""); name != "" {
			v.DepartmentName = name
		}
	}

	v.Validity = strOr(rec.Validity, "")
	if v.Validity == "" {
		v.Validity = entity.ValidityLabel(v.StartDate, v.EndDate)
	}
	if v.HasEndDate && !v.StartDate.IsZero() && v.EndDate.Before(v.StartDate) {
		gap("fecha_final", "la fecha final es anterior a la de inicio")
	}
	return v, gaps
}

// AdaptAll normaliza la colección completa conservando el orden.
func AdaptAll(records []repository.AgreementRecord) ([]AgreementView, []domain.DataGap) {
	views := make([]AgreementView, 0, len(records))
	var gaps []domain.DataGap
	for _, rec := range records {
		v, g := AdaptAgreement(rec)
		views = append(views, v)
		gaps = append(gaps, g...)
	}
	return views, gaps
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	if s := strings.TrimSpace(*p); s != "" {
		return s
	}
	return def
}
