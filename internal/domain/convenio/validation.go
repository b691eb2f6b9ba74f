// Package convenio contiene las reglas de dominio que debe cumplir un convenio antes de
// persistirse: campos obligatorios, fechas interpretables y presupuesto completo.
package convenio

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
)

// DateLayout formato de fecha aceptado en borradores (AAAA-MM-DD).
const DateLayout = "2006-01-02"

// Draft borrador de convenio tal como llega del formulario o de la importación.
type Draft struct {
	Number            string              `json:"numero_convenio"`
	Supervisor        string              `json:"supervisor"`
	Department        string              `json:"dependencia"`
	Object            string              `json:"objeto"`
	CounterpartEntity string              `json:"entidad"`
	StartDate         string              `json:"fecha_inicio"`
	EndDate           string              `json:"fecha_final"`
	Status            string              `json:"estado,omitempty"`
	BudgetLines       []entity.BudgetLine `json:"presupuesto"`
}

// Validate aplica las reglas de envío. Devuelve nil o la unión (errors.Join) de todos los
// *domain.ValidationError encontrados; errors.Is(err, domain.ErrInvalidInput) siempre se cumple.
func Validate(d Draft) error {
	var errs []error

	required := []struct {
		field, value, label string
	}{
		{"numero_convenio", d.Number, "el número del convenio"},
		{"supervisor", d.Supervisor, "el supervisor"},
		{"dependencia", d.Department, "la dependencia"},
		{"objeto", d.Object, "el objeto"},
		{"entidad", d.CounterpartEntity, "la entidad"},
		{"fecha_inicio", d.StartDate, "la fecha de inicio"},
		{"fecha_final", d.EndDate, "la fecha final"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, domain.NewValidationError(r.field, "%s es obligatorio", r.label))
		}
	}

	start, startErr := parseDate("fecha_inicio", d.StartDate)
	end, endErr := parseDate("fecha_final", d.EndDate)
	errs = appendIf(errs, startErr)
	errs = appendIf(errs, endErr)
	if startErr == nil && endErr == nil && !start.IsZero() && !end.IsZero() {
		if entity.ValidityLabel(start, end) == "" {
			errs = append(errs, domain.NewValidationError("vigencia", "no se pudo derivar la vigencia de las fechas"))
		}
	}

	if s := strings.TrimSpace(d.Status); s != "" && !IsValidStatus(s) {
		errs = append(errs, domain.NewValidationError("estado", "estado %q no reconocido", s))
	}

	errs = appendIf(errs, finance.ValidateBudgetLines(d.BudgetLines))

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// ToAgreement convierte un borrador ya validado en la entidad. Los totales se derivan del presupuesto.
func ToAgreement(d Draft) (*entity.Agreement, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	start, _ := time.Parse(DateLayout, strings.TrimSpace(d.StartDate))
	end, _ := time.Parse(DateLayout, strings.TrimSpace(d.EndDate))

	status := strings.TrimSpace(d.Status)
	if status == "" {
		status = entity.AgreementStatusInProcess
	}
	a := &entity.Agreement{
		Number:            strings.TrimSpace(d.Number),
		Supervisor:        strings.TrimSpace(d.Supervisor),
		DepartmentName:    strings.TrimSpace(d.Department),
		Object:            strings.TrimSpace(d.Object),
		Status:            status,
		StartDate:         start,
		EndDate:           end,
		CounterpartEntity: strings.TrimSpace(d.CounterpartEntity),
		BudgetLines:       make([]entity.BudgetLine, len(d.BudgetLines)),
	}
	for i, l := range d.BudgetLines {
		l.Item = i + 1
		l.Activity = strings.TrimSpace(l.Activity)
		a.BudgetLines[i] = l
	}
	finance.ApplyTotals(a)
	return a, nil
}

// IsValidStatus indica si s es un estado de convenio conocido.
func IsValidStatus(s string) bool {
	switch s {
	case entity.AgreementStatusActive, entity.AgreementStatusFinished, entity.AgreementStatusInProcess:
		return true
	}
	return false
}

func parseDate(field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "fecha %q inválida, use AAAA-MM-DD", v)
	}
	return t, nil
}

func appendIf(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
