package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// StatusTotal cantidad y suma de giros en un estado.
type StatusTotal struct {
	Status string          `json:"estado"`
	Count  int             `json:"cantidad"`
	Amount decimal.Decimal `json:"monto"`
}

// PayerSummary giros de un pagador en su orden original, con totales por estado.
type PayerSummary struct {
	Payer         string                `json:"entidad"`
	Disbursements []entity.Disbursement `json:"giros"`
	Count         int                   `json:"cantidad"`
	Total         decimal.Decimal       `json:"total"`
	ByStatus      []StatusTotal         `json:"porEstado"`
}

// Status devuelve el total del estado indicado (cero si no hay giros en ese estado).
func (p PayerSummary) Status(status string) StatusTotal {
	for _, st := range p.ByStatus {
		if st.Status == status {
			return st
		}
	}
	return StatusTotal{Status: status, Amount: decimal.Zero}
}

// DisbursementSummary partición de los giros de un convenio por pagador.
type DisbursementSummary struct {
	CAR      PayerSummary     `json:"car"`
	Entity   PayerSummary     `json:"entidad"`
	Warnings []domain.DataGap `json:"advertencias,omitempty"`
}

// TrackDisbursements separa los giros entre CAR y ENTIDAD conservando el orden relativo
// y acumula cantidad y monto por estado. Giros con pagador o estado desconocido se reportan
// como advertencia; los de estado desconocido cuentan en el total del pagador.
func TrackDisbursements(list []entity.Disbursement) DisbursementSummary {
	s := DisbursementSummary{
		CAR:    newPayerSummary(entity.PayerCAR),
		Entity: newPayerSummary(entity.PayerEntity),
	}
	for i, d := range list {
		var ps *PayerSummary
		switch d.Payer {
		case entity.PayerCAR:
			ps = &s.CAR
		case entity.PayerEntity:
			ps = &s.Entity
		default:
			s.Warnings = append(s.Warnings, domain.DataGap{
				Field:  fmt.Sprintf("giros[%d].entidad", i),
				Reason: fmt.Sprintf("pagador desconocido %q, giro omitido", d.Payer),
			})
			continue
		}
		ps.Disbursements = append(ps.Disbursements, d)
		ps.Count++
		ps.Total = ps.Total.Add(d.Amount)

		idx := statusIndex(d.Status)
		if idx < 0 {
			s.Warnings = append(s.Warnings, domain.DataGap{
				Field:  fmt.Sprintf("giros[%d].estado", i),
				Reason: fmt.Sprintf("estado desconocido %q", d.Status),
			})
			continue
		}
		ps.ByStatus[idx].Count++
		ps.ByStatus[idx].Amount = ps.ByStatus[idx].Amount.Add(d.Amount)
	}
	return s
}

func newPayerSummary(payer string) PayerSummary {
	ps := PayerSummary{
		Payer:         payer,
		Disbursements: []entity.Disbursement{},
		Total:         decimal.Zero,
		ByStatus:      make([]StatusTotal, len(entity.DisbursementStatuses)),
	}
	for i, st := range entity.DisbursementStatuses {
		ps.ByStatus[i] = StatusTotal{Status: st, Amount: decimal.Zero}
	}
	return ps
}

func statusIndex(status string) int {
	for i, st := range entity.DisbursementStatuses {
		if st == status {
			return i
		}
	}
	return -1
}

// NextSequence consecutivo para un nuevo giro del pagador: cantidad de giros existentes + 1.
// Tras eliminar giros puede repetir un número ya usado; ver DuplicateSequences.
func NextSequence(existing []entity.Disbursement, payer string) int {
	n := 0
	for _, d := range existing {
		if d.Payer == payer {
			n++
		}
	}
	return n + 1
}

// SequenceCollision consecutivo repetido dentro de un pagador.
type SequenceCollision struct {
	Payer    string   `json:"entidad"`
	Sequence int      `json:"numeroGiro"`
	IDs      []string `json:"ids"`
}

// DuplicateSequences detecta (pagador, consecutivo) usados por más de un giro.
// No corrige nada: solo expone la inconsistencia.
func DuplicateSequences(list []entity.Disbursement) []SequenceCollision {
	type key struct {
		payer string
		seq   int
	}
	seen := make(map[key][]string)
	var order []key
	for _, d := range list {
		k := key{d.Payer, d.Sequence}
		if _, ok := seen[k]; !ok {
			order = append(order, k)
		}
		seen[k] = append(seen[k], d.ID)
	}
	var out []SequenceCollision
	for _, k := range order {
		if ids := seen[k]; len(ids) > 1 {
			out = append(out, SequenceCollision{Payer: k.payer, Sequence: k.seq, IDs: ids})
		}
	}
	return out
}

// ExecuteDisbursement registra la fecha de ejecución y pasa el giro a "ejecutado".
// No se valida que la fecha de ejecución sea posterior a la programada.
func ExecuteDisbursement(d *entity.Disbursement, executedAt time.Time) error {
	if executedAt.IsZero() {
		return domain.NewValidationError("fechaEjecutada", "la fecha de ejecución es obligatoria")
	}
	if d.Status == entity.DisbursementExecuted {
		return fmt.Errorf("%w: el giro %d ya fue ejecutado", domain.ErrConflict, d.Sequence)
	}
	at := executedAt
	d.ExecutedDate = &at
	d.Status = entity.DisbursementExecuted
	return nil
}

// IsOverdue indica si el giro sigue sin ejecutar después de su fecha programada.
func IsOverdue(d entity.Disbursement, today time.Time) bool {
	return d.ExecutedDate == nil && d.Status != entity.DisbursementExecuted &&
		DaysBetween(today, d.ScheduledDate) < 0
}

// MarkOverdue pasa a "pendiente" un giro vencido sin ejecución.
func MarkOverdue(d *entity.Disbursement, today time.Time) error {
	if d.Status == entity.DisbursementExecuted || d.ExecutedDate != nil {
		return fmt.Errorf("%w: el giro %d ya fue ejecutado", domain.ErrConflict, d.Sequence)
	}
	if !IsOverdue(*d, today) {
		return domain.NewValidationError("fechaProgramada", "el giro %d aún no está vencido", d.Sequence)
	}
	d.Status = entity.DisbursementPending
	return nil
}

// DaysBetween días calendario de from a to (negativo si to es anterior).
// Solo cuenta la fecha; la hora y la zona horaria de cada valor se ignoran.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
