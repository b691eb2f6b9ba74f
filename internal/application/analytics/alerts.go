package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
	"github.com/jhoicas/Convenios-api/pkg/money"
)

// Umbrales de prioridad, en días.
const (
	expirationHighDays   = 7
	expirationMediumDays = 15
	overdueHighDays      = 30
)

// AlertInput instantánea sobre la que se derivan las alertas.
type AlertInput struct {
	Agreements       []AgreementView
	Unexecuted       []entity.Disbursement // giros sin ejecutar de todos los convenios
	PendingDocuments int
	Today            time.Time
	ExpirationWindow int // días; <= 0 usa DefaultExpirationWindowDays
}

// DeriveAlerts genera las alertas vigentes, ordenadas por prioridad y luego por fecha:
//
//	vencimiento  convenio con fecha final dentro de la ventana
//	ejecucion    convenio activo cuya fecha final ya pasó
//	financiero   giro sin ejecutar después de su fecha programada
//	documento    documentos pendientes de revisión (una sola alerta; cambia de ID con el conteo)
//
// Todas salen sin leer; el estado de lectura lo aplica el caso de uso.
func DeriveAlerts(in AlertInput) []entity.Alert {
	window := in.ExpirationWindow
	if window <= 0 {
		window = DefaultExpirationWindowDays
	}

	out := []entity.Alert{}
	numbers := make(map[string]string, len(in.Agreements))
	for _, a := range in.Agreements {
		numbers[a.ID] = agreementLabel(a)

		if IsUpcomingExpiration(a, in.Today, window) {
			days := finance.DaysBetween(in.Today, a.EndDate)
			out = append(out, entity.Alert{
				ID:          fmt.Sprintf("%s:%s:%s", entity.AlertExpiration, a.ID, a.EndDate.Format(time.DateOnly)),
				AgreementID: a.ID,
				Type:        entity.AlertExpiration,
				Priority:    expirationPriority(days),
				Message:     fmt.Sprintf("El convenio %s %s", numbers[a.ID], dueIn(days)),
				Date:        a.EndDate,
			})
			continue
		}
		if a.HasEndDate && a.Status == entity.AgreementStatusActive && !IsActive(a, in.Today) {
			out = append(out, entity.Alert{
				ID:          fmt.Sprintf("%s:%s:%s", entity.AlertExecution, a.ID, a.EndDate.Format(time.DateOnly)),
				AgreementID: a.ID,
				Type:        entity.AlertExecution,
				Priority:    entity.PriorityMedium,
				Message: fmt.Sprintf("El convenio %s terminó el %s y sigue en estado activo",
					numbers[a.ID], a.EndDate.Format(time.DateOnly)),
				Date: a.EndDate,
			})
		}
	}

	for _, d := range in.Unexecuted {
		if !finance.IsOverdue(d, in.Today) {
			continue
		}
		late := finance.DaysBetween(d.ScheduledDate, in.Today)
		priority := entity.PriorityMedium
		if late > overdueHighDays {
			priority = entity.PriorityHigh
		}
		number, ok := numbers[d.AgreementID]
		if !ok {
			number = d.AgreementID
		}
		out = append(out, entity.Alert{
			ID:          fmt.Sprintf("%s:%s", entity.AlertFinancial, d.ID),
			AgreementID: d.AgreementID,
			Type:        entity.AlertFinancial,
			Priority:    priority,
			Message: fmt.Sprintf("Giro %d de %s por %s del convenio %s vencido hace %d días",
				d.Sequence, d.Payer, money.FormatCOP(d.Amount), number, late),
			Date: d.ScheduledDate,
		})
	}

	if in.PendingDocuments > 0 {
		out = append(out, entity.Alert{
			ID:       fmt.Sprintf("%s:pendientes:%d", entity.AlertDocument, in.PendingDocuments),
			Type:     entity.AlertDocument,
			Priority: entity.PriorityLow,
			Message:  fmt.Sprintf("%d documentos pendientes de revisión", in.PendingDocuments),
			Date:     in.Today,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := entity.PriorityRank(out[i].Priority), entity.PriorityRank(out[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func expirationPriority(days int) string {
	switch {
	case days <= expirationHighDays:
		return entity.PriorityHigh
	case days <= expirationMediumDays:
		return entity.PriorityMedium
	}
	return entity.PriorityLow
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "vence hoy"
	case 1:
		return "vence mañana"
	}
	return fmt.Sprintf("vence en %d días", days)
}

func agreementLabel(a AgreementView) string {
	if a.Number != "" {
		return a.Number
	}
	return a.ID
}
