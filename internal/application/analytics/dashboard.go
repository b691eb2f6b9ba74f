package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
	"github.com/jhoicas/Convenios-api/pkg/money"
)

// DefaultExpirationWindowDays ventana de "próximos a vencer".
const DefaultExpirationWindowDays = 30

// Colores fijos del gráfico de estado.
const (
	ColorActive = "#10B981"
	ColorOther  = "#6B7280"
)

// DashboardInput instantánea inmutable sobre la que se calculan las métricas.
type DashboardInput struct {
	Agreements       []AgreementView
	Yields           []entity.YieldRecord
	PendingDocuments int
	Today            time.Time
	ExpirationWindow int // días; <= 0 usa DefaultExpirationWindowDays
}

// IsActive vigente si no tiene fecha final o esta es hoy o posterior.
func IsActive(v AgreementView, today time.Time) bool {
	return !v.HasEndDate || finance.DaysBetween(today, v.EndDate) >= 0
}

// IsUpcomingExpiration fecha final presente y a lo sumo window días en el futuro (incluye hoy).
func IsUpcomingExpiration(v AgreementView, today time.Time, window int) bool {
	if !v.HasEndDate {
		return false
	}
	days := finance.DaysBetween(today, v.EndDate)
	return days >= 0 && days <= window
}

// ComputeDashboard recalcula todas las métricas del tablero a partir de la instantánea.
// Es una función pura: no guarda estado entre llamadas.
func ComputeDashboard(in DashboardInput) dto.DashboardMetricsDTO {
	window := in.ExpirationWindow
	if window <= 0 {
		window = DefaultExpirationWindowDays
	}

	out := dto.DashboardMetricsDTO{
		TotalAgreements:   len(in.Agreements),
		TotalBalance:      decimal.Zero,
		MonthlyYieldTotal: decimal.Zero,
		PendingDocuments:  in.PendingDocuments,
		Evolution:         []dto.MonthCountDTO{},
		MonthlyYields:     []dto.MonthYieldDTO{},
		DateLabel:         monthLabel(in.Today),
	}

	counts := make(map[string]int)
	for _, a := range in.Agreements {
		out.TotalBalance = out.TotalBalance.Add(a.ApprovedValue)
		if IsActive(a, in.Today) {
			out.ActiveAgreements++
		}
		if IsUpcomingExpiration(a, in.Today, window) {
			out.UpcomingExpirations++
		}
		if a.HasCreatedAt {
			counts[monthKey(a.CreatedAt)]++
		}
	}

	yieldByPeriod := make(map[string]decimal.Decimal)
	for _, y := range in.Yields {
		yieldByPeriod[y.Period] = yieldByPeriod[y.Period].Add(y.NetYield)
	}
	if len(in.Yields) == 0 {
		out.Warnings = append(out.Warnings, domain.DataGap{
			Field:  "rendimientos",
			Reason: "la fuente no trae rendimientos; los totales mensuales se muestran en 0",
		})
	}
	if total, ok := yieldByPeriod[monthKey(in.Today)]; ok {
		out.MonthlyYieldTotal = total
	}

	for _, key := range sortedKeys(counts) {
		label := labelForKey(key)
		out.Evolution = append(out.Evolution, dto.MonthCountDTO{Key: key, Month: label, AgreementCount: counts[key]})
		yt, ok := yieldByPeriod[key]
		if !ok {
			yt = decimal.Zero
		}
		out.MonthlyYields = append(out.MonthlyYields, dto.MonthYieldDTO{Key: key, Month: label, YieldTotal: yt})
	}

	out.StatusBreakdown = []dto.StatusSliceDTO{
		{Name: "Activos", Value: out.ActiveAgreements, Color: ColorActive},
		{Name: "Otros", Value: out.TotalAgreements - out.ActiveAgreements, Color: ColorOther},
	}
	out.Departments = DepartmentDistribution(in.Agreements)

	out.TotalBalanceLabel = money.FormatCOP(out.TotalBalance)
	out.MonthlyYieldLabel = money.FormatCOP(out.MonthlyYieldTotal)
	return out
}

// DepartmentDistribution agrupa por dependencia en orden de primera aparición.
// PercentageOfMax = round(100 × count / max), con max mínimo 1.
func DepartmentDistribution(views []AgreementView) []dto.DepartmentShareDTO {
	index := make(map[string]int)
	out := []dto.DepartmentShareDTO{}
	for _, v := range views {
		name := v.DepartmentName
		if name == "" {
			name = NoDepartmentLabel
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, dto.DepartmentShareDTO{Name: name})
		}
		out[i].Count++
	}

	maxCount := 1
	for _, d := range out {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}
	for i := range out {
		out[i].PercentageOfMax = percentageOf(out[i].Count, maxCount)
		out[i].PercentageLabel = money.FormatPercent(decimal.NewFromInt(int64(out[i].PercentageOfMax)))
	}
	return out
}

func percentageOf(count, maxCount int) int {
	if maxCount < 1 {
		maxCount = 1
	}
	return int(decimal.NewFromInt(int64(100 * count)).
		Div(decimal.NewFromInt(int64(maxCount))).
		Round(0).IntPart())
}
