package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
)

// ReportPalette colores del gráfico de dependencias; se asignan ciclando por posición.
var ReportPalette = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

// ReportInput instantánea y rango del informe. From/To en cero no limitan; se comparan por fecha.
type ReportInput struct {
	Agreements    []AgreementView
	Disbursements []entity.Disbursement // giros ejecutados
	Yields        []entity.YieldRecord
	From          time.Time
	To            time.Time
}

type monthTotals struct {
	income, expense, yield decimal.Decimal
}

// ComputeReport agrega ingresos, egresos y rendimientos por mes, y la distribución por dependencia.
//
//	ingresos      = Σ valor aprobado por mes de creación del convenio
//	egresos       = Σ monto de giros ejecutados por mes de ejecución
//	rendimientos  = Σ rendimiento neto por mes del período
//
// Sin giros o sin rendimientos en la fuente, la columna queda en 0 con una advertencia.
func ComputeReport(in ReportInput) dto.ReportDTO {
	out := dto.ReportDTO{
		Months: []dto.ReportMonthDTO{},
		Totals: dto.ReportTotalsDTO{Income: decimal.Zero, Expense: decimal.Zero, Yield: decimal.Zero},
	}
	if !in.From.IsZero() {
		out.From = in.From.Format("2006-01-02")
	}
	if !in.To.IsZero() {
		out.To = in.To.Format("2006-01-02")
	}

	buckets := make(map[string]*monthTotals)
	bucket := func(key string) *monthTotals {
		b, ok := buckets[key]
		if !ok {
			b = &monthTotals{income: decimal.Zero, expense: decimal.Zero, yield: decimal.Zero}
			buckets[key] = b
		}
		return b
	}

	inRange := make([]AgreementView, 0, len(in.Agreements))
	for _, a := range in.Agreements {
		if !a.HasCreatedAt || !withinRange(a.CreatedAt, in.From, in.To) {
			continue
		}
		inRange = append(inRange, a)
		b := bucket(monthKey(a.CreatedAt))
		b.income = b.income.Add(a.ApprovedValue)
	}

	executed := 0
	for _, d := range in.Disbursements {
		if d.Status != entity.DisbursementExecuted || d.ExecutedDate == nil {
			continue
		}
		if !withinRange(*d.ExecutedDate, in.From, in.To) {
			continue
		}
		executed++
		b := bucket(monthKey(*d.ExecutedDate))
		b.expense = b.expense.Add(d.Amount)
	}
	if executed == 0 {
		out.Warnings = append(out.Warnings, domain.DataGap{Field: "egresos", Reason: "sin giros ejecutados en la fuente para el rango; egresos en 0"})
	}

	yields := 0
	for _, y := range in.Yields {
		t, err := time.Parse(entity.PeriodLayout, y.Period)
		if err != nil {
			out.Warnings = append(out.Warnings, domain.DataGap{Field: "rendimientos." + y.ID, Reason: "período inválido " + y.Period})
			continue
		}
		if !periodWithinRange(t, in.From, in.To) {
			continue
		}
		yields++
		b := bucket(monthKey(t))
		b.yield = b.yield.Add(y.NetYield)
	}
	if yields == 0 {
		out.Warnings = append(out.Warnings, domain.DataGap{Field: "rendimientos", Reason: "sin rendimientos en la fuente para el rango; rendimientos en 0"})
	}

	for _, key := range sortedKeys(buckets) {
		b := buckets[key]
		out.Months = append(out.Months, dto.ReportMonthDTO{
			Key: key, Month: labelForKey(key),
			Income: b.income, Expense: b.expense, Yield: b.yield,
		})
		out.Totals.Income = out.Totals.Income.Add(b.income)
		out.Totals.Expense = out.Totals.Expense.Add(b.expense)
		out.Totals.Yield = out.Totals.Yield.Add(b.yield)
	}

	out.Departments = RankedDepartments(inRange)
	return out
}

// RankedDepartments distribución por dependencia ordenada por cantidad descendente
// (empates en orden de aparición) con la paleta fija asignada por posición.
func RankedDepartments(views []AgreementView) []dto.DepartmentShareDTO {
	shares := DepartmentDistribution(views)
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Count > shares[j].Count })
	for i := range shares {
		shares[i].Color = ReportPalette[i%len(ReportPalette)]
	}
	return shares
}

func withinRange(t, from, to time.Time) bool {
	if !from.IsZero() && finance.DaysBetween(from, t) < 0 {
		return false
	}
	if !to.IsZero() && finance.DaysBetween(t, to) < 0 {
		return false
	}
	return true
}

// periodWithinRange un período mensual entra si se solapa con el rango.
func periodWithinRange(start, from, to time.Time) bool {
	end := start.AddDate(0, 1, -1)
	if !from.IsZero() && finance.DaysBetween(from, end) < 0 {
		return false
	}
	if !to.IsZero() && finance.DaysBetween(start, to) < 0 {
		return false
	}
	return true
}
