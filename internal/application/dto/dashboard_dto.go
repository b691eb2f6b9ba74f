package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
)

// DashboardMetricsDTO respuesta de GET /api/dashboard/summary y /api/dashboard/current.
// Se recalcula completa en cada consulta a partir de la colección de convenios.
type DashboardMetricsDTO struct {
	TotalAgreements     int             `json:"total_agreements"`
	ActiveAgreements    int             `json:"active_agreements"`
	TotalBalance        decimal.Decimal `json:"total_balance"`
	TotalBalanceLabel   string          `json:"total_balance_label"` // ej: "$ 180.000.000"
	MonthlyYieldTotal   decimal.Decimal `json:"monthly_yield_total"` // neto del mes en curso
	MonthlyYieldLabel   string          `json:"monthly_yield_label"`
	UpcomingExpirations int             `json:"upcoming_expirations"`
	PendingDocuments    int             `json:"pending_documents"`

	// Series mensuales por mes de creación (orden cronológico)
	Evolution     []MonthCountDTO `json:"evolution"`
	MonthlyYields []MonthYieldDTO `json:"monthly_yields"`

	StatusBreakdown []StatusSliceDTO     `json:"status_breakdown"`
	Departments     []DepartmentShareDTO `json:"departments"`

	// Calidad de datos: advertencias no fatales e indicador de error de agregación.
	Warnings  []domain.DataGap `json:"warnings,omitempty"`
	HasErrors bool             `json:"has_errors"`

	Sequence    uint64    `json:"sequence"`
	GeneratedAt time.Time `json:"generated_at"`
	DateLabel   string    `json:"date_label"` // ej: "Octubre 2026"
}

// MonthCountDTO convenios creados en un mes.
type MonthCountDTO struct {
	Key            string `json:"key"`   // 2026-01
	Month          string `json:"month"` // ene
	AgreementCount int    `json:"agreement_count"`
}

// MonthYieldDTO rendimiento neto acumulado en un mes.
type MonthYieldDTO struct {
	Key        string          `json:"key"`
	Month      string          `json:"month"`
	YieldTotal decimal.Decimal `json:"yield_total"`
}

// StatusSliceDTO porción del gráfico de estado.
type StatusSliceDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DepartmentShareDTO convenios por dependencia; PercentageOfMax relativo a la dependencia con más convenios.
type DepartmentShareDTO struct {
	Name            string `json:"name"`
	Count           int    `json:"count"`
	PercentageOfMax int    `json:"percentage_of_max"`
	PercentageLabel string `json:"percentage_label"` // ej: "50%"
	Color           string `json:"color,omitempty"`
}
