package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
)

// ReportRequest query de GET /api/reports (fechas AAAA-MM-DD, ambas opcionales).
type ReportRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// ReportDTO informe financiero por meses y distribución por dependencia.
type ReportDTO struct {
	From        string               `json:"from,omitempty"`
	To          string               `json:"to,omitempty"`
	Months      []ReportMonthDTO     `json:"months"`
	Departments []DepartmentShareDTO `json:"departments"`
	Totals      ReportTotalsDTO      `json:"totals"`
	Warnings    []domain.DataGap     `json:"warnings,omitempty"`
	HasErrors   bool                 `json:"has_errors"`
}

// ReportMonthDTO ingresos (valor aprobado por mes de creación), egresos (giros ejecutados)
// y rendimiento neto del mes.
type ReportMonthDTO struct {
	Key     string          `json:"key" csv:"periodo"`
	Month   string          `json:"month" csv:"mes"`
	Income  decimal.Decimal `json:"income" csv:"ingresos"`
	Expense decimal.Decimal `json:"expense" csv:"egresos"`
	Yield   decimal.Decimal `json:"yield" csv:"rendimientos"`
}

// ReportTotalsDTO sumas del período.
type ReportTotalsDTO struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Yield   decimal.Decimal `json:"yield"`
}
