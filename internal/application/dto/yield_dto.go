package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// SimulateYieldRequest entrada de POST /api/yields/simulate. Tasas en porcentaje (12 = 12 %).
// Retención y gastos bancarios vacíos toman los valores configurados.
type SimulateYieldRequest struct {
	BaseValue              decimal.Decimal  `json:"valorBase"`
	AnnualRatePercent      decimal.Decimal  `json:"tasaAnual"`
	PeriodDays             int              `json:"diasPeriodo"`
	WithholdingRatePercent *decimal.Decimal `json:"retencion,omitempty"`
	BankFeeRatePercent     *decimal.Decimal `json:"gastosBancarios,omitempty"`
}

// YieldResultResponse montos a precisión completa y sus etiquetas en COP.
type YieldResultResponse struct {
	GrossYield      decimal.Decimal `json:"rendimientoBruto"`
	Deductions      decimal.Decimal `json:"deducciones"`
	NetYield        decimal.Decimal `json:"rendimientoNeto"`
	GrossYieldLabel string          `json:"rendimientoBrutoLabel"`
	DeductionsLabel string          `json:"deduccionesLabel"`
	NetYieldLabel   string          `json:"rendimientoNetoLabel"`
}

// RecordYieldRequest entrada de POST /api/agreements/:id/yields.
// Sin valorBase se usa el aporte CAR del convenio como saldo.
type RecordYieldRequest struct {
	Period            string           `json:"periodo"` // AAAA-MM
	AnnualRatePercent decimal.Decimal  `json:"tasaAnual"`
	BaseValue         *decimal.Decimal `json:"valorBase,omitempty"`
}

// YieldItemDTO registro histórico con la tasa expresada de nuevo en porcentaje.
type YieldItemDTO struct {
	entity.YieldRecord
	AnnualRatePercent decimal.Decimal `json:"tasaAnual"`      // 12 = 12 %
	AnnualRateLabel   string          `json:"tasaAnualLabel"` // ej: "12%"
}

// YieldListResponse historial de rendimientos de un convenio.
type YieldListResponse struct {
	AgreementID string          `json:"convenio_id"`
	Items       []YieldItemDTO  `json:"items"`
	TotalNet    decimal.Decimal `json:"total_neto"`
}
