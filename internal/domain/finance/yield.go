// Package finance contiene los servicios de dominio puros del módulo financiero de convenios:
// cálculo de rendimientos, consolidación de presupuesto y seguimiento de giros.
// Ninguna función guarda estado entre llamadas ni accede a infraestructura.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
)

// Tasas de deducción por defecto, en porcentaje.
var (
	DefaultWithholdingRate = decimal.RequireFromString("2.5") // retención en la fuente
	DefaultBankFeeRate     = decimal.RequireFromString("0.5") // gastos bancarios
)

// DefaultPeriodDays período estándar de liquidación (mensual).
const DefaultPeriodDays = 30

var (
	hundred            = decimal.NewFromInt(100)
	monthlyRateDivisor = decimal.NewFromInt(1200) // 100 (porcentaje) × 12 meses
)

// YieldInput parámetros de la calculadora. Todas las tasas en porcentaje (12 = 12 %).
type YieldInput struct {
	BaseValue              decimal.Decimal
	AnnualRatePercent      decimal.Decimal
	PeriodDays             int
	WithholdingRatePercent decimal.Decimal
	BankFeeRatePercent     decimal.Decimal
}

// YieldResult montos calculados a precisión completa (sin redondear).
type YieldResult struct {
	GrossYield decimal.Decimal `json:"rendimientoBruto"`
	Deductions decimal.Decimal `json:"deducciones"`
	NetYield   decimal.Decimal `json:"rendimientoNeto"`
}

// CalculateYield liquida el rendimiento mensual de un saldo.
//
//	Bruto       = Base × TasaAnual / 1200
//	Neto        = Bruto × (100 − Retención − GastosBancarios) / 100
//	Deducciones = Bruto − Neto
//
// El bruto divide la tasa nominal anual entre 12 sin importar PeriodDays; PeriodDays solo se valida.
// Las deducciones se derivan de la tasa combinada para que Neto nunca sea negativo ni
// difiera de Bruto − Deducciones por redondeo de la división.
func CalculateYield(in YieldInput) (YieldResult, error) {
	if err := validateYieldInput(in); err != nil {
		return YieldResult{}, err
	}

	gross := in.BaseValue.Mul(in.AnnualRatePercent).Div(monthlyRateDivisor)
	combined := in.WithholdingRatePercent.Add(in.BankFeeRatePercent)
	net := gross.Mul(hundred.Sub(combined)).Div(hundred)

	return YieldResult{
		GrossYield: gross,
		Deductions: gross.Sub(net),
		NetYield:   net,
	}, nil
}

func validateYieldInput(in YieldInput) error {
	if in.BaseValue.IsNegative() {
		return &domain.InvalidRateError{Param: "valorBase", Value: in.BaseValue, Rule: "no puede ser negativo"}
	}
	if in.PeriodDays <= 0 {
		return &domain.InvalidRateError{Param: "diasPeriodo", Value: decimal.NewFromInt(int64(in.PeriodDays)), Rule: "debe ser positivo"}
	}
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"tasaAnual", in.AnnualRatePercent},
		{"retencion", in.WithholdingRatePercent},
		{"gastosBancarios", in.BankFeeRatePercent},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThan(hundred) {
			return &domain.InvalidRateError{Param: r.name, Value: r.value, Rule: "debe estar entre 0 y 100"}
		}
	}
	// Con deducciones combinadas > 100 % el neto sería negativo.
	combined := in.WithholdingRatePercent.Add(in.BankFeeRatePercent)
	if combined.GreaterThan(hundred) {
		return &domain.InvalidRateError{Param: "deducciones", Value: combined, Rule: "la suma de retención y gastos no puede superar 100"}
	}
	return nil
}

// RateFractionToPercent convierte una tasa almacenada como fracción (0.12) a porcentaje (12).
func RateFractionToPercent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}

// RatePercentToFraction convierte un porcentaje (12) a la fracción que se persiste (0.12).
func RatePercentToFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}
