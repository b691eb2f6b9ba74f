package finance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// BudgetTotals totales del convenio derivados de sus líneas de presupuesto.
type BudgetTotals struct {
	TotalValue         decimal.Decimal `json:"valorTotal"`
	CARContribution    decimal.Decimal `json:"aporteCAR"`
	EntityContribution decimal.Decimal `json:"aporteEntidad"`
}

// SumBudget suma elemento a elemento valor total, aporte CAR y aporte entidad.
// Una lista vacía devuelve ceros. No hay redondeo implícito.
func SumBudget(lines []entity.BudgetLine) BudgetTotals {
	t := BudgetTotals{
		TotalValue:         decimal.Zero,
		CARContribution:    decimal.Zero,
		EntityContribution: decimal.Zero,
	}
	for _, l := range lines {
		t.TotalValue = t.TotalValue.Add(l.TotalValue)
		t.CARContribution = t.CARContribution.Add(l.CARShare)
		t.EntityContribution = t.EntityContribution.Add(l.EntityShare)
	}
	return t
}

// ValidateBudgetLines reglas previas al guardado: al menos una línea, cada una con
// actividad y valor total positivo.
func ValidateBudgetLines(lines []entity.BudgetLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("presupuesto", "el convenio debe tener al menos una línea de presupuesto")
	}
	for i, l := range lines {
		if strings.TrimSpace(l.Activity) == "" {
			return domain.NewValidationError("presupuesto", "la línea %d no tiene actividad", i+1)
		}
		if !l.TotalValue.IsPositive() {
			return domain.NewValidationError("presupuesto", "la línea %d debe tener un valor total mayor que cero", i+1)
		}
	}
	return nil
}

// LineWarnings reporta líneas donde valor total != aporte CAR + aporte entidad.
func LineWarnings(lines []entity.BudgetLine) []domain.DataGap {
	var gaps []domain.DataGap
	for i, l := range lines {
		if !l.TotalValue.Equal(l.CARShare.Add(l.EntityShare)) {
			gaps = append(gaps, domain.DataGap{
				Field:  fmt.Sprintf("presupuesto[%d]", i+1),
				Reason: fmt.Sprintf("valor total %s distinto de la suma de aportes %s", l.TotalValue, l.CARShare.Add(l.EntityShare)),
			})
		}
	}
	return gaps
}

// ConsistencyReport compara los totales guardados del convenio con los recalculados.
type ConsistencyReport struct {
	Stored     BudgetTotals     `json:"guardado"`
	Computed   BudgetTotals     `json:"calculado"`
	Consistent bool             `json:"consistente"`
	Warnings   []domain.DataGap `json:"advertencias,omitempty"`
}

// CheckConsistency recalcula los totales y los contrasta con los del convenio.
func CheckConsistency(a *entity.Agreement) ConsistencyReport {
	computed := SumBudget(a.BudgetLines)
	stored := BudgetTotals{
		TotalValue:         a.TotalValue,
		CARContribution:    a.CARContribution,
		EntityContribution: a.EntityContribution,
	}
	report := ConsistencyReport{Stored: stored, Computed: computed, Warnings: LineWarnings(a.BudgetLines)}
	report.Consistent = stored.TotalValue.Equal(computed.TotalValue) &&
		stored.CARContribution.Equal(computed.CARContribution) &&
		stored.EntityContribution.Equal(computed.EntityContribution)
	return report
}

// ApplyTotals reemplaza los totales del convenio por los derivados de sus líneas.
func ApplyTotals(a *entity.Agreement) BudgetTotals {
	t := SumBudget(a.BudgetLines)
	a.TotalValue = t.TotalValue
	a.CARContribution = t.CARContribution
	a.EntityContribution = t.EntityContribution
	return t
}
