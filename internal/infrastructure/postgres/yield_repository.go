package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

var _ repository.YieldRepository = (*YieldRepo)(nil)

// YieldRepo implementación de YieldRepository (usable con pool o tx). Solo inserción.
type YieldRepo struct {
	q Querier
}

// NewYieldRepository construye el adaptador. Pasar pool o tx (Querier).
func NewYieldRepository(q Querier) *YieldRepo {
	return &YieldRepo{q: q}
}

// Create persiste el rendimiento. UNIQUE(agreement_id, period) → domain.ErrDuplicate.
func (r *YieldRepo) Create(ctx context.Context, y *entity.YieldRecord) error {
	query := `
		INSERT INTO yield_records (id, agreement_id, period, interest_rate, base_value, gross_yield, deductions, net_yield, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		y.ID, y.AgreementID, y.Period, y.InterestRate, y.BaseValue, y.GrossYield, y.Deductions, y.NetYield, y.CalculatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rendimiento %s ya registrado", domain.ErrDuplicate, y.Period)
		}
		return fmt.Errorf("insert yield: %w", err)
	}
	return nil
}

// ExistsForPeriod informa si el convenio ya tiene rendimiento para el período.
func (r *YieldRepo) ExistsForPeriod(ctx context.Context, agreementID, period string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM yield_records WHERE agreement_id = $1 AND period = $2)`,
		agreementID, period,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check yield period: %w", err)
	}
	return exists, nil
}

// ListByAgreement historial del convenio en orden de período.
func (r *YieldRepo) ListByAgreement(ctx context.Context, agreementID string) ([]entity.YieldRecord, error) {
	return r.list(ctx, `
		SELECT id, agreement_id, period, interest_rate, base_value, gross_yield, deductions, net_yield, calculated_at
		FROM yield_records WHERE agreement_id = $1 ORDER BY period`, agreementID)
}

// ListByPeriod rendimientos de todos los convenios dentro del rango de períodos.
// El período AAAA-MM se compara como texto: el orden lexicográfico coincide con el cronológico.
func (r *YieldRepo) ListByPeriod(ctx context.Context, fromPeriod, toPeriod string) ([]entity.YieldRecord, error) {
	return r.list(ctx, `
		SELECT id, agreement_id, period, interest_rate, base_value, gross_yield, deductions, net_yield, calculated_at
		FROM yield_records
		WHERE ($1::text IS NULL OR period >= $1) AND ($2::text IS NULL OR period <= $2)
		ORDER BY period`, nullIfEmpty(fromPeriod), nullIfEmpty(toPeriod))
}

func (r *YieldRepo) list(ctx context.Context, query string, args ...any) ([]entity.YieldRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list yields: %w", err)
	}
	defer rows.Close()

	var list []entity.YieldRecord
	for rows.Next() {
		var y entity.YieldRecord
		if err := rows.Scan(&y.ID, &y.AgreementID, &y.Period, &y.InterestRate, &y.BaseValue,
			&y.GrossYield, &y.Deductions, &y.NetYield, &y.CalculatedAt); err != nil {
			return nil, fmt.Errorf("scan yield: %w", err)
		}
		list = append(list, y)
	}
	return list, rows.Err()
}
