package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

var _ repository.AgreementRepository = (*AgreementRepo)(nil)

// AgreementRepo implementación de AgreementRepository (usable con pool o tx).
type AgreementRepo struct {
	q Querier
}

// NewAgreementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAgreementRepository(q Querier) *AgreementRepo {
	return &AgreementRepo{q: q}
}

const agreementColumns = `
	a.id, a.number, a.supervisor, a.department_id, COALESCE(d.name, ''), a.object, a.status,
	a.start_date, a.end_date, a.counterpart_entity, a.total_value, a.car_contribution,
	a.entity_contribution, a.created_by, a.created_at, a.updated_at`

// Create persiste la cabecera del convenio y sus líneas de presupuesto.
// Llamar dentro de una transacción para que ambas queden o ninguna.
func (r *AgreementRepo) Create(ctx context.Context, a *entity.Agreement) error {
	query := `
		INSERT INTO agreements (id, number, supervisor, department_id, object, status, start_date, end_date,
			validity, counterpart_entity, total_value, car_contribution, entity_contribution, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Number, a.Supervisor, nullIfEmpty(a.DepartmentID), a.Object, a.Status,
		a.StartDate, nullTime(a.EndDate), nullIfEmpty(a.Validity()), a.CounterpartEntity,
		a.TotalValue, a.CARContribution, a.EntityContribution, nullIfEmpty(a.CreatedBy),
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: convenio %s", domain.ErrDuplicate, a.Number)
		}
		return fmt.Errorf("insert agreement: %w", err)
	}

	for _, l := range a.BudgetLines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO budget_lines (id, agreement_id, item, activity, total_value, car_share, entity_share)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, a.ID, l.Item, l.Activity, l.TotalValue, l.CARShare, l.EntityShare,
		)
		if err != nil {
			return fmt.Errorf("insert budget line %d: %w", l.Item, err)
		}
	}
	return nil
}

// GetByID obtiene el convenio con su presupuesto.
func (r *AgreementRepo) GetByID(ctx context.Context, id string) (*entity.Agreement, error) {
	return r.getOne(ctx, "a.id = $1", id)
}

// GetByNumber obtiene el convenio por número (único).
func (r *AgreementRepo) GetByNumber(ctx context.Context, number string) (*entity.Agreement, error) {
	return r.getOne(ctx, "a.number = $1", number)
}

func (r *AgreementRepo) getOne(ctx context.Context, where string, arg any) (*entity.Agreement, error) {
	query := `SELECT` + agreementColumns + `
		FROM agreements a LEFT JOIN departments d ON d.id = a.department_id
		WHERE ` + where
	a, err := scanAgreement(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agreement: %w", err)
	}
	lines, err := r.budgetLines(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.BudgetLines = lines
	return a, nil
}

func (r *AgreementRepo) budgetLines(ctx context.Context, agreementID string) ([]entity.BudgetLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, agreement_id, item, activity, total_value, car_share, entity_share
		FROM budget_lines WHERE agreement_id = $1 ORDER BY item`, agreementID)
	if err != nil {
		return nil, fmt.Errorf("list budget lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.BudgetLine
	for rows.Next() {
		var l entity.BudgetLine
		if err := rows.Scan(&l.ID, &l.AgreementID, &l.Item, &l.Activity, &l.TotalValue, &l.CARShare, &l.EntityShare); err != nil {
			return nil, fmt.Errorf("scan budget line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// List devuelve cabeceras (sin presupuesto) filtradas, ordenadas por fecha de creación descendente.
func (r *AgreementRepo) List(ctx context.Context, f repository.AgreementFilter) ([]*entity.Agreement, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if f.Status != "" {
		add("a.status = ?", f.Status)
	}
	if f.DepartmentID != "" {
		add("a.department_id = ?", f.DepartmentID)
	}
	if f.Search != "" {
		add("(a.number ILIKE ? OR a.object ILIKE ? OR a.counterpart_entity ILIKE ?)", "%"+f.Search+"%")
	}

	query := `SELECT` + agreementColumns + `
		FROM agreements a LEFT JOIN departments d ON d.id = a.department_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agreements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agreement: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListRecords devuelve los registros tal como están almacenados, con NULL como puntero nil,
// para que el tablero e informes apliquen sus valores por defecto.
func (r *AgreementRepo) ListRecords(ctx context.Context, from, to time.Time) ([]repository.AgreementRecord, error) {
	query := `
		SELECT a.id, a.number, a.validity, a.status, a.start_date, a.end_date, a.total_value, a.created_at, d.name
		FROM agreements a LEFT JOIN departments d ON d.id = a.department_id
		WHERE ($1::timestamptz IS NULL OR a.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR a.created_at < $2::timestamptz + interval '1 day')
		ORDER BY a.created_at`
	rows, err := r.q.Query(ctx, query, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("list agreement records: %w", err)
	}
	defer rows.Close()

	var list []repository.AgreementRecord
	for rows.Next() {
		var (
			rec      repository.AgreementRecord
			value    decimal.NullDecimal
			deptName *string
		)
		if err := rows.Scan(&rec.ID, &rec.Number, &rec.Validity, &rec.Status, &rec.StartDate, &rec.EndDate,
			&value, &rec.CreatedAt, &deptName); err != nil {
			return nil, fmt.Errorf("scan agreement record: %w", err)
		}
		if value.Valid {
			rec.ApprovedValue = &value.Decimal
		}
		if deptName != nil {
			rec.Department = &repository.DepartmentRef{Name: deptName}
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgreement(row rowScanner) (*entity.Agreement, error) {
	var (
		a         entity.Agreement
		deptID    *string
		endDate   *time.Time
		createdBy *string
	)
	err := row.Scan(
		&a.ID, &a.Number, &a.Supervisor, &deptID, &a.DepartmentName, &a.Object, &a.Status,
		&a.StartDate, &endDate, &a.CounterpartEntity, &a.TotalValue, &a.CARContribution,
		&a.EntityContribution, &createdBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deptID != nil {
		a.DepartmentID = *deptID
	}
	if endDate != nil {
		a.EndDate = *endDate
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}
	return &a, nil
}
