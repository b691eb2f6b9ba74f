package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

var _ repository.DisbursementRepository = (*DisbursementRepo)(nil)

// DisbursementRepo implementación de DisbursementRepository (usable con pool o tx).
type DisbursementRepo struct {
	q Querier
}

// NewDisbursementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDisbursementRepository(q Querier) *DisbursementRepo {
	return &DisbursementRepo{q: q}
}

const disbursementColumns = `id, agreement_id, sequence, payer, amount, scheduled_date, executed_date, status`

// Create persiste un giro programado.
func (r *DisbursementRepo) Create(ctx context.Context, d *entity.Disbursement) error {
	query := `
		INSERT INTO disbursements (id, agreement_id, sequence, payer, amount, scheduled_date, executed_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.AgreementID, d.Sequence, d.Payer, d.Amount, d.ScheduledDate, d.ExecutedDate, d.Status,
	)
	if err != nil {
		return fmt.Errorf("insert disbursement: %w", err)
	}
	return nil
}

// GetByID obtiene un giro por ID.
func (r *DisbursementRepo) GetByID(ctx context.Context, id string) (*entity.Disbursement, error) {
	var d entity.Disbursement
	err := r.q.QueryRow(ctx, `SELECT `+disbursementColumns+` FROM disbursements WHERE id = $1`, id).Scan(
		&d.ID, &d.AgreementID, &d.Sequence, &d.Payer, &d.Amount, &d.ScheduledDate, &d.ExecutedDate, &d.Status,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disbursement: %w", err)
	}
	return &d, nil
}

// ListByAgreement devuelve los giros del convenio por fecha programada.
func (r *DisbursementRepo) ListByAgreement(ctx context.Context, agreementID string) ([]entity.Disbursement, error) {
	return r.list(ctx, `SELECT `+disbursementColumns+` FROM disbursements
		WHERE agreement_id = $1 ORDER BY scheduled_date, payer, sequence`, agreementID)
}

// UpdateStatus guarda el estado y la fecha de ejecución.
func (r *DisbursementRepo) UpdateStatus(ctx context.Context, d *entity.Disbursement) error {
	cmd, err := r.q.Exec(ctx, `UPDATE disbursements SET status = $2, executed_date = $3 WHERE id = $1`,
		d.ID, d.Status, d.ExecutedDate)
	if err != nil {
		return fmt.Errorf("update disbursement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExecuted giros ejecutados dentro del rango de fecha de ejecución.
func (r *DisbursementRepo) ListExecuted(ctx context.Context, from, to time.Time) ([]entity.Disbursement, error) {
	return r.list(ctx, `SELECT `+disbursementColumns+` FROM disbursements
		WHERE status = 'ejecutado' AND executed_date IS NOT NULL
		  AND ($1::date IS NULL OR executed_date >= $1)
		  AND ($2::date IS NULL OR executed_date <= $2)
		ORDER BY executed_date`, nullTime(from), nullTime(to))
}

// ListUnexecuted giros programados o pendientes de todos los convenios.
func (r *DisbursementRepo) ListUnexecuted(ctx context.Context) ([]entity.Disbursement, error) {
	return r.list(ctx, `SELECT `+disbursementColumns+` FROM disbursements
		WHERE status <> 'ejecutado' AND executed_date IS NULL
		ORDER BY scheduled_date, agreement_id, payer, sequence`)
}

func (r *DisbursementRepo) list(ctx context.Context, query string, args ...any) ([]entity.Disbursement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list disbursements: %w", err)
	}
	defer rows.Close()

	var list []entity.Disbursement
	for rows.Next() {
		var d entity.Disbursement
		if err := rows.Scan(&d.ID, &d.AgreementID, &d.Sequence, &d.Payer, &d.Amount, &d.ScheduledDate, &d.ExecutedDate, &d.Status); err != nil {
			return nil, fmt.Errorf("scan disbursement: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
