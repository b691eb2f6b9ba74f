package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Convenios-api/internal/domain/repository"
)

var _ repository.AlertReadRepository = (*AlertReadRepo)(nil)

// AlertReadRepo guarda qué alertas leyó cada usuario.
type AlertReadRepo struct {
	q Querier
}

// NewAlertReadRepository construye el adaptador.
func NewAlertReadRepository(q Querier) *AlertReadRepo {
	return &AlertReadRepo{q: q}
}

// ListRead IDs de alertas leídas por el usuario.
func (r *AlertReadRepo) ListRead(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT alert_id FROM alert_reads WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list alert reads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan alert read: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkRead inserta las lecturas en una sola sentencia; las ya registradas se conservan.
func (r *AlertReadRepo) MarkRead(ctx context.Context, userID string, alertIDs []string, at time.Time) error {
	if len(alertIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO alert_reads (user_id, alert_id, read_at)
		SELECT $1, id, $3 FROM unnest($2::text[]) AS id
		ON CONFLICT (user_id, alert_id) DO NOTHING`, userID, alertIDs, at)
	if err != nil {
		return fmt.Errorf("mark alerts read: %w", err)
	}
	return nil
}
