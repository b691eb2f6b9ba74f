package repository

import (
	"context"
	"time"
)

// AlertReadRepository estado de lectura de alertas por usuario.
type AlertReadRepository interface {
	// ListRead IDs de alerta que el usuario ya marcó como leídas.
	ListRead(ctx context.Context, userID string) ([]string, error)
	// MarkRead registra la lectura; volver a marcar una alerta leída no es error.
	MarkRead(ctx context.Context, userID string, alertIDs []string, at time.Time) error
}
