package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	"github.com/jhoicas/Convenios-api/pkg/logger"
)

// AlertUseCase deriva las alertas en cada consulta y guarda solo el estado de lectura por usuario.
type AlertUseCase struct {
	agreements    repository.AgreementRepository
	disbursements repository.DisbursementRepository
	documents     repository.DocumentRepository
	reads         repository.AlertReadRepository
	window        int
	now           func() time.Time
	log           *logger.Logger
}

// NewAlertUseCase construye el caso de uso. window es la ventana de vencimientos en días.
func NewAlertUseCase(
	agreements repository.AgreementRepository,
	disbursements repository.DisbursementRepository,
	documents repository.DocumentRepository,
	reads repository.AlertReadRepository,
	window int,
	log *logger.Logger,
) *AlertUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertUseCase{
		agreements:    agreements,
		disbursements: disbursements,
		documents:     documents,
		reads:         reads,
		window:        window,
		now:           time.Now,
		log:           log.Component("alerts"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AlertUseCase) WithClock(now func() time.Time) *AlertUseCase {
	uc.now = now
	return uc
}

// List alertas vigentes del usuario. Con onlyUnread se omiten las ya leídas; los conteos
// de la respuesta siempre cubren todas.
func (uc *AlertUseCase) List(ctx context.Context, userID string, onlyUnread bool) (*dto.AlertListResponse, error) {
	alerts, err := uc.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.AlertListResponse{Items: []entity.Alert{}, ByType: map[string]int{}, Total: len(alerts)}
	for _, a := range alerts {
		out.ByType[a.Type]++
		if !a.Read {
			out.Unread++
		}
		if onlyUnread && a.Read {
			continue
		}
		out.Items = append(out.Items, a)
	}
	return out, nil
}

// MarkRead marca una alerta vigente como leída. Un ID que ya no corresponde a ninguna
// alerta vigente → domain.ErrNotFound.
func (uc *AlertUseCase) MarkRead(ctx context.Context, userID, alertID string) (*entity.Alert, error) {
	alerts, err := uc.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range alerts {
		if a.ID != alertID {
			continue
		}
		if !a.Read {
			if err := uc.reads.MarkRead(ctx, userID, []string{a.ID}, uc.now()); err != nil {
				return nil, fmt.Errorf("alertas: marcar leída: %w", err)
			}
			a.Read = true
		}
		return &a, nil
	}
	return nil, domain.ErrNotFound
}

// MarkAllRead marca como leídas todas las alertas vigentes y devuelve cuántas cambiaron.
func (uc *AlertUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	alerts, err := uc.current(ctx, userID)
	if err != nil {
		return 0, err
	}
	var ids []string
	for _, a := range alerts {
		if !a.Read {
			ids = append(ids, a.ID)
		}
	}
	if err := uc.reads.MarkRead(ctx, userID, ids, uc.now()); err != nil {
		return 0, fmt.Errorf("alertas: marcar todas: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Int("marked", len(ids)).Msg("alertas marcadas como leídas")
	return len(ids), nil
}

// current lee la instantánea en paralelo, deriva las alertas y aplica la lectura del usuario.
func (uc *AlertUseCase) current(ctx context.Context, userID string) ([]entity.Alert, error) {
	var (
		records    []repository.AgreementRecord
		unexecuted []entity.Disbursement
		pending    int
		read       []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if records, err = uc.agreements.ListRecords(gctx, time.Time{}, time.Time{}); err != nil {
			return fmt.Errorf("alertas: convenios: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if unexecuted, err = uc.disbursements.ListUnexecuted(gctx); err != nil {
			return fmt.Errorf("alertas: giros: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pending, err = uc.documents.CountByStatus(gctx, entity.DocumentPending); err != nil {
			return fmt.Errorf("alertas: documentos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if read, err = uc.reads.ListRead(gctx, userID); err != nil {
			return fmt.Errorf("alertas: lecturas: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views, gaps := AdaptAll(records)
	if len(gaps) > 0 {
		uc.log.Debug().Int("warnings", len(gaps)).Msg("registros de convenio incompletos")
	}
	alerts := DeriveAlerts(AlertInput{
		Agreements:       views,
		Unexecuted:       unexecuted,
		PendingDocuments: pending,
		Today:            uc.now(),
		ExpirationWindow: uc.window,
	})

	seen := make(map[string]bool, len(read))
	for _, id := range read {
		seen[id] = true
	}
	for i := range alerts {
		alerts[i].Read = seen[alerts[i].ID]
	}
	return alerts, nil
}
