// Package analytics contiene los casos de uso del tablero de convenios y de los informes
// financieros, junto con los agregadores puros que los alimentan.
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

// DashboardUseCase genera las métricas del tablero de convenios.
//
// Fuente de datos: repositorios de convenios, rendimientos y documentos (consultas read-only).
// Cada llamada vuelve a leer y recalcula todo; no hay caché más allá de la última vista publicada.
type DashboardUseCase struct {
	agreements repository.AgreementRepository
	yields     repository.YieldRepository
	documents  repository.DocumentRepository
	window     int
	now        func() time.Time
	guard      RefreshGuard[*dto.DashboardMetricsDTO]
	log        *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. window es la ventana de vencimientos en días.
func NewDashboardUseCase(
	agreements repository.AgreementRepository,
	yields repository.YieldRepository,
	documents repository.DocumentRepository,
	window int,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		agreements: agreements,
		yields:     yields,
		documents:  documents,
		window:     window,
		now:        time.Now,
		log:        log.Component("dashboard"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Refresh lee la instantánea y recalcula el tablero.
//
// Tres lecturas en paralelo:
//  1. ListRecords        → colección de convenios
//  2. ListByPeriod       → rendimientos registrados
//  3. CountByStatus      → documentos pendientes
//
// Los errores de la fuente se propagan sin ocultarse. El resultado se publica como vista
// actual solo si ningún refresco iniciado después ya publicó el suyo.
func (uc *DashboardUseCase) Refresh(ctx context.Context) (*dto.DashboardMetricsDTO, error) {
	ticket := uc.guard.Begin()
	today := uc.now()

	var (
		records []repository.AgreementRecord
		yields  []entity.YieldRecord
		pending int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if records, err = uc.agreements.ListRecords(gctx, time.Time{}, time.Time{}); err != nil {
			return fmt.Errorf("dashboard: convenios: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if yields, err = uc.yields.ListByPeriod(gctx, "", ""); err != nil {
			return fmt.Errorf("dashboard: rendimientos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pending, err = uc.documents.CountByStatus(gctx, entity.DocumentPending); err != nil {
			return fmt.Errorf("dashboard: documentos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := uc.compute(records, yields, pending, today)
	metrics.Sequence = ticket
	metrics.GeneratedAt = today

	if !uc.guard.Publish(ticket, metrics) {
		uc.log.Debug().Uint64("ticket", ticket).Msg("refresco obsoleto descartado como vista actual")
	}
	return metrics, nil
}

// Current devuelve la última vista publicada, o refresca si todavía no hay ninguna.
func (uc *DashboardUseCase) Current(ctx context.Context) (*dto.DashboardMetricsDTO, error) {
	if m, _, ok := uc.guard.Current(); ok {
		return m, nil
	}
	return uc.Refresh(ctx)
}

// compute nunca entra en pánico: ante un registro que rompa la agregación devuelve
// el estado vacío con HasErrors.
func (uc *DashboardUseCase) compute(
	records []repository.AgreementRecord,
	yields []entity.YieldRecord,
	pending int,
	today time.Time,
) (out *dto.DashboardMetricsDTO) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().Interface("panic", r).Msg("agregación del tablero falló")
			empty := ComputeDashboard(DashboardInput{Today: today, ExpirationWindow: uc.window})
			empty.HasErrors = true
			empty.Warnings = append(empty.Warnings, domain.DataGap{Field: "convenios", Reason: fmt.Sprint("datos mal formados: ", r)})
			out = &empty
		}
	}()

	views, gaps := AdaptAll(records)
	m := ComputeDashboard(DashboardInput{
		Agreements:       views,
		Yields:           yields,
		PendingDocuments: pending,
		Today:            today,
		ExpirationWindow: uc.window,
	})
	m.Warnings = append(gaps, m.Warnings...)
	if len(gaps) > 0 {
		uc.log.Warn().Int("warnings", len(gaps)).Msg("registros de convenio incompletos")
	}
	return &m
}
