package agreement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/convenio"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	"github.com/jhoicas/Convenios-api/pkg/logger"
	"github.com/jhoicas/Convenios-api/pkg/money"
)

// DisbursementUseCase programa, ejecuta y consulta giros.
type DisbursementUseCase struct {
	agreements    repository.AgreementRepository
	disbursements repository.DisbursementRepository
	tx            TxRunner
	now           func() time.Time
	log           *logger.Logger
}

// NewDisbursementUseCase construye el caso de uso.
func NewDisbursementUseCase(
	agreements repository.AgreementRepository,
	disbursements repository.DisbursementRepository,
	tx TxRunner,
	log *logger.Logger,
) *DisbursementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DisbursementUseCase{
		agreements:    agreements,
		disbursements: disbursements,
		tx:            tx,
		now:           time.Now,
		log:           log.Component("disbursements"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DisbursementUseCase) WithClock(now func() time.Time) *DisbursementUseCase {
	uc.now = now
	return uc
}

// Add programa un giro nuevo. El consecutivo es la cantidad de giros del pagador + 1.
func (uc *DisbursementUseCase) Add(ctx context.Context, userID, agreementID string, req dto.CreateDisbursementRequest) (*entity.Disbursement, error) {
	payer := strings.ToUpper(strings.TrimSpace(req.Payer))
	if !entity.IsValidPayer(payer) {
		return nil, domain.NewValidationError("entidad", "pagador %q inválido, use CAR o ENTIDAD", req.Payer)
	}
	if !req.Amount.IsPositive() {
		return nil, domain.NewValidationError("monto", "el monto debe ser mayor que cero")
	}
	scheduled, err := parseRequiredDate("fechaProgramada", req.ScheduledDate)
	if err != nil {
		return nil, err
	}

	a, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("giro: obtener convenio: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.disbursements.ListByAgreement(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("giro: listar: %w", err)
	}

	d := &entity.Disbursement{
		ID:            uuid.New().String(),
		AgreementID:   agreementID,
		Sequence:      finance.NextSequence(existing, payer),
		Payer:         payer,
		Amount:        req.Amount,
		ScheduledDate: scheduled,
		Status:        entity.DisbursementScheduled,
	}
	now := uc.now()
	err = uc.tx.RunDisbursement(ctx, func(disbursements repository.DisbursementRepository, audit repository.AuditRepository) error {
		if err := disbursements.Create(ctx, d); err != nil {
			return err
		}
		return audit.Create(ctx, newAuditLog(userID, entity.AuditDisbursementAdded, "disbursement", d.ID,
			fmt.Sprintf("convenio %s giro %s #%d por %s", a.Number, payer, d.Sequence, money.FormatCOP(d.Amount)), now))
	})
	if err != nil {
		return nil, fmt.Errorf("giro: guardar: %w", err)
	}
	return d, nil
}

// Execute registra la fecha de ejecución. No se exige que sea posterior a la programada.
func (uc *DisbursementUseCase) Execute(ctx context.Context, userID, id string, req dto.ExecuteDisbursementRequest) (*entity.Disbursement, error) {
	executedAt, err := parseRequiredDate("fechaEjecutada", req.ExecutedDate)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, userID, id, func(d *entity.Disbursement) error {
		return finance.ExecuteDisbursement(d, executedAt)
	})
}

// MarkOverdue pasa a "pendiente" un giro vencido sin ejecución.
func (uc *DisbursementUseCase) MarkOverdue(ctx context.Context, userID, id string) (*entity.Disbursement, error) {
	today := uc.now()
	return uc.transition(ctx, userID, id, func(d *entity.Disbursement) error {
		return finance.MarkOverdue(d, today)
	})
}

func (uc *DisbursementUseCase) transition(ctx context.Context, userID, id string, apply func(*entity.Disbursement) error) (*entity.Disbursement, error) {
	d, err := uc.disbursements.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("giro: obtener: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	previous := d.Status
	if err := apply(d); err != nil {
		return nil, err
	}
	now := uc.now()
	err = uc.tx.RunDisbursement(ctx, func(disbursements repository.DisbursementRepository, audit repository.AuditRepository) error {
		if err := disbursements.UpdateStatus(ctx, d); err != nil {
			return err
		}
		return audit.Create(ctx, newAuditLog(userID, entity.AuditDisbursementUpdated, "disbursement", d.ID,
			fmt.Sprintf("giro %s #%d: %s → %s", d.Payer, d.Sequence, previous, d.Status), now))
	})
	if err != nil {
		return nil, fmt.Errorf("giro: actualizar: %w", err)
	}
	uc.log.Info().Str("disbursement_id", d.ID).Str("from", previous).Str("to", d.Status).Msg("giro actualizado")
	return d, nil
}

// Track giros del convenio separados por pagador, con totales por estado y colisiones de consecutivo.
func (uc *DisbursementUseCase) Track(ctx context.Context, agreementID string) (*dto.DisbursementTrackingResponse, error) {
	a, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("giro: obtener convenio: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.disbursements.ListByAgreement(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("giro: listar: %w", err)
	}
	collisions := finance.DuplicateSequences(list)
	if len(collisions) > 0 {
		uc.log.Warn().Str("agreement_id", agreementID).Int("collisions", len(collisions)).Msg("consecutivos de giro repetidos")
	}
	return &dto.DisbursementTrackingResponse{
		AgreementID: agreementID,
		Summary:     finance.TrackDisbursements(list),
		Collisions:  collisions,
	}, nil
}

func parseRequiredDate(field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, domain.NewValidationError(field, "la fecha es obligatoria")
	}
	t, err := time.Parse(convenio.DateLayout, v)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "fecha %q inválida, use AAAA-MM-DD", v)
	}
	return t, nil
}
