// Package agreement contiene los casos de uso de escritura y consulta de convenios:
// envío de borradores, rendimientos y giros.
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

// AgreementUseCase aplica reglas de negocio para convenios.
type AgreementUseCase struct {
	repo        repository.AgreementRepository
	departments repository.DepartmentRepository
	tx          TxRunner
	now         func() time.Time
	log         *logger.Logger
}

// NewAgreementUseCase construye el caso de uso con sus puertos de persistencia.
func NewAgreementUseCase(
	repo repository.AgreementRepository,
	departments repository.DepartmentRepository,
	tx TxRunner,
	log *logger.Logger,
) *AgreementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AgreementUseCase{repo: repo, departments: departments, tx: tx, now: time.Now, log: log.Component("agreements")}
}

// WithClock reemplaza el reloj (tests).
func (uc *AgreementUseCase) WithClock(now func() time.Time) *AgreementUseCase {
	uc.now = now
	return uc
}

// Submit valida el borrador, resuelve la dependencia, recalcula los totales desde el presupuesto
// y persiste convenio, líneas y bitácora en una sola transacción.
//
// Retorna:
//   - *domain.ValidationError (errors.Is ErrInvalidInput) si el borrador no pasa las reglas;
//     en ese caso no se hace ninguna llamada de persistencia.
//   - domain.ErrDuplicate si ya existe un convenio con ese número.
func (uc *AgreementUseCase) Submit(ctx context.Context, userID string, draft convenio.Draft) (*dto.SubmitAgreementResponse, error) {
	// ── 1. Reglas del formulario ─────────────────────────────────────────────
	a, err := convenio.ToAgreement(draft)
	if err != nil {
		return nil, err
	}

	// ── 2. Dependencia ────────────────────────────────────────────────────────
	dept, err := uc.resolveDepartment(ctx, draft.Department)
	if err != nil {
		return nil, err
	}
	a.DepartmentID = dept.ID
	a.DepartmentName = dept.Name

	// ── 3. Número único ───────────────────────────────────────────────────────
	existing, err := uc.repo.GetByNumber(ctx, a.Number)
	if err != nil {
		return nil, fmt.Errorf("convenio: buscar número: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el convenio %s ya existe", domain.ErrDuplicate, a.Number)
	}

	// ── 4. Persistir ──────────────────────────────────────────────────────────
	now := uc.now()
	a.ID = uuid.New().String()
	a.CreatedBy = userID
	a.CreatedAt = now
	a.UpdatedAt = now
	for i := range a.BudgetLines {
		a.BudgetLines[i].ID = uuid.New().String()
		a.BudgetLines[i].AgreementID = a.ID
	}

	err = uc.tx.RunAgreement(ctx, func(agreements repository.AgreementRepository, audit repository.AuditRepository) error {
		if err := agreements.Create(ctx, a); err != nil {
			return err
		}
		return audit.Create(ctx, newAuditLog(userID, entity.AuditAgreementCreated, "agreement", a.ID,
			fmt.Sprintf("convenio %s por %s", a.Number, money.FormatCOP(a.TotalValue)), now))
	})
	if err != nil {
		return nil, fmt.Errorf("convenio: guardar: %w", err)
	}

	uc.log.Info().Str("agreement_id", a.ID).Str("number", a.Number).Str("user_id", userID).Msg("convenio registrado")
	return &dto.SubmitAgreementResponse{
		Agreement: *ToAgreementResponse(a),
		Warnings:  finance.LineWarnings(a.BudgetLines),
	}, nil
}

// resolveDepartment acepta el ID o el nombre de la dependencia.
func (uc *AgreementUseCase) resolveDepartment(ctx context.Context, ref string) (*entity.Department, error) {
	ref = strings.TrimSpace(ref)
	var (
		dept *entity.Department
		err  error
	)
	if _, parseErr := uuid.Parse(ref); parseErr == nil {
		dept, err = uc.departments.GetByID(ctx, ref)
	} else {
		dept, err = uc.departments.GetByName(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("convenio: buscar dependencia: %w", err)
	}
	if dept == nil {
		return nil, domain.NewValidationError("dependencia", "la dependencia %q no existe", ref)
	}
	return dept, nil
}

// GetByID obtiene un convenio con su presupuesto. domain.ErrNotFound si no existe.
func (uc *AgreementUseCase) GetByID(ctx context.Context, id string) (*dto.AgreementResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAgreementResponse(a), nil
}

// List lista convenios con filtros y paginación.
func (uc *AgreementUseCase) List(ctx context.Context, req dto.AgreementListRequest) (*dto.AgreementListResponse, error) {
	req.DefaultPage()
	if req.Status != "" && !convenio.IsValidStatus(req.Status) {
		return nil, domain.NewValidationError("estado", "estado %q no reconocido", req.Status)
	}
	list, err := uc.repo.List(ctx, repository.AgreementFilter{
		Status:       req.Status,
		DepartmentID: req.DepartmentID,
		Search:       strings.TrimSpace(req.Search),
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AgreementResponse, 0, len(list))
	for _, a := range list {
		r := ToAgreementResponse(a)
		r.BudgetLines = nil
		items = append(items, *r)
	}
	return &dto.AgreementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset},
	}, nil
}

// Budget devuelve las líneas de presupuesto y la verificación de totales guardados contra recalculados.
func (uc *AgreementUseCase) Budget(ctx context.Context, id string) (*dto.BudgetResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	report := finance.CheckConsistency(a)
	if !report.Consistent {
		uc.log.Warn().Str("agreement_id", a.ID).Msg("totales guardados no coinciden con el presupuesto")
	}
	return &dto.BudgetResponse{AgreementID: a.ID, Lines: a.BudgetLines, Consistency: report}, nil
}

func (uc *AgreementUseCase) load(ctx context.Context, id string) (*entity.Agreement, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("convenio: obtener: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// ToAgreementResponse mapea la entidad a su DTO de salida.
func ToAgreementResponse(a *entity.Agreement) *dto.AgreementResponse {
	if a == nil {
		return nil
	}
	return &dto.AgreementResponse{
		ID:                 a.ID,
		Number:             a.Number,
		Validity:           a.Validity(),
		Supervisor:         a.Supervisor,
		DepartmentID:       a.DepartmentID,
		DepartmentName:     a.DepartmentName,
		Object:             a.Object,
		Status:             a.Status,
		StartDate:          formatDate(a.StartDate),
		EndDate:            formatDate(a.EndDate),
		CounterpartEntity:  a.CounterpartEntity,
		TotalValue:         a.TotalValue,
		CARContribution:    a.CARContribution,
		EntityContribution: a.EntityContribution,
		TotalValueLabel:    money.FormatCOP(a.TotalValue),
		BudgetLines:        a.BudgetLines,
		CreatedAt:          a.CreatedAt,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(convenio.DateLayout)
}

func newAuditLog(userID, action, entityType, entityID, detail string, at time.Time) *entity.AuditLog {
	return &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  at,
	}
}
