package agreement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/finance"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	"github.com/jhoicas/Convenios-api/pkg/logger"
	"github.com/jhoicas/Convenios-api/pkg/money"
)

// DeductionRates tasas de deducción configuradas, en porcentaje.
type DeductionRates struct {
	Withholding decimal.Decimal
	BankFee     decimal.Decimal
}

// DefaultDeductionRates retención 2,5 % y gastos bancarios 0,5 %.
func DefaultDeductionRates() DeductionRates {
	return DeductionRates{Withholding: finance.DefaultWithholdingRate, BankFee: finance.DefaultBankFeeRate}
}

// YieldUseCase liquida y registra rendimientos mensuales de convenios.
type YieldUseCase struct {
	agreements repository.AgreementRepository
	yields     repository.YieldRepository
	tx         TxRunner
	rates      DeductionRates
	now        func() time.Time
	log        *logger.Logger
}

// NewYieldUseCase construye el caso de uso.
func NewYieldUseCase(
	agreements repository.AgreementRepository,
	yields repository.YieldRepository,
	tx TxRunner,
	rates DeductionRates,
	log *logger.Logger,
) *YieldUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &YieldUseCase{
		agreements: agreements,
		yields:     yields,
		tx:         tx,
		rates:      rates,
		now:        time.Now,
		log:        log.Component("yields"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *YieldUseCase) WithClock(now func() time.Time) *YieldUseCase {
	uc.now = now
	return uc
}

// Simulate calcula sin persistir. Sin retención o gastos en la petición se usan los configurados.
func (uc *YieldUseCase) Simulate(req dto.SimulateYieldRequest) (*dto.YieldResultResponse, error) {
	in := finance.YieldInput{
		BaseValue:              req.BaseValue,
		AnnualRatePercent:      req.AnnualRatePercent,
		PeriodDays:             req.PeriodDays,
		WithholdingRatePercent: uc.rates.Withholding,
		BankFeeRatePercent:     uc.rates.BankFee,
	}
	if in.PeriodDays == 0 {
		in.PeriodDays = finance.DefaultPeriodDays
	}
	if req.WithholdingRatePercent != nil {
		in.WithholdingRatePercent = *req.WithholdingRatePercent
	}
	if req.BankFeeRatePercent != nil {
		in.BankFeeRatePercent = *req.BankFeeRatePercent
	}
	res, err := finance.CalculateYield(in)
	if err != nil {
		return nil, err
	}
	return toYieldResultResponse(res), nil
}

// Record liquida el rendimiento del período para el convenio y lo guarda con su bitácora.
// Sin valor base explícito se toma el aporte CAR del convenio.
//
// Retorna:
//   - domain.ErrNotFound     si el convenio no existe.
//   - domain.ErrDuplicate    si ya hay un rendimiento para (convenio, período).
//   - *domain.ValidationError / *domain.InvalidRateError ante parámetros inválidos.
func (uc *YieldUseCase) Record(ctx context.Context, userID, agreementID string, req dto.RecordYieldRequest) (*entity.YieldRecord, error) {
	period := strings.TrimSpace(req.Period)
	if _, err := time.Parse(entity.PeriodLayout, period); err != nil {
		return nil, domain.NewValidationError("periodo", "período %q inválido, use AAAA-MM", period)
	}

	a, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("rendimiento: obtener convenio: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}

	exists, err := uc.yields.ExistsForPeriod(ctx, agreementID, period)
	if err != nil {
		return nil, fmt.Errorf("rendimiento: verificar período: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe un rendimiento para %s en %s", domain.ErrDuplicate, a.Number, period)
	}

	base := a.CARContribution
	if req.BaseValue != nil {
		base = *req.BaseValue
	}
	res, err := finance.CalculateYield(finance.YieldInput{
		BaseValue:              base,
		AnnualRatePercent:      req.AnnualRatePercent,
		PeriodDays:             finance.DefaultPeriodDays,
		WithholdingRatePercent: uc.rates.Withholding,
		BankFeeRatePercent:     uc.rates.BankFee,
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	y := &entity.YieldRecord{
		ID:           uuid.New().String(),
		AgreementID:  agreementID,
		Period:       period,
		InterestRate: finance.RatePercentToFraction(req.AnnualRatePercent),
		BaseValue:    base,
		GrossYield:   res.GrossYield,
		Deductions:   res.Deductions,
		NetYield:     res.NetYield,
		CalculatedAt: now,
	}
	err = uc.tx.RunYield(ctx, func(yields repository.YieldRepository, audit repository.AuditRepository) error {
		if err := yields.Create(ctx, y); err != nil {
			return err
		}
		return audit.Create(ctx, newAuditLog(userID, entity.AuditYieldCalculated, "yield", y.ID,
			fmt.Sprintf("convenio %s período %s neto %s", a.Number, period, money.FormatCOP(y.NetYield)), now))
	})
	if err != nil {
		return nil, fmt.Errorf("rendimiento: guardar: %w", err)
	}
	uc.log.Info().Str("agreement_id", agreementID).Str("period", period).Str("net", y.NetYield.String()).Msg("rendimiento registrado")
	return y, nil
}

// List historial de rendimientos del convenio con el neto acumulado.
func (uc *YieldUseCase) List(ctx context.Context, agreementID string) (*dto.YieldListResponse, error) {
	a, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("rendimiento: obtener convenio: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.yields.ListByAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	items := make([]dto.YieldItemDTO, 0, len(list))
	for _, y := range list {
		total = total.Add(y.NetYield)
		rate := finance.RateFractionToPercent(y.InterestRate)
		items = append(items, dto.YieldItemDTO{
			YieldRecord:       y,
			AnnualRatePercent: rate,
			AnnualRateLabel:   money.FormatPercent(rate),
		})
	}
	return &dto.YieldListResponse{AgreementID: agreementID, Items: items, TotalNet: total}, nil
}

func toYieldResultResponse(r finance.YieldResult) *dto.YieldResultResponse {
	return &dto.YieldResultResponse{
		GrossYield:      r.GrossYield,
		Deductions:      r.Deductions,
		NetYield:        r.NetYield,
		GrossYieldLabel: money.FormatCOP(r.GrossYield),
		DeductionsLabel: money.FormatCOP(r.Deductions),
		NetYieldLabel:   money.FormatCOP(r.NetYield),
	}
}
