package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	appanalytics "github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/auth"
	"github.com/jhoicas/Convenios-api/internal/application/usecase"
	"github.com/jhoicas/Convenios-api/internal/infrastructure/csvexport"
	infrapdf "github.com/jhoicas/Convenios-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Convenios-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Convenios-api/internal/interfaces/http"
	"github.com/jhoicas/Convenios-api/pkg/config"
	"github.com/jhoicas/Convenios-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	agreementRepo := postgres.NewAgreementRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	disbursementRepo := postgres.NewDisbursementRepository(pool)
	yieldRepo := postgres.NewYieldRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rates := agreement.DeductionRates{
		Withholding: cfg.Finance.WithholdingRate,
		BankFee:     cfg.Finance.BankFeeRate,
	}

	agreementUC := agreement.NewAgreementUseCase(agreementRepo, departmentRepo, txRunner, log)
	yieldUC := agreement.NewYieldUseCase(agreementRepo, yieldRepo, txRunner, rates, log)
	disbursementUC := agreement.NewDisbursementUseCase(agreementRepo, disbursementRepo, txRunner, log)

	dashboardUC := appanalytics.NewDashboardUseCase(
		agreementRepo, yieldRepo, documentRepo, cfg.Finance.ExpirationWindowDays, log,
	)
	alertUC := appanalytics.NewAlertUseCase(
		agreementRepo, disbursementRepo, documentRepo, postgres.NewAlertReadRepository(pool),
		cfg.Finance.ExpirationWindowDays, log,
	)
	// Informe: PDF con maroto y CSV con gocsv
	reportUC := appanalytics.NewReportUseCase(
		agreementRepo, disbursementRepo, yieldRepo,
		infrapdf.NewMarotoReportGenerator(cfg.App.Institution),
		csvexport.NewReportCSVWriter(),
		log,
	)

	authUC := auth.NewAuthUseCase(userRepo, auditRepo, auth.NewMemorySessionStore(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Convenios API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		AgreementUC:    agreementUC,
		YieldUC:        yieldUC,
		DisbursementUC: disbursementUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		AlertUC:        alertUC,
		DocumentUC:     usecase.NewDocumentUseCase(documentRepo, agreementRepo),
		DepartmentUC:   usecase.NewDepartmentUseCase(departmentRepo),
		AuditUC:        usecase.NewAuditUseCase(auditRepo),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
