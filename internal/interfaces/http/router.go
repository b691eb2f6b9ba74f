package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/analytics"
	"github.com/jhoicas/Convenios-api/internal/application/auth"
	"github.com/jhoicas/Convenios-api/internal/application/usecase"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	AgreementUC    *agreement.AgreementUseCase
	YieldUC        *agreement.YieldUseCase
	DisbursementUC *agreement.DisbursementUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *analytics.ReportUseCase
	AlertUC        *analytics.AlertUseCase
	DocumentUC     *usecase.DocumentUseCase
	DepartmentUC   *usecase.DepartmentUseCase
	AuditUC        *usecase.AuditUseCase
	// Authenticator por defecto es AuthUC; se reemplaza en tests.
	Authenticator Authenticator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authn := deps.Authenticator
	if authn == nil {
		authn = deps.AuthUC
	}
	requireAuth := AuthMiddleware(authn)
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", requireAuth, authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token con sesión abierta)
	protected := api.Group("/", requireAuth)

	// Convenios
	agreementHandler := NewAgreementHandler(deps.AgreementUC)
	disbursementHandler := NewDisbursementHandler(deps.DisbursementUC)
	yieldHandler := NewYieldHandler(deps.YieldUC)

	agreements := protected.Group("/agreements")
	agreements.Get("/", agreementHandler.List)
	agreements.Post("/", canWrite, agreementHandler.Create)
	agreements.Get("/:id", agreementHandler.GetByID)
	agreements.Get("/:id/budget", agreementHandler.Budget)
	agreements.Get("/:id/documents", NewDocumentHandler(deps.DocumentUC).List)
	agreements.Get("/:id/disbursements", disbursementHandler.Track)
	agreements.Post("/:id/disbursements", canWrite, disbursementHandler.Create)
	agreements.Get("/:id/yields", yieldHandler.List)
	agreements.Post("/:id/yields", canWrite, yieldHandler.Record)

	// Giros
	disbursements := protected.Group("/disbursements")
	disbursements.Post("/:id/execute", canWrite, disbursementHandler.Execute)
	disbursements.Post("/:id/overdue", canWrite, disbursementHandler.MarkOverdue)

	// Calculadora de rendimientos (sin persistencia)
	protected.Post("/yields/simulate", yieldHandler.Simulate)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/dashboard/current", dashboardHandler.GetCurrent)

	// Alertas (estado de lectura por usuario)
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts := protected.Group("/alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Post("/read-all", alertHandler.MarkAllRead)
	alerts.Post("/:id/read", alertHandler.MarkRead)

	// Informes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports", reportHandler.Get)
	protected.Get("/reports/pdf", reportHandler.PDF)
	protected.Get("/reports/csv", reportHandler.CSV)

	// Catálogos y bitácora
	protected.Get("/departments", NewDepartmentHandler(deps.DepartmentUC).List)
	protected.Get("/audit-logs", adminOnly, NewAuditHandler(deps.AuditUC).List)
}
