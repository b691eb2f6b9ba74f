// import_convenios carga convenios desde el archivo plano de la hoja de cálculo (';', Latin-1,
// una fila por línea de presupuesto) usando las mismas reglas que el formulario.
//
// Uso:
//
//	go run ./cmd/import_convenios --file convenios.csv [--dry-run] [--admin-email a@car.gov.co --admin-password ...]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Convenios-api/internal/application/agreement"
	"github.com/jhoicas/Convenios-api/internal/application/auth"
	"github.com/jhoicas/Convenios-api/internal/application/dto"
	"github.com/jhoicas/Convenios-api/internal/application/usecase"
	"github.com/jhoicas/Convenios-api/internal/domain"
	"github.com/jhoicas/Convenios-api/internal/domain/convenio"
	"github.com/jhoicas/Convenios-api/internal/domain/entity"
	"github.com/jhoicas/Convenios-api/internal/domain/repository"
	"github.com/jhoicas/Convenios-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/Convenios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Convenios-api/pkg/config"
	"github.com/jhoicas/Convenios-api/pkg/logger"
)

type importFlags struct {
	File          string
	UTF8          bool
	DryRun        bool
	Migrate       bool
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

var flags importFlags

var rootCmd = &cobra.Command{
	Use:   "import_convenios",
	Short: "Importa convenios desde un CSV separado por ';'",
	Long: `Lee el archivo de convenios (una fila por línea de presupuesto), agrupa por número
de convenio, crea las dependencias que falten y registra cada convenio con su bitácora.
Los convenios ya existentes se omiten.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), flags)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flags.File, "file", "f", "", "archivo CSV de convenios")
	rootCmd.Flags().BoolVar(&flags.UTF8, "utf8", false, "el archivo ya está en UTF-8")
	rootCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "solo valida, no escribe en la base de datos")
	rootCmd.Flags().BoolVar(&flags.Migrate, "migrate", false, "aplica las migraciones antes de importar")
	rootCmd.Flags().StringVar(&flags.AdminEmail, "admin-email", "", "crea (si no existe) un administrador y registra la importación a su nombre")
	rootCmd.Flags().StringVar(&flags.AdminPassword, "admin-password", "", "contraseña del administrador")
	rootCmd.Flags().StringVar(&flags.AdminName, "admin-name", "Administrador", "nombre del administrador")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f importFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import").With("file", f.File)

	in, err := os.Open(f.File)
	if err != nil {
		return fmt.Errorf("abrir archivo: %w", err)
	}
	defer in.Close()

	rows, err := csvimport.ReadRows(in, csvimport.Options{UTF8: f.UTF8})
	if err != nil {
		return err
	}
	drafts, rowErrs := csvimport.GroupDrafts(rows)
	for _, e := range rowErrs {
		log.Warn().Err(e).Msg("fila inválida, su convenio no se importa")
	}
	log.Info().Int("rows", len(rows)).Int("agreements", len(drafts)).Msg("archivo leído")

	if f.DryRun {
		invalid := 0
		for _, d := range drafts {
			if err := convenio.Validate(d); err != nil {
				invalid++
				log.Warn().Str("number", d.Number).Err(err).Msg("convenio inválido")
			}
		}
		log.Info().Int("valid", len(drafts)-invalid).Int("invalid", invalid).Msg("validación terminada")
		return nil
	}

	if f.Migrate || cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	departments := usecase.NewDepartmentUseCase(postgres.NewDepartmentRepository(pool))
	agreements := agreement.NewAgreementUseCase(
		postgres.NewAgreementRepository(pool), postgres.NewDepartmentRepository(pool), postgres.NewTxRunner(pool), log,
	)

	userID := ""
	if f.AdminEmail != "" {
		authUC := auth.NewAuthUseCase(userRepo, auditRepo, auth.NewMemorySessionStore(), auth.JWTConfig{
			Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
		}, log)
		userID, err = ensureAdmin(ctx, authUC, userRepo, f)
		if err != nil {
			return err
		}
	}

	var created, skipped, failed int
	for _, d := range drafts {
		if _, err := departments.Ensure(ctx, d.Department); err != nil && !errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("dependencia %q: %w", d.Department, err)
		}
		_, err := agreements.Submit(ctx, userID, d)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Info().Str("number", d.Number).Msg("convenio ya existe, se omite")
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
			failed++
			log.Warn().Str("number", d.Number).Err(err).Msg("convenio rechazado")
		default:
			return fmt.Errorf("convenio %s: %w", d.Number, err)
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Int("failed", failed+len(rowErrs)).Msg("importación terminada")
	return nil
}

// ensureAdmin reutiliza el usuario con ese email o registra un administrador nuevo.
func ensureAdmin(ctx context.Context, authUC *auth.AuthUseCase, users repository.UserRepository, f importFlags) (string, error) {
	existing, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(f.AdminEmail)))
	if err != nil {
		return "", fmt.Errorf("buscar administrador: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}
	u, err := authUC.RegisterUser(ctx, dto.CreateUserRequest{
		Email:    f.AdminEmail,
		Password: f.AdminPassword,
		Name:     f.AdminName,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("crear administrador: %w", err)
	}
	return u.ID, nil
}
