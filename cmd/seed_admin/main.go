// seed_admin crea el usuario administrador inicial o promueve uno existente a ADMIN.
//
// Uso: go run ./cmd/seed_admin [--email admin@example.com] [--password admin123] [--name "Admin User"]
// Los valores por defecto salen de ADMIN_EMAIL, ADMIN_PASSWORD y ADMIN_NAME.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/application/usecase"
	"github.com/jhoicas/user-admin-api/internal/application/validation"
	"github.com/jhoicas/user-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/user-admin-api/pkg/config"
	"github.com/jhoicas/user-admin-api/pkg/logger"
	"github.com/jhoicas/user-admin-api/pkg/password"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		email, pass, name string
		migrate           bool
	)
	cmd := &cobra.Command{
		Use:           "seed_admin",
		Short:         "Crea o promueve el usuario administrador",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("seed_admin requiere DB_DRIVER=%s", config.DriverPostgres)
			}
			if !cmd.Flags().Changed("email") {
				email = cfg.Admin.Email
			}
			if !cmd.Flags().Changed("password") {
				pass = cfg.Admin.Password
			}
			if !cmd.Flags().Changed("name") {
				name = cfg.Admin.Name
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return run(cmd.Context(), cfg, log, migrate, dto.SeedAdminRequest{Email: email, Password: pass, Name: name})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador (ADMIN_EMAIL)")
	cmd.Flags().StringVar(&pass, "password", "", "password del administrador (ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&name, "name", "", "nombre para un administrador nuevo (ADMIN_NAME)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "aplicar migraciones antes de sembrar")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool, in dto.SeedAdminRequest) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if migrate {
		if err := postgres.ApplyMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	seed := usecase.NewSeedAdminUseCase(
		postgres.NewTxRunner(pool),
		password.NewHasher(cfg.Auth.BcryptCost),
		validation.New(),
	)
	user, created, err := seed.Run(ctx, in)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	action := "promovido a ADMIN"
	if created {
		action = "creado"
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("administrador " + action)
	if in.Password == "admin123" {
		log.Warn().Msg("se usó el password por defecto: cámbielo antes de exponer el servicio")
	}
	return nil
}
