package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/user-admin-api/docs"
	"github.com/jhoicas/user-admin-api/internal/application/auth"
	"github.com/jhoicas/user-admin-api/internal/application/usecase"
	"github.com/jhoicas/user-admin-api/internal/application/validation"
	"github.com/jhoicas/user-admin-api/internal/domain/repository"
	"github.com/jhoicas/user-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/user-admin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/user-admin-api/internal/interfaces/http"
	"github.com/jhoicas/user-admin-api/pkg/config"
	"github.com/jhoicas/user-admin-api/pkg/jwt"
	"github.com/jhoicas/user-admin-api/pkg/logger"
	"github.com/jhoicas/user-admin-api/pkg/password"
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
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		userRepo repository.UserRepository
		pinger   httpRouter.Pinger
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: los usuarios se pierden al reiniciar")
		userRepo = memory.NewUserRepository()
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.ApplyMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		pinger = pool
	}

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}
	validator := validation.New()

	authUC := auth.NewAuthUseCase(userRepo, hasher, tokens, validator)
	userUC := usecase.NewUserUseCase(userRepo, hasher, validator)
	metrics := httpRouter.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.JSON(),
		Path:        "docs",
		Title:       "User Admin API",
	}))

	app.Get("/health", httpRouter.NewHealthHandler(pinger, cfg.App.Name, log.Component("health")).Health)
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: authUC,
		UserUC: userUC,
		Guard:  httpRouter.NewGuard(tokens, cfg.Auth.CookieName, metrics),
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: tokens.TTL(),
		},
		Log: log,
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
