package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-admin-api/internal/application/auth"
	"github.com/jhoicas/user-admin-api/internal/application/usecase"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	"github.com/jhoicas/user-admin-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	UserUC *usecase.UserUseCase
	Guard  *Guard
	Cookie CookieConfig
	Log    *logger.Logger
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth: signup, login y logout son públicos; me requiere sesión.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, log.Component("auth"))
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", deps.Guard.Authenticate(), authHandler.Me)

	// Users: administración solo ADMIN, salvo la consulta por id.
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, log.Component("users"))
	admin := deps.Guard.Protect(entity.RoleAdmin)
	users.Get("/", append(admin, userHandler.List)...)
	users.Post("/", append(admin, userHandler.Create)...)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", append(admin, userHandler.Update)...)
	users.Delete("/:id", append(admin, userHandler.Delete)...)
}
