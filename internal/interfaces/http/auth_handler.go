package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-admin-api/internal/application/auth"
	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/pkg/logger"
)

// AuthHandler maneja registro, login, logout y sesión actual.
type AuthHandler struct {
	responder
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{responder: responder{log: log}, uc: uc, cookie: cookie}
}

// Signup godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "email, password, name"
// @Success      201   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	setSessionCookie(c, h.cookie, out.Token)
	return h.ok(c, fiber.StatusCreated, out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	setSessionCookie(c, h.cookie, out.Token)
	return h.ok(c, fiber.StatusOK, out)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.MessageResponse}
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c, h.cookie)
	return h.ok(c, fiber.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Usuario de la sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.UserEnvelope}
// @Failure      401  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, dto.UserEnvelope{User: *user})
}
