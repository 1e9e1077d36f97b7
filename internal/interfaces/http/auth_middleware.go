package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-admin-api/internal/application/dto"
	"github.com/jhoicas/user-admin-api/internal/domain"
	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	"github.com/jhoicas/user-admin-api/pkg/jwt"
)

// Locals keys de la identidad autenticada en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// TokenVerifier contrato del verificador de tokens (lo implementa *jwt.Manager).
// Devuelve nil para cualquier token inválido.
type TokenVerifier interface {
	Verify(token string) *jwt.Claims
}

// Guard protege rutas: Authenticate exige un token válido y RequireRole un rol mínimo.
// Un cliente sin identidad válida recibe siempre 401, nunca 403.
type Guard struct {
	tokens     TokenVerifier
	cookieName string
	metrics    *Metrics
}

// NewGuard construye el guard. metrics puede ser nil.
func NewGuard(tokens TokenVerifier, cookieName string, metrics *Metrics) *Guard {
	if cookieName == "" {
		cookieName = "token"
	}
	return &Guard{tokens: tokens, cookieName: cookieName, metrics: metrics}
}

// Authenticate toma el token de "Authorization: Bearer <token>" y, si no hay, de la cookie de
// sesión. Sin token responde 401 "Unauthorized"; con token inválido o expirado 401
// "Invalid or expired token". Si es válido deja user_id, email y role en c.Locals.
func (g *Guard) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := g.extractToken(c)
		if token == "" {
			g.metrics.observeGuard(GuardMissingToken)
			return deny(c, domain.ErrUnauthenticated)
		}
		claims := g.tokens.Verify(token)
		if claims == nil {
			g.metrics.observeGuard(GuardInvalidToken)
			return deny(c, domain.ErrInvalidToken)
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole exige que el rol del token sea al menos min. Debe ir después de Authenticate;
// si no hay identidad en el contexto responde 401.
func (g *Guard) RequireRole(min entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			g.metrics.observeGuard(GuardMissingToken)
			return deny(c, domain.ErrUnauthenticated)
		}
		if !entity.Role(GetRole(c)).AtLeast(min) {
			g.metrics.observeGuard(GuardForbidden)
			return deny(c, domain.ErrForbidden)
		}
		g.metrics.observeGuard(GuardAllowed)
		return c.Next()
	}
}

// Protect encadena Authenticate y RequireRole(min) para registrar rutas en una sola línea.
func (g *Guard) Protect(min entity.Role) []fiber.Handler {
	return []fiber.Handler{g.Authenticate(), g.RequireRole(min)}
}

func (g *Guard) extractToken(c *fiber.Ctx) string {
	if h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok
			}
		}
	}
	return c.Cookies(g.cookieName)
}

func deny(c *fiber.Ctx, err *domain.Error) error {
	return c.Status(statusFor(err.Kind)).JSON(dto.Fail(err.Message, nil))
}

// GetUserID devuelve el UserID del contexto (después de Authenticate).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devuelve el rol del token ("USER" | "ADMIN").
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
