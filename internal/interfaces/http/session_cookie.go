package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieConfig parámetros de la cookie de sesión.
type CookieConfig struct {
	Name   string        // "token"
	Secure bool          // true en producción
	MaxAge time.Duration // vigencia del token
}

func (cc CookieConfig) name() string {
	if cc.Name == "" {
		return "token"
	}
	return cc.Name
}

// setSessionCookie guarda el token en una cookie HTTP-only, SameSite=Lax.
func setSessionCookie(c *fiber.Ctx, cc CookieConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.name(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.MaxAge.Seconds()),
		Expires:  time.Now().Add(cc.MaxAge),
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie expira la cookie en el cliente. El token en sí sigue siendo válido hasta su
// expiración natural si fue capturado en otro lugar.
func clearSessionCookie(c *fiber.Ctx, cc CookieConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
