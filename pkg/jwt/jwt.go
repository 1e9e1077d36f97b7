package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL vigencia de un token de sesión (7 días).
const DefaultTTL = 7 * 24 * time.Hour

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"` // "USER" | "ADMIN"
}

// Identity son los datos de sesión que viajan en el token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Manager firma y verifica tokens HS256 con un secreto simétrico que solo conoce el servidor.
// Es inmutable y seguro para uso concurrente.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option ajusta un Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests de expiración).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager construye el servicio de tokens. ttl <= 0 usa DefaultTTL.
func NewManager(secret, issuer string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL devuelve la vigencia de los tokens emitidos.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue genera un token JWT firmado con userID, email y role que expira en TTL.
func (m *Manager) Issue(id Identity) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma y expiración y devuelve los claims. Cualquier fallo (vacío, mal formado,
// firma incorrecta, expirado, emisor distinto) devuelve nil sin distinguir la causa.
func (m *Manager) Verify(tokenString string) *Claims {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(m.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, parserOpts...)
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil
	}
	return claims
}

// Identity devuelve los datos de sesión contenidos en los claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}
