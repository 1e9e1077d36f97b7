package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/user-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/user-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/user-admin-api/pkg/jwt"
	"github.com/jhoicas/user-admin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests-32chars!"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "user-admin-api-test"
)

func newTokens(t *testing.T, opts ...pkgjwt.Option) *pkgjwt.Manager {
	t.Helper()
	m, err := pkgjwt.NewManager(testJWTSecret, testIssuer, pkgjwt.DefaultTTL, opts...)
	require.NoError(t, err)
	return m
}

// buildGuardApp construye una aplicación Fiber mínima con Authenticate + RequireRole(min) y un
// handler dummy que devuelve 200 si pasa los middlewares.
func buildGuardApp(t *testing.T, min entity.Role) (*fiber.App, *apphttp.Metrics) {
	t.Helper()
	metrics := apphttp.NewMetrics()
	guard := apphttp.NewGuard(newTokens(t), "token", metrics)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected", append(guard.Protect(min), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":      true,
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
			"role":    apphttp.GetRole(c),
		})
	})...)
	return app, metrics
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := newTokens(t).Issue(pkgjwt.Identity{UserID: testUserID, Email: "a@x.com", Role: role})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doGuardRequest lanza GET /protected con la cabecera y/o cookie indicadas.
func doGuardRequest(t *testing.T, app *fiber.App, authHeader, cookie string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_AdminAccedeRutaAdmin(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleAdmin)
	resp, body := doGuardRequest(t, app, "Bearer "+tokenForRole(t, "ADMIN"), "")

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder acceder a ruta restringida a admin")
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestGuard_AdminCumpleRolUser(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleUser)
	resp, _ := doGuardRequest(t, app, "Bearer "+tokenForRole(t, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "ADMIN está por encima de USER")
}

func TestGuard_UserBloqueadoEnRutaAdmin(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleAdmin)
	resp, body := doGuardRequest(t, app, "Bearer "+tokenForRole(t, "USER"), "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Forbidden - Admin access required", body["error"])
}

func TestGuard_RolDesconocidoBloqueado(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleUser)
	resp, _ := doGuardRequest(t, app, "Bearer "+tokenForRole(t, "ROOT"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGuard_SinToken_Retorna401(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleAdmin)
	resp, body := doGuardRequest(t, app, "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestGuard_TokenInvalido_Retorna401AntesQue403(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleAdmin)

	resp, body := doGuardRequest(t, app, "Bearer token.invalido.aqui", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["error"])

	// Token firmado con otro secreto y rol USER: sigue siendo 401, nunca 403.
	other, err := pkgjwt.NewManager("otro-secret-completamente-distinto-32chars", testIssuer, 0)
	require.NoError(t, err)
	forged, err := other.Issue(pkgjwt.Identity{UserID: testUserID, Email: "a@x.com", Role: "USER"})
	require.NoError(t, err)
	resp, _ = doGuardRequest(t, app, "Bearer "+forged, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuard_TokenExpirado_Retorna401(t *testing.T) {
	past := time.Now().Add(-8 * 24 * time.Hour)
	expired, err := newTokens(t, pkgjwt.WithClock(func() time.Time { return past })).
		Issue(pkgjwt.Identity{UserID: testUserID, Email: "a@x.com", Role: "ADMIN"})
	require.NoError(t, err)

	app, _ := buildGuardApp(t, entity.RoleAdmin)
	resp, body := doGuardRequest(t, app, "Bearer "+expired, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["error"])
}

func TestGuard_CookieComoAlternativa(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleAdmin)
	resp, body := doGuardRequest(t, app, "", tokenForRole(t, "ADMIN"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ADMIN", body["role"])
}

func TestGuard_BearerTienePrioridadSobreCookie(t *testing.T) {
	app, _ := buildGuardApp(t, entity.RoleAdmin)

	// Bearer USER + cookie ADMIN: manda la cabecera.
	resp, _ := doGuardRequest(t, app, "Bearer "+tokenForRole(t, "USER"), tokenForRole(t, "ADMIN"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Cabecera con otro esquema: se ignora y se usa la cookie.
	resp, _ = doGuardRequest(t, app, "Basic dXNlcjpwYXNz", tokenForRole(t, "ADMIN"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuard_RequireRoleSinAuthenticate_Retorna401(t *testing.T) {
	guard := apphttp.NewGuard(newTokens(t), "token", nil)
	app := fiber.New()
	app.Get("/protected", guard.RequireRole(entity.RoleUser), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuard_Metricas(t *testing.T) {
	app, metrics := buildGuardApp(t, entity.RoleAdmin)
	doGuardRequest(t, app, "", "")
	doGuardRequest(t, app, "Bearer x.y.z", "")
	doGuardRequest(t, app, "Bearer "+tokenForRole(t, "USER"), "")
	doGuardRequest(t, app, "Bearer "+tokenForRole(t, "ADMIN"), "")

	// Una serie por resultado: missing_token, invalid_token, forbidden, allowed.
	n, err := testutil.GatherAndCount(metrics.Registry(), "auth_guard_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
