package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/user-admin-api/internal/interfaces/http"
	"github.com/jhoicas/user-admin-api/pkg/logger"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthStatus(t *testing.T, db apphttp.Pinger) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/health", apphttp.NewHealthHandler(db, "test", logger.Nop()).Health)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body["status"]
}

func TestHealth(t *testing.T) {
	code, status := healthStatus(t, pingerFunc(func(context.Context) error { return nil }))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", status)

	code, status = healthStatus(t, pingerFunc(func(context.Context) error { return errors.New("down") }))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", status)

	code, status = healthStatus(t, nil)
	assert.Equal(t, http.StatusOK, code, "sin base de datos (memoria) siempre ok")
	assert.Equal(t, "ok", status)
}

func TestMetrics_Endpoint(t *testing.T) {
	metrics := apphttp.NewMetrics()
	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", metrics.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `http_requests_total{method="GET",route="/ping",status="200"} 1`)
}
