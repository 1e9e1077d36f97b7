package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados del guard de acceso registrados en auth_guard_decisions_total.
const (
	GuardAllowed      = "allowed"
	GuardMissingToken = "missing_token"
	GuardInvalidToken = "invalid_token"
	GuardForbidden    = "forbidden"
)

// Metrics métricas Prometheus de la API. Usa un registry propio para que cada instancia
// (tests incluidos) pueda registrarse sin colisiones.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	guard    *prometheus.CounterVec
}

// NewMetrics registra los colectores de la API y los del runtime de Go.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		guard: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_guard_decisions_total",
			Help: "Decisiones del guard de acceso por resultado.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.requests, m.latency, m.guard,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry expone el registry (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware cuenta peticiones y latencia usando la ruta registrada, no la URL, para acotar
// la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler endpoint /metrics en formato de exposición de Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) observeGuard(outcome string) {
	if m == nil {
		return
	}
	m.guard.WithLabelValues(outcome).Inc()
}
