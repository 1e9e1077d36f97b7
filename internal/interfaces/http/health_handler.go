package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-admin-api/pkg/logger"
)

// Pinger comprueba la conexión con la base de datos (lo implementa *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde el estado del servicio.
type HealthHandler struct {
	db      Pinger
	service string
	log     *logger.Logger
}

// NewHealthHandler construye el handler. db nil significa almacenamiento en memoria (siempre ok).
func NewHealthHandler(db Pinger, service string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, service: service, log: log}
}

// Health godoc
// @Summary      Estado del servicio y de la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Msg("health: base de datos no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": h.service})
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}
