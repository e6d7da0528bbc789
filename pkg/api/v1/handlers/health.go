package handlers

import (
	"context"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/devboard-esn/devboard/internal/logger"
)

// PingFunc checks that a backing dependency is reachable
type PingFunc func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	ping PingFunc
}

// NewHealthHandler creates a HealthHandler; ping may be nil when nothing needs checking
func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health reports that the process is up
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports whether the database answers
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.ping != nil {
		if err := h.ping(c.UserContext()); err != nil {
			logger.Warnf("readiness check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"error":  ErrMsgNotReady,
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
