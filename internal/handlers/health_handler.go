package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Checker is a dependency readiness check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type HealthHandler struct {
	checkers []Checker
}

func NewHealthHandler(checkers ...Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleReady handles GET /ready
func (h *HealthHandler) HandleReady(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	for _, ch := range h.checkers {
		if err := ch.Check(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "not_ready",
				"component": ch.Name(),
				"details":   err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
