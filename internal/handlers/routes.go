package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(app *fiber.App, analyze *AnalyzeHandler, health *HealthHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", health.HandleHealth)
	api.Get("/ready", health.HandleReady)
	api.Post("/analyze", analyze.HandleAnalyze)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/health",
				"GET /api/v1/ready",
			},
		})
	})
}
