package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/kidtask-api/internal/config"
	"github.com/noah-isme/kidtask-api/internal/handler"
	"github.com/noah-isme/kidtask-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	BoardHandler            *handler.BoardHandler
	BoardActivityHandler    *handler.BoardActivityHandler
	ChildDashboardHandler   *handler.ChildDashboardHandler
	ParentDashboardHandler  *handler.ParentDashboardHandler
	TeacherDashboardHandler *handler.TeacherDashboardHandler
	RateLimiter             fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter)
	}

	if deps.BoardHandler != nil {
		deps.BoardHandler.Register(api)
	}

	if deps.BoardActivityHandler != nil {
		deps.BoardActivityHandler.Register(api)
	}

	if deps.ChildDashboardHandler != nil {
		deps.ChildDashboardHandler.Register(api.Group("/child"))
	}

	if deps.ParentDashboardHandler != nil {
		deps.ParentDashboardHandler.Register(api.Group("/parent"))
	}

	if deps.TeacherDashboardHandler != nil {
		deps.TeacherDashboardHandler.Register(api.Group("/teacher"))
	}
}
