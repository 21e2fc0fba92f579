package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/api/http/handlers"
	"github.com/spec-kit/hr-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Export         *handlers.ExportHandler
	Config         *handlers.ConfigHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The intake submission and the client
// config endpoint are public; everything touching existing records
// requires an authenticated HR user.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/config", cfg.Config.Get)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/staff", cfg.Staff.Create)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/staff", cfg.Staff.List)
	protected.Put("/staff/:id", cfg.Staff.Update)
	protected.Post("/staff/:id/exit", cfg.Staff.Exit)
	protected.Delete("/staff/:id", cfg.Staff.Delete)
	protected.Get("/admin/export-excel", cfg.Export.Export)
}
