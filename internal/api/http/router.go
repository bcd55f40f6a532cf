package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/ticket-triage/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Process *handlers.ProcessHandler
	Runs    *handlers.RunsHandler
	// Metrics serves the Prometheus exposition; nil disables /metrics.
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", handlers.Dashboard)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	api := app.Group("/api")
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/export.xlsx", cfg.Tickets.ExportXLSX)
	api.Get("/summary", cfg.Tickets.Summary)
	api.Post("/process", cfg.Process.Process)
	api.Get("/runs", cfg.Runs.ListRuns)
}
