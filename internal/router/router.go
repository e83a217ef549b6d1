package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lumeo-edu/assess-go-api/internal/config"
	"github.com/lumeo-edu/assess-go-api/internal/handler"
	"github.com/lumeo-edu/assess-go-api/internal/middleware"
	"github.com/lumeo-edu/assess-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AnalysisHandler *handler.AnalysisHandler
	GradingHandler  *handler.GradingHandler
	RubricHandler   *handler.RubricHandler
	SummaryHandler  *handler.SummaryHandler
	RecordsHandler  *handler.RecordsHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Assessment runs call paid upstream APIs; keep the write endpoints on a
	// tighter budget than reads.
	assessLimit := middleware.RateLimit("assess", 30, time.Minute)

	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.Register(api.Group("/analysis", assessLimit))
	}
	if deps.GradingHandler != nil {
		deps.GradingHandler.Register(api.Group("/gradings", assessLimit))
	}
	if deps.RubricHandler != nil {
		deps.RubricHandler.Register(api.Group("/rubrics", assessLimit))
	}
	if deps.SummaryHandler != nil {
		deps.SummaryHandler.Register(api.Group("/summaries", assessLimit))
	}
	if deps.RecordsHandler != nil {
		deps.RecordsHandler.Register(api.Group("/records"))
	}
}
