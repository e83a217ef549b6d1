package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/internal/utils"
)

// AnalysisHandler serves the authenticity analysis endpoints.
type AnalysisHandler struct {
	service service.AnalysisService
	logger  zerolog.Logger
}

// NewAnalysisHandler constructs the handler instance.
func NewAnalysisHandler(service service.AnalysisService, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger.With().Str("component", "analysis_handler").Logger(),
	}
}

// Register wires the analysis routes.
func (h *AnalysisHandler) Register(router fiber.Router) {
	router.Get("/models", h.models)
	router.Post("", h.analyze)
}

func (h *AnalysisHandler) analyze(c *fiber.Ctx) error {
	var payload dto.AnalysisRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Analyze(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to analyze document")
	}

	if response.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.SendSuccess(c, "analysis completed", response)
}

func (h *AnalysisHandler) models(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "detector models retrieved", h.service.Models())
}
