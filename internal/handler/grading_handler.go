package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/internal/utils"
)

// GradingHandler serves the verified grading endpoint.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler constructs the handler instance.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register wires the grading routes.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("", h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Grade(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to grade submission")
	}

	return utils.SendSuccess(c, "submission graded", response)
}
