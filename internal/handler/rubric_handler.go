package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/internal/utils"
)

// RubricHandler serves the rubric generation endpoint.
type RubricHandler struct {
	service service.RubricService
	logger  zerolog.Logger
}

// NewRubricHandler constructs the handler instance.
func NewRubricHandler(service service.RubricService, logger zerolog.Logger) *RubricHandler {
	return &RubricHandler{
		service: service,
		logger:  logger.With().Str("component", "rubric_handler").Logger(),
	}
}

// Register wires the rubric routes.
func (h *RubricHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
}

func (h *RubricHandler) generate(c *fiber.Ctx) error {
	var payload dto.RubricGenerateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Generate(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to generate rubric")
	}

	return utils.SendSuccess(c, "rubric generated", response)
}
