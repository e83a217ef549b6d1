package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/internal/utils"
)

// SummaryHandler serves the content summarization endpoint.
type SummaryHandler struct {
	service service.SummaryService
	logger  zerolog.Logger
}

// NewSummaryHandler constructs the handler instance.
func NewSummaryHandler(service service.SummaryService, logger zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  logger.With().Str("component", "summary_handler").Logger(),
	}
}

// Register wires the summary routes.
func (h *SummaryHandler) Register(router fiber.Router) {
	router.Post("", h.summarize)
}

func (h *SummaryHandler) summarize(c *fiber.Ctx) error {
	var payload dto.SummaryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Summarize(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to summarize content")
	}

	return utils.SendSuccess(c, "content summarized", response)
}
