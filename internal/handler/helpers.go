package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumeo-edu/assess-go-api/internal/middleware"
	"github.com/lumeo-edu/assess-go-api/internal/rubric"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/internal/utils"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
	"github.com/lumeo-edu/assess-go-api/pkg/detect"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, field := range validationErrors {
		details[field.Field()] = field.Tag()
	}
	return details
}

// sendServiceError maps service-layer failures onto HTTP statuses: caller
// mistakes are 4xx, assistant and detector failures are 502, missing clients
// are 503.
func sendServiceError(c *fiber.Ctx, logger *zerolog.Logger, err error, fallback string) error {
	if details := validationDetails(err); details != nil {
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "invalid payload", details)
	}

	switch {
	case errors.Is(err, service.ErrNoText):
		return utils.SendError(c, fiber.StatusBadRequest, "no text provided")
	case errors.Is(err, rubric.ErrInvalidBudget), errors.Is(err, rubric.ErrNoCriteria):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClassifierUnavailable), errors.Is(err, service.ErrAssessorUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "assessment backend unavailable")
	case errors.Is(err, service.ErrRubricMismatch),
		errors.Is(err, service.ErrIncompleteAssessment),
		errors.Is(err, service.ErrEmptyDraft),
		errors.Is(err, ai.ErrNoJSON),
		errors.Is(err, ai.ErrUpstream),
		errors.Is(err, detect.ErrUpstream):
		logger.Warn().Err(err).Msg("upstream assessment failed")
		return utils.SendError(c, fiber.StatusBadGateway, "upstream assessment failed")
	default:
		logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
