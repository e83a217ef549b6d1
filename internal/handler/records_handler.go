package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/repository"
	"github.com/lumeo-edu/assess-go-api/internal/utils"
)

// RecordsHandler serves the assessment audit record endpoints.
type RecordsHandler struct {
	records   repository.AssessmentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRecordsHandler constructs the handler instance.
func NewRecordsHandler(records repository.AssessmentRepository, validate *validator.Validate, logger zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{
		records:   records,
		validator: validate,
		logger:    logger.With().Str("component", "records_handler").Logger(),
	}
}

// Register wires the audit record routes.
func (h *RecordsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:referenceId", h.get)
}

func (h *RecordsHandler) list(c *fiber.Ctx) error {
	var filter dto.RecordFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := h.validator.Struct(filter); err != nil {
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "invalid query", validationDetails(err))
	}

	records, total, err := h.records.List(c.Context(), repository.AssessmentFilter{
		Kind:     filter.Kind,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list assessment records")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list assessment records")
	}

	response := dto.RecordListResponse{
		Records: make([]dto.RecordResponse, len(records)),
		Total:   total,
	}
	for i, record := range records {
		response.Records[i] = dto.NewRecordResponse(record)
	}

	return utils.SendSuccess(c, "assessment records retrieved", response)
}

func (h *RecordsHandler) get(c *fiber.Ctx) error {
	referenceID := c.Params("referenceId")
	if referenceID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "missing reference id")
	}

	record, err := h.records.GetByReference(c.Context(), referenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assessment record not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch assessment record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch assessment record")
	}

	return utils.SendSuccess(c, "assessment record retrieved", dto.NewRecordResponse(record))
}
