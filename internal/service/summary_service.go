package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/models"
	"github.com/lumeo-edu/assess-go-api/internal/repository"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
)

// SummaryService produces bullet-point summaries of educational content.
type SummaryService interface {
	Summarize(ctx context.Context, payload dto.SummaryRequest) (dto.SummaryResponse, error)
}

type summaryService struct {
	assessor  ai.Assessor
	records   repository.AssessmentRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewSummaryService constructs the summary service.
func NewSummaryService(assessor ai.Assessor, records repository.AssessmentRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) SummaryService {
	return &summaryService{
		assessor:  assessor,
		records:   records,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "summary_service").Logger(),
		tracer:    otel.Tracer("github.com/lumeo-edu/assess-go-api/internal/service/summary"),
	}
}

func (s *summaryService) Summarize(parent context.Context, payload dto.SummaryRequest) (dto.SummaryResponse, error) {
	ctx, span := s.tracer.Start(parent, "summary.summarize")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SummaryResponse{}, err
	}
	if s.assessor == nil {
		return dto.SummaryResponse{}, ErrAssessorUnavailable
	}

	input := ai.SummaryInput{
		Text:  s.sanitizer.Sanitize(payload.Text),
		Focus: s.sanitizer.Sanitize(payload.Focus),
	}

	start := time.Now()
	summary, err := s.assessor.Summarize(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "summarization_failed")
		return dto.SummaryResponse{}, err
	}

	referenceID := uuid.NewString()
	s.recordRun(ctx, referenceID, len(summary.Points), summary.Usage, time.Since(start))
	if s.events != nil {
		s.events.Publish(ctx, "summary.completed", map[string]interface{}{
			"reference_id": referenceID,
			"points":       len(summary.Points),
		})
	}

	return dto.SummaryResponse{
		ReferenceID: referenceID,
		Points:      summary.Points,
		Usage:       dto.NewUsageResponse(summary.Usage),
	}, nil
}

func (s *summaryService) recordRun(ctx context.Context, referenceID string, points int, usage ai.Usage, duration time.Duration) {
	if s.records == nil {
		return
	}

	record := models.AssessmentRecord{
		ReferenceID:      referenceID,
		Kind:             models.AssessmentKindSummary,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		DurationMs:       duration.Milliseconds(),
		Detail: datatypes.JSONMap{
			"points": points,
		},
	}
	if err := s.records.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("reference_id", referenceID).Msg("failed to persist summary record")
	}
}
