package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/models"
	"github.com/lumeo-edu/assess-go-api/internal/repository"
	"github.com/lumeo-edu/assess-go-api/internal/rubric"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
)

// ErrEmptyDraft indicates the assistant proposed no criteria at all.
var ErrEmptyDraft = errors.New("assistant proposed no rubric criteria")

// RubricService drafts qualitative criteria through the assistant and
// synthesizes the numeric rubric deterministically.
type RubricService interface {
	Generate(ctx context.Context, payload dto.RubricGenerateRequest) (dto.RubricResponse, error)
}

type rubricService struct {
	assessor  ai.Assessor
	records   repository.AssessmentRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewRubricService constructs the rubric service.
func NewRubricService(assessor ai.Assessor, records repository.AssessmentRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) RubricService {
	return &rubricService{
		assessor:  assessor,
		records:   records,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "rubric_service").Logger(),
		tracer:    otel.Tracer("github.com/lumeo-edu/assess-go-api/internal/service/rubric"),
	}
}

func (s *rubricService) Generate(parent context.Context, payload dto.RubricGenerateRequest) (dto.RubricResponse, error) {
	ctx, span := s.tracer.Start(parent, "rubric.generate")
	span.SetAttributes(attribute.Int("rubric.max_points", payload.MaxPoints))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.RubricResponse{}, err
	}
	if s.assessor == nil {
		return dto.RubricResponse{}, ErrAssessorUnavailable
	}

	input := ai.RubricDraftInput{
		Title:       s.sanitizer.Sanitize(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		MaxPoints:   payload.MaxPoints,
	}

	start := time.Now()
	draft, err := s.assessor.DraftRubric(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "draft_failed")
		return dto.RubricResponse{}, err
	}
	if len(draft.Criteria) == 0 {
		span.SetStatus(codes.Error, "empty_draft")
		return dto.RubricResponse{}, ErrEmptyDraft
	}

	raw := make([]rubric.RawCriterion, len(draft.Criteria))
	for i, criterion := range draft.Criteria {
		raw[i] = rubric.RawCriterion{
			Criterion:   criterion.Criterion,
			Importance:  criterion.Importance,
			Description: criterion.Description,
		}
	}

	// Point allocation is never delegated to the assistant; the importance
	// ratings are turned into points here so the budget sums exactly.
	criteria, err := rubric.Synthesize(raw, payload.MaxPoints)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "synthesis_failed")
		return dto.RubricResponse{}, err
	}

	referenceID := uuid.NewString()
	s.recordRun(ctx, referenceID, payload, len(criteria), draft.Usage, time.Since(start))
	if s.events != nil {
		s.events.Publish(ctx, "rubric.generated", map[string]interface{}{
			"reference_id": referenceID,
			"criteria":     len(criteria),
			"total_points": payload.MaxPoints,
		})
	}

	return dto.RubricResponse{
		ReferenceID: referenceID,
		Criteria:    dto.NewRubricCriterionResponses(criteria),
		TotalPoints: payload.MaxPoints,
		Usage:       dto.NewUsageResponse(draft.Usage),
	}, nil
}

func (s *rubricService) recordRun(ctx context.Context, referenceID string, payload dto.RubricGenerateRequest, criteria int, usage ai.Usage, duration time.Duration) {
	if s.records == nil {
		return
	}

	record := models.AssessmentRecord{
		ReferenceID:      referenceID,
		Kind:             models.AssessmentKindRubric,
		Score:            payload.MaxPoints,
		MaxScore:         payload.MaxPoints,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		DurationMs:       duration.Milliseconds(),
		Detail: datatypes.JSONMap{
			"title":    payload.Title,
			"criteria": criteria,
		},
	}
	if err := s.records.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("reference_id", referenceID).Msg("failed to persist rubric record")
	}
}
