package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
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

// ErrAssessorUnavailable indicates no assistant client is configured.
var ErrAssessorUnavailable = errors.New("assessor unavailable")

// ErrRubricMismatch indicates the assistant's breakdown did not cover every
// input rubric criterion.
var ErrRubricMismatch = errors.New("assistant breakdown missing rubric criterion")

// ErrIncompleteAssessment indicates the assistant returned fewer strengths
// or weaknesses than the contract requires.
var ErrIncompleteAssessment = errors.New("assistant returned incomplete assessment")

// GradingService grades submissions: the assistant supplies the qualitative
// assessment, the verifier recomputes every number.
type GradingService interface {
	Grade(ctx context.Context, payload dto.GradingRequest) (dto.GradingResponse, error)
}

type gradingService struct {
	assessor  ai.Assessor
	records   repository.AssessmentRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewGradingService constructs the grading service.
func NewGradingService(assessor ai.Assessor, records repository.AssessmentRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) GradingService {
	return &gradingService{
		assessor:  assessor,
		records:   records,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "grading_service").Logger(),
		tracer:    otel.Tracer("github.com/lumeo-edu/assess-go-api/internal/service/grading"),
	}
}

func (s *gradingService) Grade(parent context.Context, payload dto.GradingRequest) (dto.GradingResponse, error) {
	ctx, span := s.tracer.Start(parent, "grading.grade")
	span.SetAttributes(
		attribute.Int("grading.max_points", payload.MaxPoints),
		attribute.Int("grading.authenticity_score", payload.AuthenticityScore),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.GradingResponse{}, err
	}
	if s.assessor == nil {
		return dto.GradingResponse{}, ErrAssessorUnavailable
	}

	input := ai.GradingInput{
		Instructions:      s.sanitizer.Sanitize(payload.Instructions),
		SubmissionText:    s.sanitizer.Sanitize(payload.SubmissionText),
		AuthenticityScore: payload.AuthenticityScore,
		MaxPoints:         payload.MaxPoints,
		StudentName:       s.sanitizer.Sanitize(payload.StudentName),
		AssignmentTitle:   s.sanitizer.Sanitize(payload.AssignmentTitle),
	}
	for _, criterion := range payload.Rubric {
		input.Rubric = append(input.Rubric, ai.RubricCriterionRef{Name: criterion.Name, MaxPoints: criterion.MaxPoints})
	}

	start := time.Now()
	outcome, err := s.assessor.Grade(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assessment_failed")
		return dto.GradingResponse{}, err
	}

	if len(outcome.Strengths) < 2 || len(outcome.Weaknesses) < 2 {
		err := fmt.Errorf("%w: %d strengths, %d weaknesses", ErrIncompleteAssessment, len(outcome.Strengths), len(outcome.Weaknesses))
		span.RecordError(err)
		span.SetStatus(codes.Error, "incomplete_assessment")
		return dto.GradingResponse{}, err
	}

	items, err := alignBreakdown(outcome.Breakdown, payload.Rubric)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "breakdown_mismatch")
		return dto.GradingResponse{}, err
	}

	// The assistant's arithmetic is never trusted; every score is recomputed
	// from the fixed multiplier table.
	verified, total := rubric.Verify(items)
	weaknesses := rubric.EnsureAIFlag(outcome.Weaknesses, payload.AuthenticityScore)

	referenceID := uuid.NewString()
	s.recordRun(ctx, referenceID, payload, total, outcome.Usage, time.Since(start))
	if s.events != nil {
		s.events.Publish(ctx, "grading.completed", map[string]interface{}{
			"reference_id": referenceID,
			"score":        total,
			"max_points":   payload.MaxPoints,
		})
	}

	return dto.GradingResponse{
		ReferenceID:     referenceID,
		Strengths:       outcome.Strengths,
		Weaknesses:      weaknesses,
		RubricBreakdown: dto.NewBreakdownResponses(verified),
		Score:           total,
		Usage:           dto.NewUsageResponse(outcome.Usage),
	}, nil
}

// alignBreakdown orders the assistant's breakdown by the input rubric, one
// item per criterion, with max points copied from the input rather than the
// assistant. Without an input rubric the assistant's own breakdown shape is
// kept.
func alignBreakdown(entries []ai.BreakdownEntry, criteria []dto.RubricCriterionInput) ([]rubric.BreakdownItem, error) {
	if len(criteria) == 0 {
		items := make([]rubric.BreakdownItem, len(entries))
		for i, entry := range entries {
			items[i] = rubric.BreakdownItem{
				Criterion:        entry.Criterion,
				PerformanceLevel: entry.PerformanceLevel,
				Max:              int(math.Round(entry.Max)),
				Reason:           entry.Reason,
			}
		}
		return items, nil
	}

	items := make([]rubric.BreakdownItem, 0, len(criteria))
	for _, criterion := range criteria {
		entry, ok := findEntry(entries, criterion.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRubricMismatch, criterion.Name)
		}
		items = append(items, rubric.BreakdownItem{
			Criterion:        criterion.Name,
			PerformanceLevel: entry.PerformanceLevel,
			Max:              criterion.MaxPoints,
			Reason:           entry.Reason,
		})
	}
	return items, nil
}

func findEntry(entries []ai.BreakdownEntry, name string) (ai.BreakdownEntry, bool) {
	for _, entry := range entries {
		if strings.EqualFold(strings.TrimSpace(entry.Criterion), strings.TrimSpace(name)) {
			return entry, true
		}
	}
	return ai.BreakdownEntry{}, false
}

func (s *gradingService) recordRun(ctx context.Context, referenceID string, payload dto.GradingRequest, score int, usage ai.Usage, duration time.Duration) {
	if s.records == nil {
		return
	}

	record := models.AssessmentRecord{
		ReferenceID:      referenceID,
		Kind:             models.AssessmentKindGrading,
		Score:            score,
		MaxScore:         payload.MaxPoints,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		DurationMs:       duration.Milliseconds(),
		Detail: datatypes.JSONMap{
			"assignment_title":   payload.AssignmentTitle,
			"authenticity_score": payload.AuthenticityScore,
			"rubric_criteria":    len(payload.Rubric),
		},
	}
	if err := s.records.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("reference_id", referenceID).Msg("failed to persist grading record")
	}
}
