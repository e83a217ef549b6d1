package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/lumeo-edu/assess-go-api/internal/analysis"
	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/models"
	"github.com/lumeo-edu/assess-go-api/internal/repository"
	"github.com/lumeo-edu/assess-go-api/pkg/detect"
)

// ErrNoText indicates the analysis request carried no usable text.
var ErrNoText = errors.New("no text provided")

// ErrClassifierUnavailable indicates no classification client is configured.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

const defaultClassifyConcurrency = 4

// AnalysisService exposes authenticity analysis operations.
type AnalysisService interface {
	Analyze(ctx context.Context, payload dto.AnalysisRequest) (dto.AnalysisResponse, error)
	Models() []dto.DetectorModelResponse
}

// AnalysisOptions tunes the analysis service.
type AnalysisOptions struct {
	CacheTTL    time.Duration
	Concurrency int
	Defaults    analysis.Config
}

type analysisService struct {
	classifier detect.Classifier
	records    repository.AssessmentRepository
	cache      *redis.Client
	events     EventPublisher
	validator  *validator.Validate
	logger     zerolog.Logger
	tracer     trace.Tracer
	options    AnalysisOptions
}

// NewAnalysisService constructs the authenticity analysis service.
func NewAnalysisService(classifier detect.Classifier, records repository.AssessmentRepository, cache *redis.Client, events EventPublisher, validate *validator.Validate, logger zerolog.Logger, options AnalysisOptions) AnalysisService {
	if options.Concurrency <= 0 {
		options.Concurrency = defaultClassifyConcurrency
	}
	options.Defaults = options.Defaults.Normalize()

	return &analysisService{
		classifier: classifier,
		records:    records,
		cache:      cache,
		events:     events,
		validator:  validate,
		logger:     logger.With().Str("component", "analysis_service").Logger(),
		tracer:     otel.Tracer("github.com/lumeo-edu/assess-go-api/internal/service/analysis"),
		options:    options,
	}
}

// Analyze segments the document, classifies every unit and aggregates the
// per-unit probabilities into a document-level score. Any classification
// failure aborts the whole run; a partially analyzed document is never
// reported as scored.
func (s *analysisService) Analyze(parent context.Context, payload dto.AnalysisRequest) (dto.AnalysisResponse, error) {
	ctx, span := s.tracer.Start(parent, "analysis.analyze")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AnalysisResponse{}, err
	}

	if strings.TrimSpace(payload.Text) == "" {
		return dto.AnalysisResponse{}, ErrNoText
	}
	if s.classifier == nil {
		return dto.AnalysisResponse{}, ErrClassifierUnavailable
	}

	cfg := s.runConfig(payload)
	span.SetAttributes(
		attribute.String("analysis.model", cfg.Model),
		attribute.String("analysis.method", string(cfg.Method)),
		attribute.String("analysis.granularity", string(cfg.Granularity)),
	)

	cacheKey := analysisCacheKey(payload.Text, cfg)
	if cached, ok := s.cachedResponse(ctx, cacheKey); ok {
		cached.CacheHit = true
		return cached, nil
	}

	start := time.Now()
	units := analysis.Units(payload.Text, cfg.Granularity)

	classified := make([]analysis.ClassifiedUnit, len(units))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.options.Concurrency)
	for i, unit := range units {
		group.Go(func() error {
			scores, err := s.classifier.Classify(groupCtx, cfg.Model, strings.TrimSpace(unit))
			if err != nil {
				return fmt.Errorf("classify unit %d: %w", i, err)
			}
			classified[i] = analysis.ClassifiedUnit{Text: unit, Probability: detect.AIProbability(scores)}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification_failed")
		return dto.AnalysisResponse{}, err
	}

	result := analysis.BuildResult(classified, cfg)
	referenceID := uuid.NewString()
	response := dto.NewAnalysisResponse(referenceID, result)

	s.storeCache(ctx, cacheKey, response)
	s.recordRun(ctx, referenceID, cfg, result, time.Since(start))
	if s.events != nil {
		s.events.Publish(ctx, "analysis.completed", map[string]interface{}{
			"reference_id": referenceID,
			"global_score": result.GlobalScore,
			"total_words":  result.TotalWords,
			"model":        cfg.Model,
			"method":       string(cfg.Method),
		})
	}

	return response, nil
}

// Models lists the selectable detector models.
func (s *analysisService) Models() []dto.DetectorModelResponse {
	known := analysis.KnownModels()
	responses := make([]dto.DetectorModelResponse, len(known))
	for i, id := range known {
		responses[i] = dto.DetectorModelResponse{
			ID:      id,
			Label:   analysis.ModelLabels[id],
			Default: id == analysis.DefaultModel,
		}
	}
	return responses
}

func (s *analysisService) runConfig(payload dto.AnalysisRequest) analysis.Config {
	cfg := analysis.Config{
		Model:       payload.Model,
		Granularity: analysis.Granularity(payload.Granularity),
		Method:      analysis.Method(payload.Method),
	}
	if cfg.Model == "" {
		cfg.Model = s.options.Defaults.Model
	}
	if cfg.Granularity == "" {
		cfg.Granularity = s.options.Defaults.Granularity
	}
	if cfg.Method == "" {
		cfg.Method = s.options.Defaults.Method
	}
	return cfg.Normalize()
}

func analysisCacheKey(text string, cfg analysis.Config) string {
	digest := sha256.Sum256([]byte(cfg.Model + "|" + string(cfg.Granularity) + "|" + string(cfg.Method) + "|" + text))
	return fmt.Sprintf("assess:analysis:%x", digest)
}

func (s *analysisService) cachedResponse(ctx context.Context, key string) (dto.AnalysisResponse, bool) {
	if s.cache == nil {
		return dto.AnalysisResponse{}, false
	}

	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("analysis cache read failed")
		}
		return dto.AnalysisResponse{}, false
	}

	var response dto.AnalysisResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		s.logger.Warn().Err(err).Msg("analysis cache entry corrupt")
		return dto.AnalysisResponse{}, false
	}
	return response, true
}

func (s *analysisService) storeCache(ctx context.Context, key string, response dto.AnalysisResponse) {
	if s.cache == nil || s.options.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal analysis response for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.options.CacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("analysis cache write failed")
	}
}

func (s *analysisService) recordRun(ctx context.Context, referenceID string, cfg analysis.Config, result analysis.Result, duration time.Duration) {
	if s.records == nil {
		return
	}

	record := models.AssessmentRecord{
		ReferenceID: referenceID,
		Kind:        models.AssessmentKindAnalysis,
		Model:       cfg.Model,
		Method:      string(cfg.Method),
		Score:       result.GlobalScore,
		MaxScore:    100,
		DurationMs:  duration.Milliseconds(),
		Detail: datatypes.JSONMap{
			"total_words": result.TotalWords,
			"segments":    len(result.Segments),
			"granularity": string(cfg.Granularity),
		},
	}
	if err := s.records.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("reference_id", referenceID).Msg("failed to persist analysis record")
	}
}
