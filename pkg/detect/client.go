package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	detectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "assess",
		Subsystem: "detect",
		Name:      "request_duration_seconds",
		Help:      "Duration of classification endpoint requests",
	}, []string{"model"})

	detectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assess",
		Subsystem: "detect",
		Name:      "request_failures_total",
		Help:      "Number of failed classification endpoint requests",
	}, []string{"model"})
)

// ErrUpstream indicates the classification endpoint was unreachable or
// returned a non-success status.
var ErrUpstream = errors.New("classification request failed")

// DefaultBaseURL points at the hosted inference router.
const DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"

// LabelScore is one entry of the classifier's label distribution.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier scores a unit of text against a named detector model.
type Classifier interface {
	Classify(ctx context.Context, model, text string) ([]LabelScore, error)
}

// Config describes the HTTP classification client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client calls an inference endpoint that accepts {"inputs": ...} and
// responds with a label/score distribution.
type Client struct {
	httpClient *http.Client
	cfg        Config
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// New builds a classification client; the API key is required.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		tracer:     otel.Tracer("github.com/lumeo-edu/assess-go-api/pkg/detect"),
		logger:     logger.With().Str("component", "detect_client").Logger(),
	}, nil
}

// Classify sends one unit of text to the detector model. A non-2xx response
// is a hard failure.
func (c *Client) Classify(parent context.Context, model, text string) ([]LabelScore, error) {
	ctx, span := c.tracer.Start(parent, "detect.classify", trace.WithAttributes(
		attribute.String("model", model),
	))
	defer span.End()

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("marshal classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/"+model, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build classification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	detectDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if err != nil {
		detectFailures.WithLabelValues(model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		detectFailures.WithLabelValues(model).Inc()
		return nil, fmt.Errorf("read classification response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detectFailures.WithLabelValues(model).Inc()
		err := fmt.Errorf("%w: status %d %s", ErrUpstream, resp.StatusCode, http.StatusText(resp.StatusCode))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error().Int("status", resp.StatusCode).Str("model", model).Msg("classification endpoint error")
		return nil, err
	}

	scores, err := decodeScores(body)
	if err != nil {
		detectFailures.WithLabelValues(model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return scores, nil
}

// decodeScores accepts both the flat and the nested array shape the
// inference endpoint is known to return.
func decodeScores(body []byte) ([]LabelScore, error) {
	var nested [][]LabelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat []LabelScore
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	return nil, fmt.Errorf("unexpected classification response shape")
}
