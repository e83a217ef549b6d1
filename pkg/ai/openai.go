package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "assess",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of assistant chat-completion requests",
	}, []string{"model", "operation"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assess",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed assistant chat-completion requests",
	}, []string{"model", "operation"})
)

// ErrUpstream indicates the chat-completion endpoint was unreachable,
// returned a non-success status, or produced no choices.
var ErrUpstream = errors.New("assistant request failed")

// Submission text is truncated before prompting; summaries allow more input.
const (
	maxSubmissionChars = 4000
	maxSummaryChars    = 12000
)

const summaryTemperature = 0.3

// ClientConfig defines configuration for the assistant client. BaseURL may
// point at any OpenAI-compatible endpoint. MaxTokens and Temperature are
// pointers so an explicit zero is distinguishable from an unset field.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   *int
	Temperature *float32
	Logger      zerolog.Logger
}

// Client implements Assessor against an OpenAI-compatible chat completion
// API.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewClient builds a new assistant client using the provided configuration.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("assistant api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	maxTokens := 2500
	if cfg.MaxTokens != nil {
		maxTokens = *cfg.MaxTokens
	}
	temperature := float32(0.1)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: temperature,
		tracer:      otel.Tracer("github.com/lumeo-edu/assess-go-api/pkg/ai"),
		logger:      logger.With().Str("component", "ai_client").Logger(),
	}, nil
}

// Grade asks the assistant for a qualitative assessment of a submission. The
// returned breakdown is untrusted input for downstream verification.
func (c *Client) Grade(ctx context.Context, input GradingInput) (GradingOutcome, error) {
	content, usage, err := c.complete(ctx, "grade", completionSpec{
		system:      gradingSystemPrompt(input),
		user:        fmt.Sprintf("STUDENT: %s. TEXT: %s", input.StudentName, truncate(input.SubmissionText, maxSubmissionChars)),
		temperature: c.temperature,
		jsonMode:    true,
	})
	if err != nil {
		return GradingOutcome{}, err
	}

	payload, err := ExtractObject(content)
	if err != nil {
		aiFailures.WithLabelValues(c.model, "grade").Inc()
		return GradingOutcome{}, err
	}
	if err := validateGradingPayload(payload); err != nil {
		aiFailures.WithLabelValues(c.model, "grade").Inc()
		return GradingOutcome{}, err
	}

	var outcome GradingOutcome
	if err := json.Unmarshal(payload, &outcome); err != nil {
		aiFailures.WithLabelValues(c.model, "grade").Inc()
		return GradingOutcome{}, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	outcome.Usage = usage
	return outcome, nil
}

// DraftRubric asks the assistant for qualitative criteria with importance
// ratings. Point values are assigned deterministically elsewhere.
func (c *Client) DraftRubric(ctx context.Context, input RubricDraftInput) (RubricDraft, error) {
	content, usage, err := c.complete(ctx, "draft_rubric", completionSpec{
		system:      rubricSystemPrompt(input),
		user:        "Generate the rubric criteria JSON.",
		temperature: c.temperature,
	})
	if err != nil {
		return RubricDraft{}, err
	}

	payload, err := ExtractArray(content)
	if err != nil {
		aiFailures.WithLabelValues(c.model, "draft_rubric").Inc()
		return RubricDraft{}, err
	}

	var criteria []DraftCriterion
	if err := json.Unmarshal(payload, &criteria); err != nil {
		aiFailures.WithLabelValues(c.model, "draft_rubric").Inc()
		return RubricDraft{}, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	return RubricDraft{Criteria: criteria, Usage: usage}, nil
}

// Summarize condenses text into bullet points.
func (c *Client) Summarize(ctx context.Context, input SummaryInput) (Summary, error) {
	content, usage, err := c.complete(ctx, "summarize", completionSpec{
		system:      summarySystemPrompt(input.Focus),
		user:        "TEXT: " + truncate(input.Text, maxSummaryChars),
		temperature: summaryTemperature,
		jsonMode:    true,
	})
	if err != nil {
		return Summary{}, err
	}

	payload, err := ExtractObject(content)
	if err != nil {
		aiFailures.WithLabelValues(c.model, "summarize").Inc()
		return Summary{}, err
	}

	var parsed struct {
		Points []string `json:"points"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		aiFailures.WithLabelValues(c.model, "summarize").Inc()
		return Summary{}, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	return Summary{Points: parsed.Points, Usage: usage}, nil
}

type completionSpec struct {
	system      string
	user        string
	temperature float32
	jsonMode    bool
}

func (c *Client) complete(parent context.Context, operation string, spec completionSpec) (string, Usage, error) {
	ctx, span := c.tracer.Start(parent, "ai."+operation, trace.WithAttributes(
		attribute.String("model", c.model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: spec.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: spec.system},
			{Role: openai.ChatMessageRoleUser, Content: spec.user},
		},
	}
	if spec.jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(c.model, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(c.model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", Usage{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		err := fmt.Errorf("%w: no choice content returned", ErrUpstream)
		aiFailures.WithLabelValues(c.model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", Usage{}, err
	}

	usage := Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), usage, nil
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	// Never split a multi-byte rune at the cut point.
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
