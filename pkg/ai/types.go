package ai

import "context"

// Usage mirrors the token accounting returned by the chat completion API.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RubricCriterionRef names an input rubric criterion and its point ceiling.
type RubricCriterionRef struct {
	Name      string `json:"name"`
	MaxPoints int    `json:"max_points"`
}

// GradingInput carries everything the assistant needs to assess a submission.
type GradingInput struct {
	Instructions      string
	SubmissionText    string
	AuthenticityScore int
	MaxPoints         int
	StudentName       string
	AssignmentTitle   string
	Rubric            []RubricCriterionRef
}

// BreakdownEntry is the assistant's untrusted per-criterion assessment. The
// numeric fields are decoded as floats because the assistant's arithmetic is
// never trusted; downstream verification recomputes them.
type BreakdownEntry struct {
	Criterion        string  `json:"criterion"`
	PerformanceLevel string  `json:"performance_level"`
	Score            float64 `json:"score"`
	Max              float64 `json:"max"`
	Reason           string  `json:"reason"`
}

// GradingOutcome is the assistant's qualitative assessment before
// verification.
type GradingOutcome struct {
	Strengths  []string         `json:"strengths"`
	Weaknesses []string         `json:"weaknesses"`
	Breakdown  []BreakdownEntry `json:"rubric_breakdown"`
	Score      float64          `json:"score"`
	Usage      Usage            `json:"-"`
}

// RubricDraftInput describes the assignment a rubric is drafted for.
type RubricDraftInput struct {
	Title       string
	Description string
	MaxPoints   int
}

// DraftCriterion is a qualitative criterion proposed by the assistant, rated
// by importance on a 1-5 scale.
type DraftCriterion struct {
	Criterion   string `json:"criterion"`
	Importance  int    `json:"importance"`
	Description string `json:"description"`
}

// RubricDraft is the assistant's raw criteria list plus token usage.
type RubricDraft struct {
	Criteria []DraftCriterion
	Usage    Usage
}

// SummaryInput describes a summarization request.
type SummaryInput struct {
	Text  string
	Focus string
}

// Summary is the bullet-point summary returned by the assistant.
type Summary struct {
	Points []string
	Usage  Usage
}

// Assessor is the language-model boundary used by the grading, rubric and
// summary services.
type Assessor interface {
	Grade(ctx context.Context, input GradingInput) (GradingOutcome, error)
	DraftRubric(ctx context.Context, input RubricDraftInput) (RubricDraft, error)
	Summarize(ctx context.Context, input SummaryInput) (Summary, error)
}
