package dto

import (
	"github.com/lumeo-edu/assess-go-api/internal/rubric"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
)

// RubricCriterionInput names an input rubric criterion for grading.
type RubricCriterionInput struct {
	Name      string `json:"name" validate:"required"`
	MaxPoints int    `json:"max_points" validate:"required,gt=0"`
}

// GradingRequest is the inbound payload for grading a submission.
type GradingRequest struct {
	Instructions      string                 `json:"instructions" validate:"required"`
	SubmissionText    string                 `json:"submission_text" validate:"required"`
	AuthenticityScore int                    `json:"authenticity_score" validate:"gte=0,lte=100"`
	MaxPoints         int                    `json:"max_points" validate:"required,gt=0"`
	StudentName       string                 `json:"student_name" validate:"required"`
	AssignmentTitle   string                 `json:"assignment_title"`
	Rubric            []RubricCriterionInput `json:"rubric" validate:"omitempty,min=1,dive"`
}

// BreakdownResponse is one verified rubric breakdown entry.
type BreakdownResponse struct {
	Criterion        string `json:"criterion"`
	PerformanceLevel string `json:"performance_level"`
	Score            int    `json:"score"`
	Max              int    `json:"max"`
	Reason           string `json:"reason"`
}

// UsageResponse reports token consumption of the underlying assistant call.
type UsageResponse struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GradingResponse is the verified grading result. Score always equals the
// sum of the breakdown scores.
type GradingResponse struct {
	ReferenceID     string              `json:"reference_id"`
	Strengths       []string            `json:"strengths"`
	Weaknesses      []string            `json:"weaknesses"`
	RubricBreakdown []BreakdownResponse `json:"rubric_breakdown"`
	Score           int                 `json:"score"`
	Usage           UsageResponse       `json:"usage"`
}

// NewBreakdownResponses converts verified breakdown items into DTOs.
func NewBreakdownResponses(items []rubric.BreakdownItem) []BreakdownResponse {
	responses := make([]BreakdownResponse, len(items))
	for i, item := range items {
		responses[i] = BreakdownResponse{
			Criterion:        item.Criterion,
			PerformanceLevel: item.PerformanceLevel,
			Score:            item.Score,
			Max:              item.Max,
			Reason:           item.Reason,
		}
	}
	return responses
}

// NewUsageResponse converts assistant token usage into a DTO.
func NewUsageResponse(usage ai.Usage) UsageResponse {
	return UsageResponse{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
}
