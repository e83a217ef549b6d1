package dto

import "github.com/lumeo-edu/assess-go-api/internal/rubric"

// RubricGenerateRequest is the inbound payload for rubric synthesis.
type RubricGenerateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	MaxPoints   int    `json:"max_points" validate:"required,gt=0"`
}

// RubricLevelResponse is one performance band of a synthesized criterion.
type RubricLevelResponse struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// RubricCriterionResponse is one synthesized, weighted rubric criterion.
type RubricCriterionResponse struct {
	Criterion   string                `json:"criterion"`
	Points      int                   `json:"points"`
	Description string                `json:"description"`
	Levels      []RubricLevelResponse `json:"levels"`
}

// RubricResponse is the synthesized rubric; criterion points sum to the
// requested budget exactly.
type RubricResponse struct {
	ReferenceID string                    `json:"reference_id"`
	Criteria    []RubricCriterionResponse `json:"criteria"`
	TotalPoints int                       `json:"total_points"`
	Usage       UsageResponse             `json:"usage"`
}

// NewRubricCriterionResponses converts synthesized criteria into DTOs.
func NewRubricCriterionResponses(criteria []rubric.Criterion) []RubricCriterionResponse {
	responses := make([]RubricCriterionResponse, len(criteria))
	for i, criterion := range criteria {
		levels := make([]RubricLevelResponse, len(criterion.Levels))
		for j, level := range criterion.Levels {
			levels[j] = RubricLevelResponse{
				Name:        level.Name,
				Score:       level.Score,
				Description: level.Description,
			}
		}
		responses[i] = RubricCriterionResponse{
			Criterion:   criterion.Criterion,
			Points:      criterion.Points,
			Description: criterion.Description,
			Levels:      levels,
		}
	}
	return responses
}
