package dto

import (
	"time"

	"github.com/lumeo-edu/assess-go-api/internal/models"
)

// RecordFilter describes query string filters for listing audit records.
type RecordFilter struct {
	Kind     string `query:"kind" validate:"omitempty,oneof=analysis grading rubric summary"`
	Page     int    `query:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// RecordResponse serializes an assessment audit record.
type RecordResponse struct {
	ID               uint      `json:"id"`
	ReferenceID      string    `json:"reference_id"`
	Kind             string    `json:"kind"`
	Model            string    `json:"model"`
	Method           string    `json:"method,omitempty"`
	Score            int       `json:"score"`
	MaxScore         int       `json:"max_score,omitempty"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	DurationMs       int64     `json:"duration_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// RecordListResponse wraps a page of audit records.
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int64            `json:"total"`
}

// NewRecordResponse converts an AssessmentRecord model into a DTO.
func NewRecordResponse(model models.AssessmentRecord) RecordResponse {
	return RecordResponse{
		ID:               model.ID,
		ReferenceID:      model.ReferenceID,
		Kind:             model.Kind,
		Model:            model.Model,
		Method:           model.Method,
		Score:            model.Score,
		MaxScore:         model.MaxScore,
		PromptTokens:     model.PromptTokens,
		CompletionTokens: model.CompletionTokens,
		TotalTokens:      model.TotalTokens,
		DurationMs:       model.DurationMs,
		CreatedAt:        model.CreatedAt,
	}
}
