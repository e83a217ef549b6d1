package models

import (
	"time"

	"gorm.io/datatypes"
)

// AssessmentRecord is the audit trail row written for every engine
// invocation. Submission and class storage belong to the surrounding
// platform; the engine only records what it computed and what it cost.
type AssessmentRecord struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	ReferenceID      string            `gorm:"size:64;uniqueIndex" json:"reference_id"`
	Kind             string            `gorm:"size:32;not null;index" json:"kind"`
	Model            string            `gorm:"size:128" json:"model"`
	Method           string            `gorm:"size:32" json:"method"`
	Score            int               `json:"score"`
	MaxScore         int               `json:"max_score"`
	PromptTokens     int               `json:"prompt_tokens"`
	CompletionTokens int               `json:"completion_tokens"`
	TotalTokens      int               `json:"total_tokens"`
	DurationMs       int64             `json:"duration_ms"`
	Detail           datatypes.JSONMap `json:"detail"`
	CreatedAt        time.Time         `json:"created_at"`
}

const (
	// AssessmentKindAnalysis marks an authenticity analysis run.
	AssessmentKindAnalysis = "analysis"
	// AssessmentKindGrading marks a grading verification run.
	AssessmentKindGrading = "grading"
	// AssessmentKindRubric marks a rubric synthesis run.
	AssessmentKindRubric = "rubric"
	// AssessmentKindSummary marks a summarization run.
	AssessmentKindSummary = "summary"
)
