package dto

import "github.com/lumeo-edu/assess-go-api/internal/analysis"

// AnalysisRequest is the inbound payload for an authenticity analysis run.
type AnalysisRequest struct {
	Text        string `json:"text" validate:"required"`
	Model       string `json:"model" validate:"omitempty,max=128"`
	Granularity string `json:"granularity" validate:"omitempty,oneof=sentence paragraph document"`
	Method      string `json:"method" validate:"omitempty,oneof=strict weighted binary"`
}

// SegmentResponse is the per-unit evidence returned to API clients.
type SegmentResponse struct {
	Text         string  `json:"text"`
	Probability  float64 `json:"probability"`
	Words        int     `json:"words"`
	IsFlagged    bool    `json:"is_flagged"`
	Contribution float64 `json:"contribution"`
}

// AnalysisResponse is the document-level analysis result.
type AnalysisResponse struct {
	ReferenceID string            `json:"reference_id"`
	GlobalScore int               `json:"global_score"`
	Segments    []SegmentResponse `json:"segments"`
	TotalWords  int               `json:"total_words"`
	Reason      string            `json:"reason"`
	CacheHit    bool              `json:"cache_hit"`
}

// DetectorModelResponse describes one selectable detector model.
type DetectorModelResponse struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

// NewAnalysisResponse converts an analysis result into a DTO.
func NewAnalysisResponse(referenceID string, result analysis.Result) AnalysisResponse {
	segments := make([]SegmentResponse, len(result.Segments))
	for i, segment := range result.Segments {
		segments[i] = SegmentResponse{
			Text:         segment.Text,
			Probability:  segment.Probability,
			Words:        segment.Words,
			IsFlagged:    segment.IsFlagged,
			Contribution: segment.Contribution,
		}
	}

	return AnalysisResponse{
		ReferenceID: referenceID,
		GlobalScore: result.GlobalScore,
		Segments:    segments,
		TotalWords:  result.TotalWords,
		Reason:      result.Reason,
	}
}
