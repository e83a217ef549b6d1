package dto

// SummaryRequest is the inbound payload for content summarization.
type SummaryRequest struct {
	Text  string `json:"text" validate:"required"`
	Focus string `json:"focus"`
}

// SummaryResponse is a bullet-point summary.
type SummaryResponse struct {
	ReferenceID string        `json:"reference_id"`
	Points      []string      `json:"points"`
	Usage       UsageResponse `json:"usage"`
}
