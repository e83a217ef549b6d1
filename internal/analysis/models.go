package analysis

// Detector models known to work with the classification endpoint.
const (
	ModelRobertaLarge   = "Hello-SimpleAI/chatgpt-detector-roberta"
	ModelPirateDetector = "PirateXX/AI-Content-Detector"
	ModelOpenAIDetector = "fakespot-ai/roberta-base-ai-text-detection-v1"
)

// DefaultModel is used when an analysis request does not name a detector.
const DefaultModel = ModelPirateDetector

// ModelLabels maps detector identifiers to display names.
var ModelLabels = map[string]string{
	ModelRobertaLarge:   "RoBERTa Large (Baseline)",
	ModelPirateDetector: "PirateXX Detector",
	ModelOpenAIDetector: "OpenAI RoBERTa Base",
}

var knownModelOrder = []string{
	ModelRobertaLarge,
	ModelPirateDetector,
	ModelOpenAIDetector,
}

// KnownModels returns the detector identifiers in a stable display order.
func KnownModels() []string {
	models := make([]string, len(knownModelOrder))
	copy(models, knownModelOrder)
	return models
}
