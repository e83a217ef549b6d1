package detect

// aiLabels is the case-sensitive vocabulary of labels detector models use for
// machine-generated text.
var aiLabels = map[string]struct{}{
	"ChatGPT":      {},
	"fake":         {},
	"Fake":         {},
	"AI":           {},
	"ai":           {},
	"AI-Generated": {},
}

// fallbackLabel is the generic positive-class label emitted by models that do
// not name their classes.
const fallbackLabel = "LABEL_1"

// AIProbability resolves the machine-generation probability from a label
// distribution: a recognized AI label wins, then the generic fallback label,
// otherwise zero.
func AIProbability(scores []LabelScore) float64 {
	for _, score := range scores {
		if _, ok := aiLabels[score.Label]; ok {
			return score.Score
		}
	}
	for _, score := range scores {
		if score.Label == fallbackLabel {
			return score.Score
		}
	}
	return 0
}
