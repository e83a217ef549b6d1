package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Method is the aggregation policy that turns per-unit probabilities into a
// document-level score.
type Method string

const (
	MethodStrict   Method = "strict"
	MethodWeighted Method = "weighted"
	MethodBinary   Method = "binary"
)

const (
	strictThreshold  = 0.90
	flaggedThreshold = 0.50
)

// Config describes one analysis run. Immutable once built.
type Config struct {
	Model       string
	Granularity Granularity
	Method      Method
}

// Normalize fills unset fields with the documented defaults.
func (c Config) Normalize() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Method == "" {
		c.Method = MethodWeighted
	}
	if c.Granularity == "" {
		c.Granularity = GranularityParagraph
	}
	return c
}

// ClassifiedUnit pairs a unit's text with its machine-generation probability.
type ClassifiedUnit struct {
	Text        string
	Probability float64
}

// Segment is the per-unit evidence attached to an analysis result.
type Segment struct {
	Text         string  `json:"text"`
	Probability  float64 `json:"probability"`
	Words        int     `json:"words"`
	IsFlagged    bool    `json:"is_flagged"`
	Contribution float64 `json:"contribution"`
}

// Result is the document-level outcome of one analysis run.
type Result struct {
	GlobalScore int       `json:"global_score"`
	Segments    []Segment `json:"segments"`
	TotalWords  int       `json:"total_words"`
	Reason      string    `json:"reason"`
}

// CountWords counts whitespace-delimited words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Evaluate applies the aggregation policy to a single unit and returns the
// flag decision together with the unit's tally contribution.
func Evaluate(probability float64, words int, method Method) (flagged bool, contribution float64) {
	switch method {
	case MethodStrict:
		flagged = probability > strictThreshold
		if flagged {
			contribution = float64(words)
		}
	case MethodWeighted:
		flagged = probability > flaggedThreshold
		contribution = float64(words) * probability
	default:
		flagged = probability > flaggedThreshold
		if flagged {
			contribution = float64(words)
		}
	}
	return flagged, contribution
}

// Accumulates reports whether a unit's contribution enters the suspected-word
// tally. The tally decision is kept separate from the flag decision so that
// new methods cannot accidentally couple the two: under the weighted method
// every unit's fractional contribution accumulates, independent of how the
// flag was derived.
func Accumulates(flagged bool, method Method) bool {
	if method == MethodWeighted {
		return true
	}
	return flagged
}

// GlobalScore converts the suspected-word tally into the 0-100 document
// score, rounding half up. A document with no countable words scores 0.
func GlobalScore(suspectedWords float64, totalWords int) int {
	if totalWords <= 0 {
		return 0
	}
	return int(math.Round(100 * suspectedWords / float64(totalWords)))
}

// BuildResult aggregates classified units into an analysis result. The math
// is commutative over units; segment order is preserved for evidence display
// only.
func BuildResult(units []ClassifiedUnit, cfg Config) Result {
	cfg = cfg.Normalize()

	segments := make([]Segment, 0, len(units))
	totalWords := 0
	suspectedWords := 0.0

	for _, unit := range units {
		words := CountWords(unit.Text)
		totalWords += words

		flagged, contribution := Evaluate(unit.Probability, words, cfg.Method)
		if Accumulates(flagged, cfg.Method) {
			suspectedWords += contribution
		}

		segments = append(segments, Segment{
			Text:         unit.Text,
			Probability:  unit.Probability,
			Words:        words,
			IsFlagged:    flagged,
			Contribution: contribution,
		})
	}

	return Result{
		GlobalScore: GlobalScore(suspectedWords, totalWords),
		Segments:    segments,
		TotalWords:  totalWords,
		Reason:      fmt.Sprintf("Analysis via %s (%s)", cfg.Model, cfg.Method),
	}
}
