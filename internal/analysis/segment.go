package analysis

import (
	"regexp"
	"strings"
)

// Granularity selects the unit size a document is split into before
// classification.
type Granularity string

const (
	GranularitySentence  Granularity = "sentence"
	GranularityParagraph Granularity = "paragraph"
	GranularityDocument  Granularity = "document"
)

// Paragraphs shorter than this after trimming carry too little signal for the
// classifier and are discarded.
const minParagraphLength = 10

var (
	sentencePattern  = regexp.MustCompile(`[^.!?]+[.!?]+(?:\s+|$)`)
	paragraphPattern = regexp.MustCompile(`\r?\n+`)
)

// Units splits text into ordered, non-empty classification units. Identical
// input always yields identical unit boundaries.
func Units(text string, granularity Granularity) []string {
	switch granularity {
	case GranularitySentence:
		return splitSentences(text)
	case GranularityDocument:
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	default:
		return splitParagraphs(text)
	}
}

func splitSentences(text string) []string {
	units := sentencePattern.FindAllString(text, -1)
	if len(units) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	kept := units[:0]
	for _, unit := range units {
		if strings.TrimSpace(unit) != "" {
			kept = append(kept, unit)
		}
	}
	return kept
}

func splitParagraphs(text string) []string {
	var units []string
	for _, paragraph := range paragraphPattern.Split(text, -1) {
		if len(strings.TrimSpace(paragraph)) > minParagraphLength {
			units = append(units, paragraph)
		}
	}
	return units
}
