package rubric

import (
	"math"
	"strings"
)

// BreakdownItem is one criterion of a qualitative rubric breakdown. Score is
// authoritative only after Verify has recomputed it.
type BreakdownItem struct {
	Criterion        string `json:"criterion"`
	PerformanceLevel string `json:"performance_level"`
	Score            int    `json:"score"`
	Max              int    `json:"max"`
	Reason           string `json:"reason"`
}

// multiplierTable maps performance levels to scoring multipliers. The table
// is ordered: "very good" must match before "good".
var multiplierTable = []struct {
	substring  string
	multiplier float64
}{
	{"exceptional", 0.85},
	{"very good", 0.65},
	{"good", 0.55},
	{"average", 0.45},
	{"poor", 0.20},
}

// defaultMultiplier applies when no level matches; unrecognized levels are
// treated as Average.
const defaultMultiplier = 0.45

// Multiplier resolves a performance level to its scoring multiplier by
// case-insensitive substring match.
func Multiplier(performanceLevel string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(performanceLevel))
	for _, entry := range multiplierTable {
		if strings.Contains(normalized, entry.substring) {
			return entry.multiplier
		}
	}
	return defaultMultiplier
}

// Verify recomputes every breakdown score from the fixed multiplier table,
// overwriting whatever the assistant produced. The returned total always
// equals the sum of the verified item scores.
func Verify(items []BreakdownItem) ([]BreakdownItem, int) {
	verified := make([]BreakdownItem, len(items))
	total := 0
	for i, item := range items {
		item.Score = int(math.Round(float64(item.Max) * Multiplier(item.PerformanceLevel)))
		total += item.Score
		verified[i] = item
	}
	return verified, total
}

// AIFlagWeakness is the mandatory weakness entry for high authenticity
// scores.
const AIFlagWeakness = "(AI FLAG: CONTENT SEEMS ARTIFICIAL)"

// aiFlagThreshold is the authenticity score above which the flag is required.
const aiFlagThreshold = 60

// EnsureAIFlag enforces the content contract that a submission whose
// authenticity score exceeds the threshold carries a weakness flagging
// suspected artificial content. The entry is injected when missing.
func EnsureAIFlag(weaknesses []string, authenticityScore int) []string {
	if authenticityScore <= aiFlagThreshold {
		return weaknesses
	}
	for _, weakness := range weaknesses {
		if strings.Contains(strings.ToUpper(weakness), "AI FLAG") {
			return weaknesses
		}
	}
	return append(weaknesses, AIFlagWeakness)
}
