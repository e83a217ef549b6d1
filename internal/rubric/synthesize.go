package rubric

import (
	"errors"
	"math"
)

// ErrInvalidBudget indicates a non-positive point budget.
var ErrInvalidBudget = errors.New("point budget must be positive")

// ErrNoCriteria indicates an empty criteria list.
var ErrNoCriteria = errors.New("at least one criterion is required")

const (
	minImportance     = 1
	maxImportance     = 5
	defaultImportance = 3
)

// RawCriterion is a qualitative criterion as drafted by the assistant.
type RawCriterion struct {
	Criterion   string `json:"criterion"`
	Importance  int    `json:"importance"`
	Description string `json:"description"`
}

// Level is one performance band of a synthesized criterion.
type Level struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Criterion is a fully weighted rubric criterion with its five bands.
type Criterion struct {
	Criterion   string  `json:"criterion"`
	Points      int     `json:"points"`
	Description string  `json:"description"`
	Levels      []Level `json:"levels"`
}

type band struct {
	name       string
	multiplier float64
	blurb      string
}

// Synthesis bands are fixed; each level score is the criterion's point value
// scaled by the band multiplier, rounded half up.
var synthesisBands = []band{
	{"Exceptional", 1.00, "Outstanding; exceeds all requirements"},
	{"Very Good", 0.80, "Strong; very few minor errors"},
	{"Good", 0.60, "Satisfactory; meets most requirements"},
	{"Average", 0.40, "Basic; significant gaps"},
	{"Poor", 0.20, "Fail; does not meet minimums"},
}

// Synthesize distributes pointBudget across the raw criteria in proportion to
// their importance and reconciles rounding error so the point values sum to
// the budget exactly.
func Synthesize(raw []RawCriterion, pointBudget int) ([]Criterion, error) {
	if pointBudget <= 0 {
		return nil, ErrInvalidBudget
	}
	if len(raw) == 0 {
		return nil, ErrNoCriteria
	}

	weights := make([]int, len(raw))
	totalWeight := 0
	for i, criterion := range raw {
		weights[i] = clampImportance(criterion.Importance)
		totalWeight += weights[i]
	}

	points := make([]int, len(raw))
	assigned := 0
	for i, weight := range weights {
		points[i] = int(math.Round(float64(weight) / float64(totalWeight) * float64(pointBudget)))
		assigned += points[i]
	}

	// Reconciliation: the single highest-weight criterion absorbs the whole
	// rounding error, clamped at zero.
	if diff := pointBudget - assigned; diff != 0 {
		largest := 0
		for i, value := range points {
			if value > points[largest] {
				largest = i
			}
		}
		points[largest] += diff
		if points[largest] < 0 {
			points[largest] = 0
		}
	}

	criteria := make([]Criterion, len(raw))
	for i, criterion := range raw {
		criteria[i] = Criterion{
			Criterion:   criterion.Criterion,
			Points:      points[i],
			Description: criterion.Description,
			Levels:      buildLevels(points[i]),
		}
	}
	return criteria, nil
}

func buildLevels(points int) []Level {
	levels := make([]Level, len(synthesisBands))
	for i, b := range synthesisBands {
		levels[i] = Level{
			Name:        b.name,
			Score:       int(math.Round(float64(points) * b.multiplier)),
			Description: b.blurb,
		}
	}
	return levels
}

func clampImportance(importance int) int {
	switch {
	case importance == 0:
		return defaultImportance
	case importance < minImportance:
		return minImportance
	case importance > maxImportance:
		return maxImportance
	}
	return importance
}
