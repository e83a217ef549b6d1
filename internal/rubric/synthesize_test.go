package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesizeProportionalDistribution(t *testing.T) {
	raw := []RawCriterion{
		{Criterion: "Thesis", Importance: 5},
		{Criterion: "Evidence", Importance: 3},
		{Criterion: "Grammar", Importance: 2},
	}

	criteria, err := Synthesize(raw, 30)
	require.NoError(t, err)
	require.Len(t, criteria, 3)
	require.Equal(t, 15, criteria[0].Points)
	require.Equal(t, 9, criteria[1].Points)
	require.Equal(t, 6, criteria[2].Points)
}

func TestSynthesizeSumInvariant(t *testing.T) {
	cases := []struct {
		name        string
		importances []int
		budget      int
	}{
		{"even split", []int{3, 3, 3}, 100},
		{"rounding up", []int{5, 4, 4}, 50},
		{"single criterion", []int{1}, 17},
		{"many criteria", []int{1, 2, 3, 4, 5, 4, 3, 2, 1}, 73},
		{"tiny budget", []int{5, 5, 5}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := make([]RawCriterion, len(tc.importances))
			for i, importance := range tc.importances {
				raw[i] = RawCriterion{Criterion: "c", Importance: importance}
			}

			criteria, err := Synthesize(raw, tc.budget)
			require.NoError(t, err)

			sum := 0
			for _, criterion := range criteria {
				sum += criterion.Points
			}
			require.Equal(t, tc.budget, sum)
		})
	}
}

func TestSynthesizeClampsAndDefaultsImportance(t *testing.T) {
	raw := []RawCriterion{
		{Criterion: "a", Importance: 9},
		{Criterion: "b", Importance: -2},
		{Criterion: "c"}, // missing importance defaults to 3
	}

	criteria, err := Synthesize(raw, 9)
	require.NoError(t, err)
	// effective weights are 5, 1, 3
	require.Equal(t, 5, criteria[0].Points)
	require.Equal(t, 1, criteria[1].Points)
	require.Equal(t, 3, criteria[2].Points)
}

func TestSynthesizeReconciliationTargetsLargestCriterion(t *testing.T) {
	raw := []RawCriterion{
		{Criterion: "a", Importance: 1},
		{Criterion: "b", Importance: 1},
		{Criterion: "c", Importance: 1},
	}

	// 10/3 rounds to 3 each; the first (ties go to first occurrence) largest
	// criterion absorbs the missing point.
	criteria, err := Synthesize(raw, 10)
	require.NoError(t, err)
	require.Equal(t, 4, criteria[0].Points)
	require.Equal(t, 3, criteria[1].Points)
	require.Equal(t, 3, criteria[2].Points)
}

func TestSynthesizeFiveBands(t *testing.T) {
	criteria, err := Synthesize([]RawCriterion{{Criterion: "Structure", Importance: 4}}, 20)
	require.NoError(t, err)
	require.Len(t, criteria[0].Levels, 5)

	levels := criteria[0].Levels
	require.Equal(t, "Exceptional", levels[0].Name)
	require.Equal(t, 20, levels[0].Score)
	require.Equal(t, "Very Good", levels[1].Name)
	require.Equal(t, 16, levels[1].Score)
	require.Equal(t, "Good", levels[2].Name)
	require.Equal(t, 12, levels[2].Score)
	require.Equal(t, "Average", levels[3].Name)
	require.Equal(t, 8, levels[3].Score)
	require.Equal(t, "Poor", levels[4].Name)
	require.Equal(t, 4, levels[4].Score)
}

func TestSynthesizeInvalidInput(t *testing.T) {
	_, err := Synthesize([]RawCriterion{{Criterion: "a"}}, 0)
	require.ErrorIs(t, err, ErrInvalidBudget)

	_, err = Synthesize(nil, 10)
	require.ErrorIs(t, err, ErrNoCriteria)
}
