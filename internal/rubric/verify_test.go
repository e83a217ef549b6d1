package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiplierTable(t *testing.T) {
	cases := []struct {
		level      string
		multiplier float64
	}{
		{"Exceptional", 0.85},
		{"Very Good", 0.65},
		{"very good work overall", 0.65},
		{"Good", 0.55},
		{"average", 0.45},
		{"poor", 0.20},
		{"POOR", 0.20},
		{"  Exceptional  ", 0.85},
		{"something else entirely", 0.45},
		{"", 0.45},
	}

	for _, tc := range cases {
		require.Equal(t, tc.multiplier, Multiplier(tc.level), "level %q", tc.level)
	}
}

func TestVerifyRecomputesScores(t *testing.T) {
	items := []BreakdownItem{
		{Criterion: "Thesis", PerformanceLevel: "Very Good", Score: 999, Max: 20},
		{Criterion: "Grammar", PerformanceLevel: "poor", Score: -1, Max: 10},
	}

	verified, total := Verify(items)

	require.Equal(t, 13, verified[0].Score) // 20 * 0.65
	require.Equal(t, 2, verified[1].Score)  // 10 * 0.20
	require.Equal(t, 15, total)
}

func TestVerifyTotalEqualsSum(t *testing.T) {
	items := []BreakdownItem{
		{PerformanceLevel: "Exceptional", Max: 17},
		{PerformanceLevel: "Good", Max: 13},
		{PerformanceLevel: "made-up level", Max: 30},
	}

	verified, total := Verify(items)

	sum := 0
	for _, item := range verified {
		sum += item.Score
	}
	require.Equal(t, sum, total)
	require.Equal(t, 14, verified[0].Score) // round(17 * 0.85)
	require.Equal(t, 7, verified[1].Score)  // round(13 * 0.55)
	require.Equal(t, 14, verified[2].Score) // default 0.45
}

func TestVerifyDoesNotMutateInput(t *testing.T) {
	items := []BreakdownItem{{PerformanceLevel: "Good", Score: 42, Max: 10}}
	_, _ = Verify(items)
	require.Equal(t, 42, items[0].Score)
}

func TestEnsureAIFlagInjectsWhenMissing(t *testing.T) {
	weaknesses := []string{"Weak thesis statement", "Sparse citations"}

	flagged := EnsureAIFlag(weaknesses, 75)
	require.Len(t, flagged, 3)
	require.Equal(t, AIFlagWeakness, flagged[2])
}

func TestEnsureAIFlagKeepsExistingFlag(t *testing.T) {
	weaknesses := []string{"Weak thesis", "(AI FLAG: CONTENT SEEMS ARTIFICIAL)"}
	require.Equal(t, weaknesses, EnsureAIFlag(weaknesses, 90))
}

func TestEnsureAIFlagBelowThreshold(t *testing.T) {
	weaknesses := []string{"Weak thesis", "Sparse citations"}
	require.Equal(t, weaknesses, EnsureAIFlag(weaknesses, 60))
}
