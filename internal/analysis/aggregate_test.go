package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fiftyWords(seed string) string {
	words := make([]string, 50)
	for i := range words {
		words[i] = seed
	}
	return strings.Join(words, " ")
}

func TestBuildResultStrictMethod(t *testing.T) {
	units := []ClassifiedUnit{
		{Text: fiftyWords("alpha"), Probability: 0.95},
		{Text: fiftyWords("beta"), Probability: 0.10},
	}

	result := BuildResult(units, Config{Model: ModelPirateDetector, Method: MethodStrict})

	require.Equal(t, 100, result.TotalWords)
	require.Len(t, result.Segments, 2)
	require.True(t, result.Segments[0].IsFlagged)
	require.Equal(t, 50.0, result.Segments[0].Contribution)
	require.False(t, result.Segments[1].IsFlagged)
	require.Equal(t, 0.0, result.Segments[1].Contribution)
	require.Equal(t, 50, result.GlobalScore)
}

func TestBuildResultWeightedMethod(t *testing.T) {
	units := []ClassifiedUnit{
		{Text: fiftyWords("alpha"), Probability: 0.95},
		{Text: fiftyWords("beta"), Probability: 0.10},
	}

	result := BuildResult(units, Config{Method: MethodWeighted})

	// 50*0.95 + 50*0.10 = 52.5, rounded half up.
	require.Equal(t, 53, result.GlobalScore)
	require.True(t, result.Segments[0].IsFlagged)
	require.False(t, result.Segments[1].IsFlagged)
	require.InDelta(t, 5.0, result.Segments[1].Contribution, 1e-9)
}

func TestBuildResultBinaryMethod(t *testing.T) {
	units := []ClassifiedUnit{
		{Text: fiftyWords("alpha"), Probability: 0.60},
		{Text: fiftyWords("beta"), Probability: 0.40},
	}

	result := BuildResult(units, Config{Method: MethodBinary})

	require.Equal(t, 50, result.GlobalScore)
	require.True(t, result.Segments[0].IsFlagged)
	require.Equal(t, 50.0, result.Segments[0].Contribution)
	require.False(t, result.Segments[1].IsFlagged)
}

func TestBuildResultEmptyDocumentScoresZero(t *testing.T) {
	result := BuildResult(nil, Config{Method: MethodStrict})
	require.Equal(t, 0, result.GlobalScore)
	require.Equal(t, 0, result.TotalWords)
	require.Empty(t, result.Segments)
}

func TestBuildResultIdempotent(t *testing.T) {
	units := []ClassifiedUnit{
		{Text: "one two three four five.", Probability: 0.72},
		{Text: "six seven eight nine ten.", Probability: 0.31},
	}
	cfg := Config{Method: MethodWeighted}

	first := BuildResult(units, cfg)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, BuildResult(units, cfg))
	}
}

func TestSuspectedTallyMonotonicity(t *testing.T) {
	units := []ClassifiedUnit{
		{Text: fiftyWords("alpha"), Probability: 0.95},
		{Text: fiftyWords("beta"), Probability: 0.60},
		{Text: fiftyWords("gamma"), Probability: 0.10},
	}

	tally := func(method Method) float64 {
		total := 0.0
		for _, unit := range units {
			words := CountWords(unit.Text)
			flagged, contribution := Evaluate(unit.Probability, words, method)
			if Accumulates(flagged, method) {
				total += contribution
			}
		}
		return total
	}

	strict := tally(MethodStrict)
	weighted := tally(MethodWeighted)
	binary := tally(MethodBinary)

	require.LessOrEqual(t, strict, weighted)
	require.LessOrEqual(t, weighted, binary+float64(CountWords(units[2].Text)))
}

func TestEvaluateThresholdBoundaries(t *testing.T) {
	flagged, _ := Evaluate(0.90, 10, MethodStrict)
	require.False(t, flagged, "strict threshold is exclusive")

	flagged, _ = Evaluate(0.50, 10, MethodBinary)
	require.False(t, flagged, "binary threshold is exclusive")

	flagged, contribution := Evaluate(0.51, 10, MethodBinary)
	require.True(t, flagged)
	require.Equal(t, 10.0, contribution)
}

func TestGlobalScoreRounding(t *testing.T) {
	require.Equal(t, 53, GlobalScore(52.5, 100))
	require.Equal(t, 52, GlobalScore(52.4, 100))
	require.Equal(t, 0, GlobalScore(0, 0))
}

func TestConfigNormalizeDefaults(t *testing.T) {
	cfg := Config{}.Normalize()
	require.Equal(t, DefaultModel, cfg.Model)
	require.Equal(t, MethodWeighted, cfg.Method)
	require.Equal(t, GranularityParagraph, cfg.Granularity)
}

func TestCountWords(t *testing.T) {
	require.Equal(t, 0, CountWords("   "))
	require.Equal(t, 3, CountWords("  one   two\tthree\n"))
}
