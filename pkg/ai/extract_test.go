package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractObjectPlain(t *testing.T) {
	payload, err := ExtractObject(`{"score": 10}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"score": 10}`, string(payload))
}

func TestExtractObjectWithProseAndFences(t *testing.T) {
	raw := "Sure! Here is the result you asked for:\n```json\n{\"score\": 10, \"verdict\": \"pass\"}\n```\nLet me know if you need anything else."
	payload, err := ExtractObject(raw)
	require.NoError(t, err)
	require.JSONEq(t, `{"score": 10, "verdict": "pass"}`, string(payload))
}

func TestExtractObjectCaseInsensitiveFences(t *testing.T) {
	raw := "```JSON\n{\"a\": 1}\n```"
	payload, err := ExtractObject(raw)
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 1}`, string(payload))
}

func TestExtractObjectNoDelimiters(t *testing.T) {
	_, err := ExtractObject("the model refused to answer")
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractObjectInvalidJSON(t *testing.T) {
	_, err := ExtractObject(`{"score": unquoted}`)
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractArray(t *testing.T) {
	raw := "Here you go: [{\"criterion\": \"Thesis\"}] -- enjoy"
	payload, err := ExtractArray(raw)
	require.NoError(t, err)
	require.JSONEq(t, `[{"criterion": "Thesis"}]`, string(payload))
}

func TestExtractArrayReversedDelimiters(t *testing.T) {
	_, err := ExtractArray("] backwards [")
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestValidateGradingPayload(t *testing.T) {
	valid := `{
		"strengths": ["a", "b"],
		"weaknesses": ["c", "d"],
		"rubric_breakdown": [
			{"criterion": "Thesis", "performance_level": "Good", "score": 11, "max": 20, "reason": "solid"}
		],
		"score": 11
	}`
	require.NoError(t, validateGradingPayload([]byte(valid)))

	missingField := `{"strengths": [], "weaknesses": [], "score": 0}`
	require.ErrorIs(t, validateGradingPayload([]byte(missingField)), ErrNoJSON)
}
