package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func serveChatContent(t *testing.T, content string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		quoted, err := json.Marshal(content)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%s}}],"usage":{"prompt_tokens":120,"completion_tokens":80,"total_tokens":200}}`, quoted)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL + "/v1", Model: "test-model"})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	require.Error(t, err)
}

func TestGradeParsesWrappedPayload(t *testing.T) {
	content := "Here is the assessment:\n```json\n" + `{
		"strengths": ["Clear thesis statement throughout", "Strong supporting evidence provided"],
		"weaknesses": ["Some paragraphs lack transitions", "Conclusion restates without synthesis"],
		"rubric_breakdown": [
			{"criterion": "Thesis", "performance_level": "Very Good", "score": 13, "max": 20, "reason": "clear and focused"}
		],
		"score": 13
	}` + "\n```"

	client := serveChatContent(t, content)

	outcome, err := client.Grade(context.Background(), GradingInput{
		Instructions:   "Write an essay",
		SubmissionText: "the essay text",
		StudentName:    "Jordan",
		MaxPoints:      20,
		Rubric:         []RubricCriterionRef{{Name: "Thesis", MaxPoints: 20}},
	})
	require.NoError(t, err)
	require.Len(t, outcome.Strengths, 2)
	require.Len(t, outcome.Breakdown, 1)
	require.Equal(t, "Very Good", outcome.Breakdown[0].PerformanceLevel)
	require.Equal(t, 200, outcome.Usage.TotalTokens)
}

func TestGradeRejectsNonSchemaPayload(t *testing.T) {
	client := serveChatContent(t, `{"unexpected": true}`)

	_, err := client.Grade(context.Background(), GradingInput{SubmissionText: "text"})
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestGradeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Grade(context.Background(), GradingInput{SubmissionText: "text"})
	require.ErrorIs(t, err, ErrUpstream)
}

func TestGradeEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [], "usage": {}}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Grade(context.Background(), GradingInput{SubmissionText: "text"})
	require.ErrorIs(t, err, ErrUpstream)
}

func TestDraftRubricParsesArray(t *testing.T) {
	content := `Proposed criteria: [
		{"criterion": "Thesis", "importance": 5, "description": "Argument quality"},
		{"criterion": "Grammar", "importance": 2, "description": "Mechanics"}
	]`

	client := serveChatContent(t, content)

	draft, err := client.DraftRubric(context.Background(), RubricDraftInput{Title: "Essay", MaxPoints: 30})
	require.NoError(t, err)
	require.Len(t, draft.Criteria, 2)
	require.Equal(t, 5, draft.Criteria[0].Importance)
	require.Equal(t, 200, draft.Usage.TotalTokens)
}

func TestSummarizeParsesPoints(t *testing.T) {
	client := serveChatContent(t, `{"points": ["First point", "Second point", "Third point"]}`)

	summary, err := client.Summarize(context.Background(), SummaryInput{Text: "a long lecture transcript"})
	require.NoError(t, err)
	require.Len(t, summary.Points, 3)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 10))
	require.Equal(t, "ab", truncate("abcdef", 2))
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	// "é" is two bytes; a cut inside it must back off to the rune start.
	require.Equal(t, "caf", truncate("café", 4))
	require.Equal(t, "", truncate("é", 1))
	require.True(t, utf8.ValidString(truncate("résumé résumé", 9)))
}

func TestNewClientRespectsExplicitZeroes(t *testing.T) {
	zeroTemp := float32(0)
	zeroTokens := 0
	client, err := NewClient(ClientConfig{APIKey: "test-key", MaxTokens: &zeroTokens, Temperature: &zeroTemp})
	require.NoError(t, err)
	require.Equal(t, float32(0), client.temperature)
	require.Equal(t, 0, client.maxTokens)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(ClientConfig{APIKey: "test-key"})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", client.model)
	require.Equal(t, float32(0.1), client.temperature)
	require.Equal(t, 2500, client.maxTokens)
}
