package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
)

func newSummaryService(assessor ai.Assessor) SummaryService {
	return NewSummaryService(assessor, nil, nil, validator.New(), zerolog.Nop())
}

func TestSummaryService(t *testing.T) {
	assessor := &fakeAssessor{summary: ai.Summary{
		Points: []string{"Light reactions produce ATP", "Occurs in the thylakoid membrane"},
		Usage:  ai.Usage{PromptTokens: 60, CompletionTokens: 30, TotalTokens: 90},
	}}
	svc := newSummaryService(assessor)

	resp, err := svc.Summarize(context.Background(), dto.SummaryRequest{Text: "Photosynthesis chapter.", Focus: "key mechanisms"})
	require.NoError(t, err)
	require.Len(t, resp.Points, 2)
	require.NotEmpty(t, resp.ReferenceID)
	require.Equal(t, 90, resp.Usage.TotalTokens)
}

func TestSummaryServiceNilAssessor(t *testing.T) {
	svc := newSummaryService(nil)

	_, err := svc.Summarize(context.Background(), dto.SummaryRequest{Text: "anything"})
	require.ErrorIs(t, err, ErrAssessorUnavailable)
}

func TestSummaryServiceValidation(t *testing.T) {
	svc := newSummaryService(&fakeAssessor{})

	_, err := svc.Summarize(context.Background(), dto.SummaryRequest{})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
