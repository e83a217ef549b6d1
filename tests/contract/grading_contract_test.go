package contract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/handler"
)

type stubGradingService struct {
	response dto.GradingResponse
}

func (s stubGradingService) Grade(context.Context, dto.GradingRequest) (dto.GradingResponse, error) {
	return s.response, nil
}

func TestGradingResponseContract(t *testing.T) {
	schema := compileSchema(t, "grading.schema.json")

	svc := stubGradingService{response: dto.GradingResponse{
		ReferenceID: "8c41b7de-13a0-44f7-9c0e-55aa17e3c001",
		Strengths:   []string{"Clear thesis statement", "Logical paragraph structure"},
		Weaknesses:  []string{"Sparse citations", "(AI FLAG: CONTENT SEEMS ARTIFICIAL)"},
		RubricBreakdown: []dto.BreakdownResponse{
			{Criterion: "Clarity", PerformanceLevel: "Very Good", Score: 13, Max: 20, Reason: "Mostly clear"},
			{Criterion: "Evidence", PerformanceLevel: "Poor", Score: 2, Max: 10, Reason: "Little support"},
		},
		Score: 15,
		Usage: dto.UsageResponse{PromptTokens: 120, CompletionTokens: 80, TotalTokens: 200},
	}}

	app := fiber.New()
	handler.NewGradingHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/gradings"))

	body, err := json.Marshal(dto.GradingRequest{
		Instructions:      "Write an essay.",
		SubmissionText:    "An essay.",
		AuthenticityScore: 75,
		MaxPoints:         30,
		StudentName:       "Jordan",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}
