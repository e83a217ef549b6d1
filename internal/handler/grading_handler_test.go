package handler_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/handler"
	"github.com/lumeo-edu/assess-go-api/internal/service"
	"github.com/lumeo-edu/assess-go-api/pkg/ai"
)

type mockGradingService struct {
	lastPayload dto.GradingRequest
	response    dto.GradingResponse
	err         error
}

func (m *mockGradingService) Grade(_ context.Context, req dto.GradingRequest) (dto.GradingResponse, error) {
	m.lastPayload = req
	if m.err != nil {
		return dto.GradingResponse{}, m.err
	}
	return m.response, nil
}

func newGradingApp(svc service.GradingService) *fiber.App {
	app := fiber.New()
	handler.NewGradingHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/gradings"))
	return app
}

func gradingPayload() dto.GradingRequest {
	return dto.GradingRequest{
		Instructions:      "Write an essay.",
		SubmissionText:    "An essay.",
		AuthenticityScore: 10,
		MaxPoints:         30,
		StudentName:       "Jordan",
	}
}

func TestGradingHandler_Success(t *testing.T) {
	svc := &mockGradingService{response: dto.GradingResponse{
		ReferenceID: "ref-1",
		Strengths:   []string{"Clear thesis", "Good structure"},
		Weaknesses:  []string{"Few citations", "Weak conclusion"},
		Score:       15,
	}}
	app := newGradingApp(svc)

	resp := postJSON(t, app, "/api/v1/gradings", gradingPayload())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.GradingResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "submission graded", response.Message)
	require.Equal(t, 15, response.Data.Score)
	require.Equal(t, "Jordan", svc.lastPayload.StudentName)
}

func TestGradingHandler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "assessor unavailable", err: service.ErrAssessorUnavailable, statusCode: fiber.StatusServiceUnavailable},
		{name: "rubric mismatch", err: service.ErrRubricMismatch, statusCode: fiber.StatusBadGateway},
		{name: "incomplete assessment", err: service.ErrIncompleteAssessment, statusCode: fiber.StatusBadGateway},
		{name: "no json", err: ai.ErrNoJSON, statusCode: fiber.StatusBadGateway},
		{name: "llm upstream", err: ai.ErrUpstream, statusCode: fiber.StatusBadGateway},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newGradingApp(&mockGradingService{err: tc.err})

			resp := postJSON(t, app, "/api/v1/gradings", gradingPayload())
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}
