package contract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-edu/assess-go-api/internal/dto"
	"github.com/lumeo-edu/assess-go-api/internal/handler"
)

type stubAnalysisService struct {
	response dto.AnalysisResponse
}

func (s stubAnalysisService) Analyze(context.Context, dto.AnalysisRequest) (dto.AnalysisResponse, error) {
	return s.response, nil
}

func (s stubAnalysisService) Models() []dto.DetectorModelResponse {
	return nil
}

func TestAnalysisResponseContract(t *testing.T) {
	schema := compileSchema(t, "analysis.schema.json")

	svc := stubAnalysisService{response: dto.AnalysisResponse{
		ReferenceID: "0f1e9a52-6a48-4a6e-9c37-2f1f2f62ab11",
		GlobalScore: 53,
		TotalWords:  100,
		Reason:      "Analysis via PirateXX/AI-Content-Detector (weighted)",
		Segments: []dto.SegmentResponse{
			{Text: "First paragraph.", Probability: 0.95, Words: 50, IsFlagged: true, Contribution: 47.5},
			{Text: "Second paragraph.", Probability: 0.10, Words: 50, IsFlagged: false, Contribution: 5},
		},
	}}

	app := fiber.New()
	handler.NewAnalysisHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/analysis"))

	body, err := json.Marshal(dto.AnalysisRequest{Text: "First paragraph.\n\nSecond paragraph."})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func validateBody(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
