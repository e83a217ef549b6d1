package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// gradingSchema constrains the grading payload both in the chat-completion
// request (where the provider supports it) and defensively after extraction.
const gradingSchema = `{
	"type": "object",
	"properties": {
		"strengths": {"type": "array", "items": {"type": "string"}},
		"weaknesses": {"type": "array", "items": {"type": "string"}},
		"rubric_breakdown": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"criterion": {"type": "string"},
					"performance_level": {"type": "string"},
					"score": {"type": "number"},
					"max": {"type": "number"},
					"reason": {"type": "string"}
				},
				"required": ["criterion", "performance_level", "score", "max", "reason"],
				"additionalProperties": false
			}
		},
		"score": {"type": "number"}
	},
	"required": ["strengths", "weaknesses", "rubric_breakdown", "score"],
	"additionalProperties": false
}`

var (
	gradingSchemaOnce     sync.Once
	gradingSchemaCompiled *jsonschema.Schema
	gradingSchemaErr      error
)

func compiledGradingSchema() (*jsonschema.Schema, error) {
	gradingSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("grading.schema.json", strings.NewReader(gradingSchema)); err != nil {
			gradingSchemaErr = err
			return
		}
		gradingSchemaCompiled, gradingSchemaErr = compiler.Compile("grading.schema.json")
	})
	return gradingSchemaCompiled, gradingSchemaErr
}

// validateGradingPayload checks an extracted grading payload against the
// grading schema. Provider-side schema constraints are best effort only, so
// the payload is re-validated here before use.
func validateGradingPayload(payload []byte) error {
	schema, err := compiledGradingSchema()
	if err != nil {
		return fmt.Errorf("compile grading schema: %w", err)
	}

	var value interface{}
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	return nil
}
