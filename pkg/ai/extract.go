package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON indicates the assistant's reply did not contain an extractable
// JSON payload.
var ErrNoJSON = errors.New("response did not contain extractable JSON")

var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// ExtractObject isolates the JSON object in free-form model text: fence
// markers are stripped, then everything between the first '{' and the last
// '}' is taken. Models routinely wrap valid JSON in prose or code fences;
// this tolerates both.
func ExtractObject(raw string) ([]byte, error) {
	return extractPayload(raw, '{', '}')
}

// ExtractArray is ExtractObject for top-level JSON arrays.
func ExtractArray(raw string) ([]byte, error) {
	return extractPayload(raw, '[', ']')
}

func extractPayload(raw string, opening, closing byte) ([]byte, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	start := strings.IndexByte(cleaned, opening)
	end := strings.LastIndexByte(cleaned, closing)
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: no balanced %c...%c delimiters", ErrNoJSON, opening, closing)
	}

	payload := []byte(cleaned[start : end+1])
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: content between delimiters is not valid JSON", ErrNoJSON)
	}
	return payload, nil
}
