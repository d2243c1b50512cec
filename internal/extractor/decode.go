package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// cleanModelJSON removes Markdown code fences that models sometimes wrap
// around JSON output even when a JSON response type is requested.
func cleanModelJSON(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line, e.g. "json"
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeRecords parses the model's text output into raw records.
// Blank output means the statement held no transactions.
func DecodeRecords(text string) ([]RawRecord, error) {
	cleaned := cleanModelJSON(text)
	if cleaned == "" {
		return []RawRecord{}, nil
	}

	var records []RawRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if records == nil {
		records = []RawRecord{}
	}
	return records, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in model response")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("empty content in model response")
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
