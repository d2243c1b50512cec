package extractor

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`},
		{"whitespace", "  \n[]\n ", "[]"},
		{"json fence", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"bare fence", "```\n[]\n```", "[]"},
		{"single line fence", "```json[]```", "[]"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanModelJSON(tt.input))
		})
	}
}

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords("```json\n[{\"date\":\"2024-01-05\",\"amount\":\"45.10\"}]\n```")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-05", *records[0].Date)
	assert.Equal(t, "45.10", records[0].Amount.String())
	assert.Nil(t, records[0].Description)
	assert.Nil(t, records[0].Type)
}

func TestDecodeRecords_EmptyAndNull(t *testing.T) {
	for _, input := range []string{"", "   ", "null", "[]"} {
		records, err := DecodeRecords(input)
		require.NoError(t, err, input)
		assert.NotNil(t, records, input)
		assert.Empty(t, records, input)
	}
}

func TestDecodeRecords_Invalid(t *testing.T) {
	_, err := DecodeRecords(`{"date": "2024-01-01"}`)
	assert.Error(t, err)

	_, err = DecodeRecords(`[{"amount": "twelve"}]`)
	assert.Error(t, err)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("[{"), genai.Text("}]")}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "[{}]", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.Error(t, err)
}

func TestResponseSchema(t *testing.T) {
	schema := ResponseSchema([]string{"Groceries", "Misc"})

	assert.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.ElementsMatch(t, []string{"date", "description", "amount", "type", "category"}, schema.Items.Required)
	assert.Equal(t, []string{"DEBIT", "CREDIT"}, schema.Items.Properties["type"].Enum)
	assert.Equal(t, []string{"Groceries", "Misc"}, schema.Items.Properties["category"].Enum)
	assert.Equal(t, genai.TypeNumber, schema.Items.Properties["amount"].Type)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]string{"Groceries", "Travel", "Misc"})
	assert.Contains(t, prompt, "Groceries, Travel, Misc")
	assert.Contains(t, prompt, "YYYY-MM-DD")
}
