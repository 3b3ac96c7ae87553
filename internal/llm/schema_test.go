package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchSchema() *Schema {
	return &Schema{
		Name:     "test-batch",
		ArrayKey: "questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 2,
							},
							"correctAnswerIndex": map[string]any{"type": "integer"},
							"explanation":        map[string]any{"type": "string"},
							"difficulty":         map[string]any{"type": "string", "enum": []string{"medium", "hard"}},
						},
						"required": []string{"question", "options", "correctAnswerIndex", "explanation"},
					},
				},
			},
			"required": []string{"questions"},
		},
	}
}

const oneQuestion = `{"question":"Which SKU supports zone redundancy?","options":["Basic","Standard"],"correctAnswerIndex":1,"explanation":"Standard."}`

func TestSchemaConform_Valid(t *testing.T) {
	out, err := batchSchema().Conform(json.RawMessage(`{"questions":[` + oneQuestion + `]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[`+oneQuestion+`]}`, string(out))
}

func TestSchemaConform_StripsFences(t *testing.T) {
	raw := "```json\n{\"questions\":[" + oneQuestion + "]}\n```"
	out, err := batchSchema().Conform(json.RawMessage(raw))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[`+oneQuestion+`]}`, string(out))
}

func TestSchemaConform_WrapsBareArray(t *testing.T) {
	out, err := batchSchema().Conform(json.RawMessage(`[` + oneQuestion + `]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[`+oneQuestion+`]}`, string(out))
}

func TestSchemaConform_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `here are your questions`},
		{"missing field", `{"questions":[{"question":"q","options":["a","b"],"correctAnswerIndex":0}]}`},
		{"wrong type", `{"questions":[{"question":"q","options":["a","b"],"correctAnswerIndex":"0","explanation":"e"}]}`},
		{"too few options", `{"questions":[{"question":"q","options":["a"],"correctAnswerIndex":0,"explanation":"e"}]}`},
		{"bad enum", `{"questions":[{"question":"q","options":["a","b"],"correctAnswerIndex":0,"explanation":"e","difficulty":"easy"}]}`},
	}
	s := batchSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Conform(json.RawMessage(tt.raw))
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestSchemaConform_NoArrayKeyKeepsArray(t *testing.T) {
	s := &Schema{Name: "list", Definition: map[string]any{"type": "array"}}
	out, err := s.Conform(json.RawMessage(`[1,2]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(out))
}

func TestFinish(t *testing.T) {
	resp, err := finish(Request{}, &Response{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}})
	require.NoError(t, err)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, 7, resp.Usage.TotalTokens)

	_, err = finish(Request{}, &Response{Content: json.RawMessage(`{"q`), StopReason: StopMaxTokens})
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}
