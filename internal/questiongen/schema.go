package questiongen

import (
	"github.com/abhisek/az104/internal/llm"
	"github.com/abhisek/az104/internal/quiz"
)

// BatchSchema defines the JSON schema of a question batch response.
var BatchSchema = &llm.Schema{
	Name:        "az104-question-batch",
	Description: "A batch of AZ-104 multiple-choice questions",
	ArrayKey:    "questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The quiz question text.",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "An array of 4 possible answers.",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "The 0-based index of the correct answer in the 'options' array.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A detailed explanation of why the correct answer is right.",
						},
					},
					"required":             []any{"question", "options", "correctAnswerIndex", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []quiz.Question `json:"questions"`
}
