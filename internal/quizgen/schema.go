package quizgen

import "github.com/quizhive/quizgen/internal/llm"

// questionSchema constrains model output to the question shape. The
// provider-side validator rejects anything that does not match, which is
// cheaper than parsing and structurally validating garbage.
var questionSchema = &llm.Schema{
	Name:        "quiz_question",
	Description: "A single multiple-choice quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 500,
			},
			"answer": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"kind": map[string]any{
				"type": "string",
				"enum": []any{"recall", "applied"},
			},
			"choices": map[string]any{
				"type":     "array",
				"minItems": 4,
				"maxItems": 4,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
			"explanation": map[string]any{
				"type":      "string",
				"maxLength": 1000,
			},
		},
		"required":             []any{"prompt", "answer", "kind", "choices", "explanation"},
		"additionalProperties": false,
	},
}
