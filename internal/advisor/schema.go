package advisor

import "github.com/abhisek/giasu/internal/llm"

// AdviceSchema defines the JSON schema for advice responses.
var AdviceSchema = &llm.Schema{
	Name:        "university-advice",
	Description: "A short explanation of ranked university recommendations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences addressed to the student about the list as a whole",
			},
			"universities": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"university_id": map[string]any{
							"type":        "integer",
							"description": "The id of the university exactly as given",
						},
						"fit": map[string]any{
							"type":        "string",
							"enum":        []any{"safe", "match", "reach"},
							"description": "safe: expected score well above the average; match: close to the average; reach: near the minimum",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why this university fits the student",
						},
					},
					"required":             []any{"university_id", "fit", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary", "universities"},
		"additionalProperties": false,
	},
}
