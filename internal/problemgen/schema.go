package problemgen

import "github.com/abhisek/questioner/internal/llm"

// AssessmentSchema is the shape of a Quality Filter response. Optional
// strings may be null, which decodes to "".
var AssessmentSchema = &llm.Schema{
	Name: "assessment-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_suitable": map[string]any{
				"type":        "boolean",
				"description": "Whether the excerpt can be turned into a statistics exam question",
			},
			"missing_info": map[string]any{
				"type":        []any{"string", "null"},
				"description": "Key information the excerpt lacks, empty when complete",
			},
			"potential_task": map[string]any{
				"type":        []any{"string", "null"},
				"description": "The kind of question the excerpt supports",
			},
		},
		"required": []any{"is_suitable"},
	},
}

// QuestionSchema is the shape of a Question Generator response.
var QuestionSchema = &llm.Schema{
	Name: "exam-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stem": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]any{
				"type":                 "object",
				"minProperties":        OptionCount,
				"maxProperties":        OptionCount,
				"additionalProperties": map[string]any{"type": "string"},
				"description":          "Exactly four options keyed A to D",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "Key of the correct option",
			},
			"analysis": map[string]any{
				"type":        "string",
				"description": "Why the answer is right and each distractor is wrong",
			},
		},
		"required": []any{"stem", "options", "answer", "analysis"},
	},
}
