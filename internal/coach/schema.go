package coach

import "github.com/abhisek/mindcheck/internal/llm"

// NoteSchema defines the JSON schema for a coach note.
var NoteSchema = &llm.Schema{
	Name:        "coach-note",
	Description: "A short, supportive note personalised to a student's self-reported lifestyle",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"note": map[string]any{
				"type":        "string",
				"description": "One or two warm, non-diagnostic sentences addressed to the student",
			},
			"focus": map[string]any{
				"type":        "string",
				"description": "The single lifestyle indicator the note focuses on",
				"enum": []any{
					"sleep", "academics", "bullying", "friends", "homesickness",
					"food", "sports", "social", "study", "screen",
				},
			},
		},
		"required":             []any{"note", "focus"},
		"additionalProperties": false,
	},
}
