package content

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// corpusSchema defines the JSON shape a corpus file must satisfy
// before it is trusted to build sessions.
var corpusSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"translation": map[string]any{
			"type":        "string",
			"description": "Short translation label, e.g. KJV",
		},
		"books": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
					"chapters": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"chapter": map[string]any{"type": "integer", "minimum": 1},
								"verses": map[string]any{
									"type":     "array",
									"minItems": 1,
									"items": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"verse": map[string]any{"type": "integer", "minimum": 1},
											"text":  map[string]any{"type": "string", "minLength": 1},
										},
										"required":             []any{"verse", "text"},
										"additionalProperties": false,
									},
								},
							},
							"required":             []any{"chapter", "verses"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"name", "chapters"},
				"additionalProperties": false,
			},
		},
		"plan": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"day":           map[string]any{"type": "integer", "minimum": 1},
					"title":         map[string]any{"type": "string"},
					"book":          map[string]any{"type": "string", "minLength": 1},
					"start_chapter": map[string]any{"type": "integer", "minimum": 1},
					"start_verse":   map[string]any{"type": "integer", "minimum": 1},
					"end_chapter":   map[string]any{"type": "integer", "minimum": 1},
					"end_verse":     map[string]any{"type": "integer", "minimum": 1},
				},
				"required":             []any{"day", "book", "start_chapter", "start_verse", "end_chapter", "end_verse"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"translation", "books", "plan"},
	"additionalProperties": false,
}

// validateCorpus checks raw corpus JSON against the schema.
func validateCorpus(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	defBytes, err := json.Marshal(corpusSchema)
	if err != nil {
		return fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://corpus.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("corpus schema validation failed: %w", err)
	}
	return nil
}
