package corpus

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const corpusSchemaURL = "schema://corpus.json"

// corpusSchema describes the accepted corpus document. Absent sections are
// allowed (they yield an empty pool); present ones must be well formed.
var corpusSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"characters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recognitionList": map[string]any{
					"type":  "array",
					"items": groupSchema,
				},
			},
		},
	},
}

var groupSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"source": map[string]any{"type": "string"},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"char":   map[string]any{"type": "string"},
					"phrase": map[string]any{"type": "string"},
					"pinyin": map[string]any{"type": "string"},
					"ref":    map[string]any{"type": "string"},
				},
			},
		},
	},
	"required": []any{"items"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateCorpus checks a decoded JSON document against corpusSchema.
func validateCorpus(doc any) error {
	compileOnce.Do(func() {
		compiled, compileErr = compileCorpusSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile corpus schema: %w", compileErr)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileCorpusSchema() (*jsonschema.Schema, error) {
	// The compiler wants a plain decoded JSON value, so round-trip the
	// Go literal through encoding/json.
	raw, err := json.Marshal(corpusSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(corpusSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(corpusSchemaURL)
}
