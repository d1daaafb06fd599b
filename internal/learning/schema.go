package learning

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// storeSchema describes the on-disk shape of learned_qa.json. Validating on
// load catches truncated or hand-edited files before they reach the map.
const storeSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"required": ["normalized_query", "answer", "confidence", "source_method"],
		"properties": {
			"normalized_query": {"type": "string"},
			"original_query":   {"type": "string"},
			"answer":           {"type": "string"},
			"confidence":       {"type": "number", "minimum": 0, "maximum": 1},
			"source_method":    {"type": "string", "enum": ["learned", "simple_qa", "web_extraction", "correction"]},
			"hit_count":        {"type": "integer", "minimum": 0},
			"created_at":       {"type": "string"},
			"last_used_at":     {"type": "string"}
		}
	}
}`

var compiledStoreSchema = gojsonschema.NewStringLoader(storeSchema)

func validateStoreDocument(data []byte) error {
	result, err := gojsonschema.Validate(compiledStoreSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("store file does not match schema:\n- %s", strings.Join(errs, "\n- "))
}
