package validator

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://anymaps.app/schemas/diagram-spec.json"

// diagramSchemaJSON describes what a model reply must look like. Extra
// properties are tolerated; "type" and "style" may be absent and are
// defaulted after decoding.
const diagramSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://anymaps.app/schemas/diagram-spec.json",
  "type": "object",
  "required": ["title", "central_topic", "nodes", "edges"],
  "properties": {
    "title": { "type": "string" },
    "central_topic": { "type": "string" },
    "nodes": {
      "type": "array",
      "items": { "$ref": "#/$defs/node" }
    },
    "edges": {
      "type": "array",
      "items": { "$ref": "#/$defs/edge" }
    },
    "summary": { "type": ["string", "null"] }
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["id", "label"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "description": { "type": ["string", "null"] },
        "type": { "type": "string", "enum": ["central", "primary", "secondary", "default"] },
        "icon": { "type": ["string", "null"] }
      }
    },
    "edge": {
      "type": "object",
      "required": ["source", "target"],
      "properties": {
        "source": { "type": "string", "minLength": 1 },
        "target": { "type": "string", "minLength": 1 },
        "label": { "type": ["string", "null"] },
        "style": { "type": "string", "enum": ["solid", "dashed", "dotted"] }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// diagramSchema compiles the embedded schema on first use.
func diagramSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(diagramSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal diagram schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add diagram schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile diagram schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 1 {
		return "schema validation failed: " + e.Violations[0]
	}
	return fmt.Sprintf("schema validation failed with %d errors: %s",
		len(e.Violations), strings.Join(e.Violations, "; "))
}

// ParseDocument decodes raw JSON text into the generic form the schema
// validator works on.
func ParseDocument(text string) (any, error) {
	return jsonschema.UnmarshalJSON(strings.NewReader(text))
}

// ValidateDocument checks a decoded JSON document against the DiagramSpec
// schema.
func ValidateDocument(doc any) error {
	sch, err := diagramSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		verr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return &SchemaError{Violations: []string{err.Error()}}
		}
		violations := collectViolations(verr)
		if len(violations) == 0 {
			violations = []string{verr.Error()}
		}
		return &SchemaError{Violations: violations}
	}
	return nil
}

// collectViolations walks the ValidationError tree and keeps the leaves,
// prefixed with their instance location.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
