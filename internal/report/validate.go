package report

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

// documentSchema is the structural contract for the published result
// document. Unknown extra fields are allowed everywhere so newer producers
// keep working; only the shapes the consumers rely on are pinned.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["reports", "generated_at"],
  "properties": {
    "reports": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kernel_name", "language", "implementation", "protocol_version", "results", "timestamp", "total_duration"],
        "properties": {
          "kernel_name": {"type": "string", "minLength": 1},
          "language": {"type": "string"},
          "implementation": {"type": "string"},
          "protocol_version": {"type": "string"},
          "timestamp": {"type": "string"},
          "total_duration": {"type": "integer", "minimum": 0},
          "startup_failure": {"type": "string"},
          "results": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "category", "duration", "result"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "category": {"enum": ["tier1_basic", "tier2_interactive", "tier3_rich_output", "tier4_advanced"]},
                "description": {"type": "string"},
                "message_type": {"type": "string"},
                "duration": {"type": "integer", "minimum": 0},
                "result": {
                  "type": "object",
                  "required": ["status"],
                  "properties": {
                    "status": {"enum": ["pass", "fail", "unsupported", "timeout", "partial_pass"]},
                    "reason": {"type": "string"},
                    "failure_kind": {"enum": ["timeout", "protocol_error", "unexpected_message_type", "unexpected_content", "kernel_error", "harness_error"]},
                    "score": {"type": "number", "minimum": 0, "maximum": 1},
                    "notes": {"type": "string"}
                  },
                  "allOf": [
                    {"if": {"properties": {"status": {"const": "fail"}}}, "then": {"required": ["reason"]}},
                    {"if": {"properties": {"status": {"const": "partial_pass"}}}, "then": {"required": ["score"]}}
                  ]
                }
              }
            }
          }
        }
      }
    },
    "generated_at": {"type": "string"},
    "revision": {"type": "string"}
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile([]byte(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}
	return schema, nil
})

// DecodeDocument validates and decodes a published result document. It fails
// fast on the first structural problem; a partially valid document is never
// returned. Validation is all-or-nothing, so a nil error means every derived
// view can be computed without further checks.
func DecodeDocument(data []byte) (*Document, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	result := schema.ValidateJSON(data)
	if !result.IsValid() {
		return nil, fmt.Errorf("document schema validation failed: %v", result.Errors)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	seen := make(map[string]bool, len(doc.Reports))
	for _, r := range doc.Reports {
		if seen[r.KernelName] {
			return nil, fmt.Errorf("duplicate kernel name %q", r.KernelName)
		}
		seen[r.KernelName] = true
	}
	return &doc, nil
}
