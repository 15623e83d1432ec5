package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrNoBlueprint indicates the completion did not contain a parsable
// file-tree description.
var ErrNoBlueprint = errors.New("no parsable blueprint in model response")

// Schema is the JSON schema the model is asked to follow. It is shipped to
// the provider inside the prompt and enforced again on the way back.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["entries"],
  "additionalProperties": false,
  "properties": {
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path", "type"],
        "additionalProperties": false,
        "properties": {
          "path": {"type": "string", "pattern": "^\\./.+"},
          "type": {"type": "string", "enum": ["file", "directory"]},
          "content": {"type": "string"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(Schema)

type document struct {
	Entries []Entry `json:"entries"`
}

// Decode turns a raw completion into a validated Blueprint. The raw string
// may be wrapped in a markdown code fence; everything else must be the JSON
// document described by Schema.
func Decode(raw string) (Blueprint, error) {
	raw = stripFences(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrNoBlueprint)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBlueprint, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrNoBlueprint, strings.Join(details, "; "))
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBlueprint, err)
	}
	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("%w: empty entry list", ErrNoBlueprint)
	}

	bp := Blueprint(doc.Entries)
	if err := bp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid blueprint: %w", err)
	}
	return bp, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag. Models add one despite instructions often enough.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first == "" || !strings.ContainsAny(first, "{[") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
