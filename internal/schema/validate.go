package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var rawOutputSchema = compileRawOutputSchema()

func compileRawOutputSchema() *jsonschema.Schema {
	b, err := json.Marshal(BuildRawOutputSchema())
	if err != nil {
		panic(fmt.Sprintf("marshal raw output schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("raw_output.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add raw output schema: %v", err))
	}
	compiled, err := compiler.Compile("raw_output.json")
	if err != nil {
		panic(fmt.Sprintf("compile raw output schema: %v", err))
	}
	return compiled
}

// StripCodeFence removes markdown code-fence wrappers that vision models
// sometimes add around JSON despite instructions not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	}
	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// ParseAndValidate strips code fences, parses the completion as JSON,
// validates it against the raw output schema, and decodes it into a
// RawExtractionOutput with defaults applied. The returned error text is fed
// back to the model in repair prompts, so it keeps the validator's detail.
func ParseAndValidate(completion string) (*RawExtractionOutput, error) {
	text := StripCodeFence(completion)

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parsing model JSON: %w", err)
	}
	if err := rawOutputSchema.Validate(payload); err != nil {
		return nil, fmt.Errorf("model output does not match schema: %w", err)
	}

	var out RawExtractionOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decoding model output: %w", err)
	}
	if out.DocumentType == "" {
		out.DocumentType = "UNKNOWN"
	}
	return &out, nil
}
