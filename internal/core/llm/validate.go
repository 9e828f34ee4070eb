package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func validateWith(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ChatCompletionSchema describes the part of a chat/completions response we
// rely on: at least one choice whose message content is a non-blank string.
func ChatCompletionSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"choices"},
		"properties": map[string]any{
			"choices": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"message"},
					"properties": map[string]any{
						"message": map[string]any{
							"type":     "object",
							"required": []string{"content"},
							"properties": map[string]any{
								"content": map[string]any{"type": "string", "pattern": `\S`},
							},
						},
					},
				},
			},
		},
	}
}

var (
	chatSchemaOnce sync.Once
	chatSchema     *jsonschema.Schema
	chatSchemaErr  error
)

// ValidateChatCompletion checks a raw chat/completions body before decoding.
// The schema is compiled once per process.
func ValidateChatCompletion(raw []byte) error {
	chatSchemaOnce.Do(func() {
		chatSchema, chatSchemaErr = compileSchema(ChatCompletionSchema())
	})
	if chatSchemaErr != nil {
		return chatSchemaErr
	}
	return validateWith(chatSchema, raw)
}
