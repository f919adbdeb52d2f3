package settings

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"
)

// GenerateSchema reflects Settings into a JSON Schema document, the way the
// teacher's config package reflects its own config struct: expanded struct
// references, yaml-tag-derived property names, no unknown-field leniency.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Settings{})
	schema.Title = "sorcery-desktop settings"
	schema.Description = "Persisted configuration for the srcuri:// protocol handler."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschemav5.Schema
	compileErr     error
)

func compiled() (*jsonschemav5.Schema, error) {
	compiledOnce.Do(func() {
		raw, err := GenerateSchema()
		if err != nil {
			compileErr = err
			return
		}
		compiler := jsonschemav5.NewCompiler()
		if err := compiler.AddResource("settings.json", strings.NewReader(string(raw))); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("settings.json")
	})
	return compiledSchema, compileErr
}

// Validate checks s against the generated JSON Schema.
func Validate(s Settings) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings for validation: %w", err)
	}
	var asMap interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return fmt.Errorf("unmarshal settings for validation: %w", err)
	}

	if err := schema.Validate(asMap); err != nil {
		if ve, ok := err.(*jsonschemav5.ValidationError); ok {
			var messages []string
			collectErrors(ve, &messages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(messages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func collectErrors(err *jsonschemav5.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
