package config

import (
	"encoding/json"
	"sync"

	"github.com/grovetools/reorder/schema"
	"github.com/invopop/jsonschema"
)

// schemaResourceName is the name the compiled schema is registered under.
const schemaResourceName = "reorder.schema.json"

// GenerateSchema generates the JSON Schema for reorder.yml. Sections owned
// by other packages (such as `logging`) are allowed as additional properties.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		Anonymous:                  true,
		FieldNameTag:               "yaml",
	}

	type BaseConfig struct {
		Version string     `yaml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
		List    ListConfig `yaml:"list,omitempty" jsonschema:"description=Reorder engine settings"`
		TUI     TUIConfig  `yaml:"tui,omitempty" jsonschema:"description=Interactive list settings"`
	}

	s := r.Reflect(&BaseConfig{})
	s.Title = "reorder configuration"
	s.Description = "Schema for reorder.yml / reorder.toml."
	s.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(s, "", "  ")
}

var (
	validatorOnce sync.Once
	validator     *schema.Validator
	validatorErr  error
)

// schemaValidator compiles the generated schema once per process.
func schemaValidator() (*schema.Validator, error) {
	validatorOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			validatorErr = err
			return
		}
		validator, validatorErr = schema.NewValidator(schemaResourceName, data)
	})
	return validator, validatorErr
}
