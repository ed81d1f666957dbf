// Package schema checks decoded YAML or TOML documents against a JSON Schema.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Problem is one leaf failure of a validation.
type Problem struct {
	// Path is the JSON pointer of the offending value, "/" for the document.
	Path    string
	Message string
}

// ValidationError lists every leaf failure, sorted by path.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Problems)+1)
	lines = append(lines, "schema validation failed:")
	for _, p := range e.Problems {
		lines = append(lines, fmt.Sprintf("- %s: %s", p.Path, p.Message))
	}
	return strings.Join(lines, "\n")
}

// Validator holds one compiled schema.
type Validator struct {
	compiled *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under name.
func NewValidator(name string, schemaData []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate checks doc, which may be anything that marshals to JSON. Decoders
// hand back Go integer types the validator rejects, so doc goes through JSON
// first. A schema mismatch is returned as *ValidationError.
func (v *Validator) Validate(doc interface{}) error {
	normalized, err := normalize(doc)
	if err != nil {
		return err
	}

	err = v.compiled.Validate(normalized)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	out := &ValidationError{}
	collect(verr, out)
	sort.SliceStable(out.Problems, func(i, j int) bool {
		return out.Problems[i].Path < out.Problems[j].Path
	})
	return out
}

func normalize(doc interface{}) (interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document for validation: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode document for validation: %w", err)
	}
	return out, nil
}

func collect(err *jsonschema.ValidationError, out *ValidationError) {
	if len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		out.Problems = append(out.Problems, Problem{Path: path, Message: err.Message})
	}
	for _, cause := range err.Causes {
		collect(cause, out)
	}
}
