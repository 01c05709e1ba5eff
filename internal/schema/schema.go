// Package schema compiles embedded JSON schemas and validates YAML or JSON
// documents against them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

// Error is the first leaf violation reported by a schema validation.
type Error struct {
	Location string // JSON pointer into the document, "" for the root
	Message  string
}

func (e *Error) Error() string {
	if e.Location == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Compile compiles a schema document registered under name.
func Compile(name string, data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return sch, nil
}

// ValidateYAML converts content (YAML or JSON) to JSON, validates it and
// returns the decoded document.
func ValidateYAML(sch *jsonschema.Schema, content []byte) (any, error) {
	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}
	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := Validate(sch, document); err != nil {
		return nil, err
	}
	return document, nil
}

// Validate validates a decoded JSON document and flattens the violation tree
// to its first leaf.
func Validate(sch *jsonschema.Schema, document any) error {
	err := sch.Validate(document)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &Error{Location: ve.InstanceLocation, Message: ve.Message}
}
