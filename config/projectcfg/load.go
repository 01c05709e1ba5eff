package projectcfg

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/naccdata/flywheel-extensions/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/project.schema.json
var projectSchemaJSON []byte

var (
	projectSchemaOnce sync.Once
	projectSchema     *jsonschema.Schema
	projectSchemaErr  error
)

func loadProjectSchema() (*jsonschema.Schema, error) {
	projectSchemaOnce.Do(func() {
		projectSchema, projectSchemaErr = schema.Compile("project.schema.json", projectSchemaJSON)
	})
	return projectSchema, projectSchemaErr
}

// DocumentError locates a failure inside the project file.
type DocumentError struct {
	Index int // zero based document index
	Line  int // first line of the document, 0 when unknown
	Err   error
}

func (e *DocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("document %d (line %d): %v", e.Index+1, e.Line, e.Err)
	}
	return fmt.Sprintf("document %d: %v", e.Index+1, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Load reads a project file and returns one Root per non-empty document.
func Load(path string) ([]*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	roots, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return roots, nil
}

// Parse decodes every document of a project file, validating each against
// the embedded schema before decoding it.
func Parse(data []byte) ([]*Root, error) {
	sch, err := loadProjectSchema()
	if err != nil {
		return nil, err
	}

	var roots []*Root
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for i := 0; ; i++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DocumentError{Index: i, Err: err}
		}
		if isEmptyDocument(&node) {
			continue
		}

		content, err := yaml.Marshal(&node)
		if err != nil {
			return nil, &DocumentError{Index: i, Line: node.Line, Err: err}
		}
		if _, err := schema.ValidateYAML(sch, content); err != nil {
			return nil, &DocumentError{Index: i, Line: node.Line, Err: err}
		}

		var root Root
		if err := node.Decode(&root); err != nil {
			return nil, &DocumentError{Index: i, Line: node.Line, Err: err}
		}
		roots = append(roots, &root)
	}
	return roots, nil
}

func isEmptyDocument(n *yaml.Node) bool {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return true
		}
		n = n.Content[0]
	}
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
