package gearcfg

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/manifest.schema.json
var manifestSchemaJSON []byte

var (
	manifestSchemaOnce sync.Once
	manifestSchema     *jsonschema.Schema
	manifestSchemaErr  error
)

func loadManifestSchema() (*jsonschema.Schema, error) {
	manifestSchemaOnce.Do(func() {
		manifestSchema, manifestSchemaErr = schema.Compile("manifest.schema.json", manifestSchemaJSON)
	})
	return manifestSchema, manifestSchemaErr
}

// LoadManifest reads and validates a manifest file. Every failure is
// reported as *model.ManifestError.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.ManifestError{Path: path, Err: err}
	}
	m, err := ParseManifest(data)
	if err != nil {
		var me *model.ManifestError
		if errors.As(err, &me) {
			me.Path = path
			return nil, me
		}
		return nil, &model.ManifestError{Path: path, Err: err}
	}
	return m, nil
}

// ParseManifest decodes and validates manifest content.
func ParseManifest(data []byte) (*Manifest, error) {
	if err := checkDuplicateKeys(data); err != nil {
		return nil, &model.ManifestError{Err: err}
	}

	sch, err := loadManifestSchema()
	if err != nil {
		return nil, err
	}
	if _, err := schema.ValidateYAML(sch, data); err != nil {
		return nil, &model.ManifestError{Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, &model.ManifestError{Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, &model.ManifestError{Err: err}
	}
	return &m, nil
}

// Validate checks internal consistency: known key types, defaults and enum
// values conforming to their declared type.
func (m *Manifest) Validate() error {
	for _, name := range m.ConfigKeys() {
		k := m.Config[name]
		if k == nil {
			return fmt.Errorf("config.%s: empty definition", name)
		}
		if !k.Type.Known() {
			return fmt.Errorf("config.%s: unknown type %q", name, k.Type)
		}
		if k.Optional && k.RequiredFlag != nil && *k.RequiredFlag {
			return fmt.Errorf("config.%s: both required and optional", name)
		}
		if k.Default != nil && !conforms(k.Type, k.Default) {
			return fmt.Errorf("config.%s: default %v is not a %s", name, k.Default, k.Type)
		}
		for _, e := range k.Enum {
			if !conforms(k.Type, e) {
				return fmt.Errorf("config.%s: enum value %v is not a %s", name, e, k.Type)
			}
		}
	}
	return nil
}

// ConfigKeys returns the declared config key names in sorted order.
func (m *Manifest) ConfigKeys() []string {
	keys := make([]string, 0, len(m.Config))
	for k := range m.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkDuplicateKeys streams the JSON tokens and rejects objects that define
// the same key twice; json.Unmarshal silently keeps the last one.
func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := walkJSON(dec, ""); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("syntax: trailing data after manifest object")
	}
	return nil
}

func walkJSON(dec *json.Decoder, path string) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("syntax: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		seen := make(map[string]struct{})
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("syntax: %w", err)
			}
			key, _ := tok.(string)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%s: duplicate key %q", pathOrRoot(path), key)
			}
			seen[key] = struct{}{}
			if err := walkJSON(dec, path+"/"+key); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; dec.More(); i++ {
			if err := walkJSON(dec, fmt.Sprintf("%s/%d", path, i)); err != nil {
				return err
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("syntax: %w", err)
	}
	return nil
}

func pathOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
