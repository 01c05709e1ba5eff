// Package gearcfg defines the gear manifest (manifest.json) and the runtime
// configuration (config.json) handed to the gear by the Flywheel engine.
package gearcfg

// KeyType is the declared type of a manifest config key.
type KeyType string

const (
	TypeString  KeyType = "string"
	TypeInteger KeyType = "integer"
	TypeNumber  KeyType = "number"
	TypeBoolean KeyType = "boolean"
	TypeArray   KeyType = "array"
	TypeObject  KeyType = "object"
)

// Known reports whether t is one of the supported key types.
func (t KeyType) Known() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

// Manifest is the static gear descriptor.
type Manifest struct {
	Name        string                `json:"name"`
	Label       string                `json:"label,omitempty"`
	Description string                `json:"description,omitempty"`
	Version     string                `json:"version"`
	Author      string                `json:"author,omitempty"`
	License     string                `json:"license,omitempty"`
	Config      map[string]*ConfigKey `json:"config,omitempty"`
	Inputs      map[string]*InputSpec `json:"inputs,omitempty"`
}

// ConfigKey declares one configuration key.
type ConfigKey struct {
	Type         KeyType `json:"type"`
	Optional     bool    `json:"optional,omitempty"`
	RequiredFlag *bool   `json:"required,omitempty"`
	Default      any     `json:"default,omitempty"`
	Description  string  `json:"description,omitempty"`
	Enum         []any   `json:"enum,omitempty"`
}

// Required reports whether a value must be supplied. An explicit
// "required" flag wins; otherwise keys are required unless marked optional
// or given a default.
func (k *ConfigKey) Required() bool {
	if k.RequiredFlag != nil {
		return *k.RequiredFlag
	}
	return !k.Optional && k.Default == nil
}

// InputSpec declares one gear input.
type InputSpec struct {
	Base        string `json:"base"` // file | api-key | context
	Optional    bool   `json:"optional,omitempty"`
	Description string `json:"description,omitempty"`
}

// Config is the runtime configuration written by the engine to config.json.
type Config struct {
	Config      map[string]any    `json:"config"`
	Inputs      map[string]*Input `json:"inputs,omitempty"`
	Destination map[string]any    `json:"destination,omitempty"`
}

// Input is one supplied gear input.
type Input struct {
	Base     string    `json:"base"`
	Key      string    `json:"key,omitempty"` // api-key inputs
	Location *Location `json:"location,omitempty"`
}

// Location points to a file input inside the gear input directory.
type Location struct {
	Path string `json:"path"`
	Name string `json:"name"`
}
