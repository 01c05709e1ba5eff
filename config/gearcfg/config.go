package gearcfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Well known locations inside a gear run directory.
const (
	DefaultDir       = "/flywheel/v0"
	ManifestFileName = "manifest.json"
	ConfigFileName   = "config.json"
	InputDirName     = "input"
	OutputDirName    = "output"
	ResultFileName   = "result.json"
)

// Gear resolves the paths of one gear run directory.
type Gear struct {
	Dir string
}

// ManifestPath returns the path of manifest.json.
func (g Gear) ManifestPath() string { return filepath.Join(g.Dir, ManifestFileName) }

// ConfigPath returns the path of config.json.
func (g Gear) ConfigPath() string { return filepath.Join(g.Dir, ConfigFileName) }

// InputDir returns the directory holding one subdirectory per file input.
func (g Gear) InputDir() string { return filepath.Join(g.Dir, InputDirName) }

// OutputDir returns the directory the Result is written to.
func (g Gear) OutputDir() string { return filepath.Join(g.Dir, OutputDirName) }

// ResultPath returns the path of output/result.json.
func (g Gear) ResultPath() string { return filepath.Join(g.OutputDir(), ResultFileName) }

// LoadConfig reads config.json. A missing file yields an empty Config so that
// required keys are reported by validation rather than as read errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{Config: map[string]any{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes config.json content. Numbers are kept as json.Number.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if cfg.Config == nil {
		cfg.Config = map[string]any{}
	}
	return cfg, nil
}

// APIKey returns the key of the first api-key input, sorted by input name.
func (c *Config) APIKey() string {
	names := make([]string, 0, len(c.Inputs))
	for name := range c.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if in := c.Inputs[name]; in != nil && in.Base == "api-key" && in.Key != "" {
			return in.Key
		}
	}
	return ""
}

// InputPath returns the file path of a file input. When config.json has no
// location for the input the single file under <input>/<name>/ is used.
// ok is false when the input is not supplied.
func (g Gear) InputPath(c *Config, name string) (path string, ok bool, err error) {
	if c != nil {
		if in := c.Inputs[name]; in != nil && in.Location != nil && in.Location.Path != "" {
			return in.Location.Path, true, nil
		}
	}
	dir := filepath.Join(g.InputDir(), name)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading input directory %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	switch len(files) {
	case 0:
		return "", false, nil
	case 1:
		return filepath.Join(dir, files[0]), true, nil
	default:
		return "", false, fmt.Errorf("input %q: expected one file in %s, found %d", name, dir, len(files))
	}
}
