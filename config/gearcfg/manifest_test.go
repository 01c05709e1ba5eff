package gearcfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

const testManifest = `{
  "name": "create-project",
  "label": "Create Project",
  "version": "0.1.0",
  "config": {
    "group": {"type": "string", "description": "parent group id"},
    "project_label": {"type": "string"},
    "description": {"type": "string", "optional": true},
    "dry_run": {"type": "boolean", "default": false},
    "retries": {"type": "integer", "default": 0, "enum": [0, 1]},
    "labels": {"type": "object", "optional": true},
    "site": {"type": "string", "required": true, "default": "fw"}
  },
  "inputs": {
    "api_key": {"base": "api-key"},
    "project_file": {"base": "file", "optional": true}
  }
}`

func TestLoadManifest_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if m.Name != "create-project" || m.Version != "0.1.0" {
		t.Errorf("unexpected manifest header: %+v", m)
	}
	want := []string{"description", "dry_run", "group", "labels", "project_label", "retries", "site"}
	if got := strings.Join(m.ConfigKeys(), ","); got != strings.Join(want, ",") {
		t.Errorf("ConfigKeys() = %s", got)
	}
	if !m.Config["group"].Required() {
		t.Errorf("group should be required")
	}
	if m.Config["dry_run"].Required() || m.Config["description"].Required() {
		t.Errorf("keys with default or optional flag must not be required")
	}
	if !m.Config["site"].Required() {
		t.Errorf("explicit required flag must win over the default")
	}
	if m.Inputs["api_key"].Base != "api-key" {
		t.Errorf("unexpected input: %+v", m.Inputs["api_key"])
	}
}

func TestParseManifest_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "syntax",
			content: `{"name": "x", "version": `,
			wantMsg: "syntax",
		},
		{
			name:    "duplicate config key",
			content: `{"name": "x", "version": "1", "config": {"group": {"type": "string"}, "group": {"type": "integer"}}}`,
			wantMsg: `duplicate key "group"`,
		},
		{
			name:    "unknown type",
			content: `{"name": "x", "version": "1", "config": {"group": {"type": "uuid"}}}`,
			wantMsg: "/config/group/type",
		},
		{
			name:    "missing version",
			content: `{"name": "x"}`,
			wantMsg: "version",
		},
		{
			name:    "default does not conform",
			content: `{"name": "x", "version": "1", "config": {"dry_run": {"type": "boolean", "default": "no"}}}`,
			wantMsg: "config.dry_run: default",
		},
		{
			name:    "enum does not conform",
			content: `{"name": "x", "version": "1", "config": {"n": {"type": "integer", "enum": [1, 2.5]}}}`,
			wantMsg: "config.n: enum",
		},
		{
			name:    "required and optional",
			content: `{"name": "x", "version": "1", "config": {"g": {"type": "string", "required": true, "optional": true}}}`,
			wantMsg: "config.g: both required and optional",
		},
		{
			name:    "empty",
			content: ``,
			wantMsg: "syntax",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.content))
			var me *model.ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("expected ManifestError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoadManifest_FileNotFound(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	if model.KindOf(err) != model.ErrorKindManifest {
		t.Fatalf("expected ManifestError, got %v", err)
	}
}
