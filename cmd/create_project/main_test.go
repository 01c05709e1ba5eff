package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

const testManifest = `{
  "name": "create-project",
  "version": "1.0.0",
  "config": {
    "group": {"type": "string"},
    "project_label": {"type": "string"},
    "dry_run": {"type": "boolean", "default": false}
  },
  "inputs": {"project_file": {"base": "file", "optional": true}}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// run executes the root command with args and returns its exit code and stdout.
func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "--log-output", "none"))
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetContext(context.Background())
	return execute(root), stdout.String()
}

func readResult(t *testing.T, dir string) *model.Result {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "output", "result.json"))
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var res model.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("parsing result: %v", err)
	}
	return &res
}

func TestGearRun_SQLiteBackend(t *testing.T) {
	tmp := t.TempDir()
	apiURL := "sqlite:" + filepath.Join(tmp, "fw.db")
	gearDir := filepath.Join(tmp, "gear")
	writeFile(t, filepath.Join(gearDir, "manifest.json"), testManifest)
	writeFile(t, filepath.Join(gearDir, "config.json"), `{"config": {"group": "alpha-adrc", "project_label": "study"}}`)

	if code, out := run(t, "group", "ensure", "Alpha ADRC", "--api-url", apiURL); code != 0 {
		t.Fatalf("group ensure exit code = %d: %s", code, out)
	}

	if code, _ := run(t, "--gear-dir", gearDir, "--api-url", apiURL); code != 0 {
		t.Fatalf("first run exit code = %d: %+v", code, readResult(t, gearDir).Error)
	}
	res := readResult(t, gearDir)
	if !res.Succeeded() || res.Project.Path() != "alpha-adrc/study" {
		t.Errorf("unexpected first result: %+v", res)
	}

	code, _ := run(t, "run", "--gear-dir", gearDir, "--api-url", apiURL)
	if code != 1 {
		t.Errorf("second run exit code = %d, want 1", code)
	}
	res = readResult(t, gearDir)
	if res.Error == nil || res.Error.Kind != model.ErrorKindAPI || res.Error.StatusCode != 409 {
		t.Errorf("unexpected second result: %+v", res.Error)
	}

	code, out := run(t, "project", "list", "alpha-adrc", "--api-url", apiURL)
	if code != 0 || !strings.Contains(out, `"label":"study"`) {
		t.Errorf("project list = %d %q", code, out)
	}
}

func TestGearRun_ManifestErrorExitCode(t *testing.T) {
	gearDir := t.TempDir()
	writeFile(t, filepath.Join(gearDir, "manifest.json"), `{"name": "x", "version": "1", "config": {"a": {"type": "uuid"}}}`)

	code, _ := run(t, "--gear-dir", gearDir, "--api-url", "memory:")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if res := readResult(t, gearDir); res.Error == nil || res.Error.Kind != model.ErrorKindManifest {
		t.Errorf("unexpected result: %+v", res.Error)
	}
}

func newGearDir(t *testing.T) string {
	t.Helper()
	gearDir := t.TempDir()
	writeFile(t, filepath.Join(gearDir, "manifest.json"), testManifest)
	writeFile(t, filepath.Join(gearDir, "config.json"), `{"config": {"group": "alpha", "project_label": "study"}}`)
	return gearDir
}

func TestGearRun_SetupErrorStillWritesResult(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		key  string
	}{
		{name: "log level from env", env: map[string]string{envLogLevel: "verbose"}, key: "log-level"},
		{name: "log format flag", args: []string{"--log-format", "xml"}, key: "log-format"},
		{name: "missing env file", args: []string{"--env-file", "/nonexistent/.env"}, key: "env-file"},
		{name: "run subcommand", env: map[string]string{envLogLevel: "verbose"}, args: []string{"run"}, key: "log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			gearDir := newGearDir(t)
			args := append(append([]string{}, tt.args...), "--gear-dir", gearDir, "--api-url", "memory:")
			if code, out := run(t, args...); code != 1 {
				t.Errorf("exit code = %d, want 1: %s", code, out)
			}
			res := readResult(t, gearDir)
			if res.Error == nil || res.Error.Kind != model.ErrorKindValidation || res.Error.Key != tt.key {
				t.Errorf("unexpected result: %+v", res.Error)
			}
		})
	}
}

func TestGearRun_SetupErrorFailsOtherCommands(t *testing.T) {
	t.Setenv(envLogLevel, "verbose")
	if code, _ := run(t, "project", "list", "alpha", "--api-url", "memory:"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestGearRun_UnsupportedAPIScheme(t *testing.T) {
	gearDir := newGearDir(t)
	code, _ := run(t, "run", "--gear-dir", gearDir, "--api-url", "ftp://x")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	res := readResult(t, gearDir)
	if res.Error == nil || res.Error.Kind != model.ErrorKindValidation || res.Error.Key != "api_url" {
		t.Errorf("unexpected result: %+v", res.Error)
	}
}

func TestCommandTimeout_ZeroUsesDefault(t *testing.T) {
	root := newRootCmd()
	if err := root.PersistentFlags().Set("timeout", "0"); err != nil {
		t.Fatal(err)
	}
	if got := commandTimeout(root); got != defaultTimeout {
		t.Errorf("commandTimeout = %s, want %s", got, defaultTimeout)
	}
	root.SetContext(context.Background())
	ctx, cancel := commandContext(root)
	defer cancel()
	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) < time.Minute {
		t.Errorf("deadline = %v, %v", deadline, ok)
	}

	code, out := run(t, "project", "list", "alpha", "--api-url", "memory:", "--timeout", "0")
	if code != 0 {
		t.Errorf("project list with --timeout 0 exit code = %d: %s", code, out)
	}
}

func TestAPIURLHelpMentionsMemoryLimits(t *testing.T) {
	usage := newRootCmd().PersistentFlags().Lookup("api-url").Usage
	if !strings.Contains(usage, "memory: starts empty") {
		t.Errorf("api-url usage = %q", usage)
	}
}

func TestProvisionCommand_DryRun(t *testing.T) {
	file := filepath.Join(t.TempDir(), "programs.yaml")
	writeFile(t, file, "project: Pilot\ncenters:\n  - adc-id: 3\n    name: Gamma\n")

	code, out := run(t, "provision", file, "--dry-run", "--api-url", "memory:")
	if code != 0 {
		t.Fatalf("exit code = %d: %s", code, out)
	}
	for _, want := range []string{`"path": "gamma"`, `"path": "gamma/accepted-pilot"`, `"status": "planned"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %s:\n%s", want, out)
		}
	}
}

func TestProjectCreate_RejectsBadPath(t *testing.T) {
	if code, _ := run(t, "project", "create", "no-slash", "--api-url", "memory:"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestVersionCommand(t *testing.T) {
	code, out := run(t, "version")
	if code != 0 || !strings.HasPrefix(out, "create_project version ") {
		t.Errorf("version = %d %q", code, out)
	}
}

func TestSetting_FlagThenEnv(t *testing.T) {
	t.Setenv(envAPIURL, "memory:")
	root := newRootCmd()
	if got := setting(root, "api-url", envAPIURL); got != "memory:" {
		t.Errorf("env fallback = %q", got)
	}
	if err := root.PersistentFlags().Set("api-url", "sqlite::memory:"); err != nil {
		t.Fatal(err)
	}
	if got := setting(root, "api-url", envAPIURL); got != "sqlite::memory:" {
		t.Errorf("explicit flag = %q", got)
	}
}
