package logging

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateLogFilename(t *testing.T) {
	got := GenerateLogFilename(time.Date(2024, 3, 9, 7, 5, 2, 45_000_000, time.UTC))
	if got != "create_project-20240309-070502-045.log" {
		t.Errorf("GenerateLogFilename() = %q", got)
	}
	if !regexp.MustCompile(`^create_project-\d{8}-\d{6}-\d{3}\.log$`).MatchString(GenerateLogFilename(time.Now())) {
		t.Errorf("filename does not match pattern")
	}
}

func TestNewLogFile_Outputs(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "abs", "run.log")
	tests := []struct {
		name       string
		output     string
		wantWriter io.Writer // checked when not nil
		wantPath   string    // "" means no file, "*" means generated
	}{
		{name: "stderr default", output: "", wantWriter: os.Stderr},
		{name: "stderr dash", output: "-", wantWriter: os.Stderr},
		{name: "discard", output: "none", wantWriter: io.Discard},
		{name: "discard upper", output: "NONE", wantWriter: io.Discard},
		{name: "generated", output: "auto", wantPath: "*"},
		{name: "relative", output: "logs/run.log", wantPath: filepath.Join(dir, "logs", "run.log")},
		{name: "absolute", output: abs, wantPath: abs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := NewLogFile(&LogConfig{Output: tt.output, Dir: dir})
			if err != nil {
				t.Fatalf("NewLogFile() error = %v", err)
			}
			defer lf.Close()
			if tt.wantWriter != nil && lf.Writer() != tt.wantWriter {
				t.Errorf("unexpected writer %T", lf.Writer())
			}
			switch tt.wantPath {
			case "":
				if lf.Path != "" {
					t.Errorf("Path = %q, want empty", lf.Path)
				}
				return
			case "*":
				if filepath.Dir(lf.Path) != dir || !strings.HasPrefix(filepath.Base(lf.Path), logFilePrefix) {
					t.Errorf("generated Path = %q", lf.Path)
				}
			default:
				if lf.Path != tt.wantPath {
					t.Errorf("Path = %q, want %q", lf.Path, tt.wantPath)
				}
			}
			if _, err := lf.Writer().Write([]byte("line\n")); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := os.Stat(lf.Path); err != nil {
				t.Errorf("log file not created: %v", err)
			}
		})
	}
}

func TestCleanupOldLogFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().AddDate(0, 0, -10)
	files := map[string]bool{ // name -> expected to survive
		"create_project-20200101-000000-000.log": false,
		"create_project-recent.log":              true,
		"other-20200101-000000-000.log":          true,
		"create_project-old.txt":                 true,
	}
	for name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if name != "create_project-recent.log" {
			if err := os.Chtimes(path, old, old); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := CleanupOldLogFiles(dir, 7); err != nil {
		t.Fatalf("CleanupOldLogFiles() error = %v", err)
	}
	for name, keep := range files {
		_, err := os.Stat(filepath.Join(dir, name))
		if exists := err == nil; exists != keep {
			t.Errorf("%s exists = %v, want %v", name, exists, keep)
		}
	}
}

func TestCleanupOldLogFiles_NoOp(t *testing.T) {
	if err := CleanupOldLogFiles(filepath.Join(t.TempDir(), "missing"), 7); err != nil {
		t.Errorf("missing dir: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "create_project-x.log")
	old := time.Now().AddDate(-1, 0, 0)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_ = os.Chtimes(path, old, old)
	if err := CleanupOldLogFiles(dir, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("zero retention must keep files: %v", err)
	}
}

func TestNewLogFile_AutoCleansOldFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "create_project-20200101-000000-000.log")
	if err := os.WriteFile(stale, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().AddDate(0, 0, -30)
	_ = os.Chtimes(stale, old, old)

	lf, err := NewLogFile(&LogConfig{Output: "auto", Dir: dir})
	if err != nil {
		t.Fatalf("NewLogFile() error = %v", err)
	}
	defer lf.Close()
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale log file kept")
	}
}
