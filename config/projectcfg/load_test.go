package projectcfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoPrograms = `
project: ADRC Program
centers:
  - adc-id: 7
    name: Alpha ADRC
    is-active: true
  - center-id: 8
    name: Beta ADRC
    is-active: false
datatypes:
  - Form
  - dicom
published: true
---
project: Leads
centers: []
datatypes: []
published: false
primary: true
---
`

func TestLoad_MultiDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte(twoPrograms), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}
	roots, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(roots))
	}
	if roots[0].Project != "ADRC Program" || len(roots[0].Centers) != 2 || !roots[0].Published {
		t.Errorf("unexpected first document: %+v", roots[0])
	}
	if roots[0].Centers[1].CenterID == nil || *roots[0].Centers[1].CenterID != 8 {
		t.Errorf("center-id alias not decoded: %+v", roots[0].Centers[1])
	}
	if roots[1].Project != "Leads" || !roots[1].Primary {
		t.Errorf("unexpected second document: %+v", roots[1])
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "missing project", content: "centers: []\n", wantMsg: "project"},
		{name: "unknown field", content: "project: x\ncolor: blue\n", wantMsg: "color"},
		{name: "center without id", content: "project: x\ncenters:\n  - name: Alpha\n", wantMsg: "/centers/0"},
		{name: "bad datatype", content: "project: x\ndatatypes: ['form data']\n", wantMsg: "/datatypes/0"},
		{name: "published not bool", content: "project: x\npublished: sometimes\n", wantMsg: "/published"},
		{name: "second document", content: "project: x\n---\nproject: 3\n", wantMsg: "document 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			var de *DocumentError
			if !errors.As(err, &de) {
				t.Fatalf("expected DocumentError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte("project: [unterminated\n"))
	var de *DocumentError
	if !errors.As(err, &de) || de.Index != 0 {
		t.Fatalf("expected DocumentError for first document, got %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/path/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error")
	}
}
