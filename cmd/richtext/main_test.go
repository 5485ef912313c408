package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const voidDoc = `
children:
  - key: p1
    type: paragraph
    children:
      - {key: a, text: a}
  - key: img
    type: image
    children:
      - {key: v, text: ""}
  - key: p2
    type: paragraph
    children:
      - {key: b, text: b, marks: [bold]}
`

const configTOML = `
[keys]
strategy = "sequence"
prefix = "k"

[elements.image]
void = true
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestReport(t *testing.T) {
	dir := writeFiles(t, map[string]string{"doc.yaml": voidDoc, "richtext.toml": configTOML})

	code, out, stderr := runCLI(t, "-config", filepath.Join(dir, "richtext.toml"), filepath.Join(dir, "doc.yaml"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	want := `texts:
  [0 0] paragraph a "a"
  [1 0] image v ""
  [2 0] paragraph b "b" {bold}
positions (character, forward):
  Point(a:1)
  Point(v:0)
  Point(b:1)
`
	if out != want {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", out, want)
	}
}

func TestReportReverseAndTypes(t *testing.T) {
	dir := writeFiles(t, map[string]string{"doc.yaml": voidDoc, "richtext.toml": configTOML})

	code, out, stderr := runCLI(t, "-c", filepath.Join(dir, "richtext.toml"),
		"-reverse", "-types", "para*", filepath.Join(dir, "doc.yaml"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if strings.Contains(out, "image") {
		t.Errorf("image block should be filtered out:\n%s", out)
	}
	if !strings.Contains(out, "positions (character, backward):\n  Point(v:0)\n  Point(a:1)\n  Point(a:0)\n") {
		t.Errorf("unexpected backward positions:\n%s", out)
	}
}

func TestSplitToJSON(t *testing.T) {
	doc := `{
		"document": {"key": "d", "children": [
			{"kind": "element", "key": "p", "type": "paragraph", "children": [
				{"kind": "text", "key": "x", "text": "wo"},
				{"kind": "text", "key": "y", "text": "rd"}
			]}
		]},
		"selection": {"anchor": {"key": "x", "offset": 2}, "focus": {"key": "x", "offset": 2}}
	}`
	dir := writeFiles(t, map[string]string{"doc.json": doc, "richtext.toml": configTOML})

	code, out, stderr := runCLI(t, "-config", filepath.Join(dir, "richtext.toml"),
		"-split", "-format", "json", filepath.Join(dir, "doc.json"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{`"text": "wo"`, `"text": "rd"`, `"key": "k0"`, `"offset": 0`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestSelectionMarks(t *testing.T) {
	doc := `{
		"document": {"children": [{"type": "p", "children": [{"key": "t", "text": "hi", "marks": ["em"]}]}]},
		"selection": {"anchor": {"key": "t", "offset": 1}, "focus": {"key": "t", "offset": 1}}
	}`
	dir := writeFiles(t, map[string]string{"doc.json": doc})

	code, out, stderr := runCLI(t, "-unit", "word", filepath.Join(dir, "doc.json"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(out, "positions (word, forward):") || !strings.Contains(out, "marks: {em}") {
		t.Errorf("unexpected report:\n%s", out)
	}
}

func TestFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"bad unit", []string{"-unit", "paragraph", "doc.json"}, 2},
		{"bad level", []string{"-log-level", "loud", "doc.json"}, 2},
		{"bad format", []string{"-format", "xml", "doc.json"}, 2},
		{"no file", nil, 2},
		{"missing file", []string{filepath.Join(os.TempDir(), "richtext-missing.json")}, 1},
		{"help", []string{"-h"}, 0},
		{"version", []string{"-version"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit %d, want %d", code, tt.code)
			}
		})
	}
}
