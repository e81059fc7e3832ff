package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixtureDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun_Clean(t *testing.T) {
	dir := fixtureDir(t, map[string]string{
		"a.json":        `{"MenuID":"A","Label":"A","Fields":[]}`,
		"nested/b.yaml": "MenuID: B\nLabel: B\nFields: []\n",
		".hidden/c.json": `{}`,
	})
	var stdout, stderr bytes.Buffer
	if code := run([]string{dir}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	if stdout.String() != "2 document(s) clean\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRun_SortedViolations(t *testing.T) {
	dir := fixtureDir(t, map[string]string{
		"b.json": `{"MenuID":"B","Label":"B","Fields":[{"Type":"TEXT"}]}`,
		"a.json": `{"Label":"A","Fields":[{"Id":"x","type":"TEXT"}]}`,
	})
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-warnings", dir}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	var got []string
	for _, line := range lines {
		got = append(got, strings.TrimPrefix(line, dir+string(filepath.Separator)))
	}
	want := []string{
		`a.json: Fields[0].type -> Inconsistent casing: "type" should be "Type" (warning field.alias)`,
		`a.json: MenuID -> Required field missing: MenuID (error document.missing)`,
		`b.json: Fields[0].Id -> Field ID missing (error field.id.missing)`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MinScoreAndMode(t *testing.T) {
	dir := fixtureDir(t, map[string]string{"a.json": `{"MenuID":"A","Label":"A","Fields":[]}`})
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-mode", "strict", "-min-score", "95", dir}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "score 94 is below 95") {
		t.Fatalf("unexpected stderr:\n%s", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"-mode", "bogus", dir}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
}

func TestRun_MissingPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
}
