package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formcheck/internal/prompt"
	"github.com/goliatone/go-formcheck/pkg/engine"
)

const (
	validForm  = `{"MenuID":"M","Label":"L","Fields":[]}`
	legacyForm = `{"MenuID":"M","Label":"L","Fields":[{"Id":"a","type":"TEXT","Label":"A"}]}`
	brokenForm = `{"Fields":[{"Type":"SELECT","Label":"X"}]}`
)

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(stdin string) *harness {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &harness{
		app:    newApp(strings.NewReader(stdin), stdout, stderr),
		stdout: stdout,
		stderr: stderr,
	}
}

func (h *harness) run(args ...string) error {
	cmd := newRootCmd(h.app)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidate_ValidDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.json", validForm)
	h := newHarness("")

	if err := h.run("validate", path); err != nil {
		t.Fatalf("validate: %v\n%s", err, h.stderr)
	}
	if !strings.HasPrefix(h.stdout.String(), path+": VALID  score 100/100") {
		t.Fatalf("unexpected output:\n%s", h.stdout)
	}
}

func TestValidate_InvalidDocumentFails(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.json", brokenForm)
	h := newHarness("")

	err := h.run("validate", path)
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected errCheckFailed, got %v", err)
	}
	if !strings.Contains(h.stdout.String(), "INVALID  score 52/100") {
		t.Fatalf("unexpected output:\n%s", h.stdout)
	}
}

func TestValidate_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", validForm)
	writeFile(t, dir, "b.yaml", "Fields: []\n")
	writeFile(t, dir, "notes.txt", "not a form")
	h := newHarness("")

	err := h.run("validate", "--hide-suggestions", dir)
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected errCheckFailed, got %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, "1 of 2 document(s) passed") {
		t.Fatalf("missing summary:\n%s", out)
	}
	if strings.Index(out, "a.json") > strings.Index(out, "b.yaml") {
		t.Fatalf("documents must be reported in path order:\n%s", out)
	}
}

func TestValidate_StdinJSON(t *testing.T) {
	h := newHarness(legacyForm)
	if err := h.run("validate", "--format", "json", "--autofix", "-"); err != nil {
		t.Fatalf("validate: %v", err)
	}

	var report engine.Report
	if err := json.Unmarshal(h.stdout.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, h.stdout)
	}
	if report.Score != 98 || report.FixedDocument == nil {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestValidate_StrictMinScore(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.json", validForm)

	if err := newHarness("").run("validate", "--mode", "strict", "--min-score", "94", path); err != nil {
		t.Fatalf("strict score 94 should pass --min-score 94: %v", err)
	}
	if err := newHarness("").run("validate", "--mode", "strict", "--min-score", "95", path); !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected errCheckFailed, got %v", err)
	}
	if err := newHarness("").run("validate", "--mode", "lenient", path); err == nil || errors.Is(err, errCheckFailed) {
		t.Fatalf("expected a usage error for an unknown mode, got %v", err)
	}
}

func TestValidate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "form.json", validForm)
	cfg := writeFile(t, dir, "formcheck.yaml", "mode: strict\nminScore: 95\n")

	if err := newHarness("").run("validate", "--config", cfg, path); !errors.Is(err, errCheckFailed) {
		t.Fatalf("config minScore should fail the strict run, got %v", err)
	}
	if err := newHarness("").run("validate", "--config", cfg, "--min-score", "0", path); err != nil {
		t.Fatalf("flag must override config: %v", err)
	}

	bad := writeFile(t, dir, "bad.yaml", "format: pdf\n")
	if err := newHarness("").run("validate", "--config", bad, path); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestFix_DryRun(t *testing.T) {
	h := newHarness(legacyForm)
	if err := h.run("fix", "--dry-run", "-"); err != nil {
		t.Fatalf("fix: %v\n%s", err, h.stderr)
	}

	var doc map[string]any
	if err := json.Unmarshal(h.stdout.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, h.stdout)
	}
	field := doc["Fields"].([]any)[0].(map[string]any)
	if field["Type"] != "TEXT" || field["type"] != nil {
		t.Fatalf("unexpected repaired field: %v", field)
	}
	if !strings.Contains(h.stderr.String(), "score 98 -> 100") {
		t.Fatalf("missing summary:\n%s", h.stderr)
	}
}

func TestFix_YesWritesInPlace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.yaml", "MenuID: M\nLabel: L\nFields:\n  - Id: a\n    label: A\n    Type: TEXT\n")
	h := newHarness("")

	if err := h.run("fix", "--yes", path); err != nil {
		t.Fatalf("fix: %v\n%s", err, h.stderr)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Label: A") {
		t.Fatalf("expected YAML output with renamed key:\n%s", raw)
	}
	if report := engine.ValidateBytes(raw, engine.Options{}); report.Score != 100 {
		t.Fatalf("repaired file scores %d", report.Score)
	}
}

func TestFix_NothingToFix(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.json", validForm)
	h := newHarness("")
	if err := h.run("fix", "--yes", path); err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(h.stderr.String(), "nothing to fix") {
		t.Fatalf("unexpected stderr:\n%s", h.stderr)
	}
}

func TestFix_PromptChoosesPrint(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.json", legacyForm)
	h := newHarness("")
	h.app.driver = prompt.Static{Choice: int(prompt.ActionPrint), Out: io.Discard}

	if err := h.run("fix", path); err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(h.stdout.String(), `"Type": "TEXT"`) {
		t.Fatalf("expected printed document:\n%s", h.stdout)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != legacyForm {
		t.Fatalf("file must be untouched when printing")
	}
}

func TestFix_RemainingErrorsFail(t *testing.T) {
	h := newHarness(`{"MenuID":"M","Label":"L","Fields":[{"Id":"a","Type":"TEXT"}],"Validations":[{"Id":"r","Type":"ERROR"}]}`)
	err := h.run("fix", "--dry-run", "-")
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected errCheckFailed, got %v", err)
	}
	if !strings.Contains(h.stderr.String(), "need manual attention") {
		t.Fatalf("unexpected stderr:\n%s", h.stderr)
	}
}

func TestSchema(t *testing.T) {
	h := newHarness("")
	if err := h.run("schema"); err != nil {
		t.Fatalf("schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(h.stdout.Bytes(), &schema); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if schema["$id"] != "formcheck://schemas/form.schema.json" {
		t.Fatalf("unexpected schema id %v", schema["$id"])
	}
}

func TestServeMux(t *testing.T) {
	a := newApp(strings.NewReader(""), io.Discard, io.Discard)
	if err := a.init(); err != nil {
		t.Fatal(err)
	}
	mux, err := newServeMux(a, validatorOptions{metrics: true})
	if err != nil {
		t.Fatalf("newServeMux: %v", err)
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/validate?autofix=1", "application/json", strings.NewReader(brokenForm))
	if err != nil {
		t.Fatal(err)
	}
	var report engine.Report
	err = json.NewDecoder(resp.Body).Decode(&report)
	resp.Body.Close()
	if err != nil || report.Score != 52 || report.FixedDocument == nil {
		t.Fatalf("unexpected report %+v (%v)", report, err)
	}

	for path, want := range map[string]string{
		"/healthz": "ok",
		"/metrics": `formcheck_validations_total{outcome="invalid"} 1`,
	} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if !strings.Contains(string(body), want) {
			t.Fatalf("%s: expected %q in:\n%s", path, want, body)
		}
	}
}
