package formcheck_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/testsupport"
)

func TestValidate_EmptyDocument(t *testing.T) {
	report := formcheck.Validate(map[string]any{}, formcheck.Options{})
	if report.IsValid || report.Score != 40 || len(report.Errors) != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestFix_Converges(t *testing.T) {
	result := formcheck.Fix(map[string]any{"Fields": []any{map[string]any{"type": "TEXT"}}}, formcheck.Options{Mode: formcheck.ModeStrict})
	if !result.Changed() || !result.Converged() {
		t.Fatalf("expected a converged repair: %+v", result.After)
	}
}

func TestValidateBytes_YAML(t *testing.T) {
	report := formcheck.ValidateBytes([]byte("MenuID: M\nLabel: L\nFields: []\n"), formcheck.Options{})
	if !report.IsValid || report.Score != 100 || report.Metrics.Bytes == 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestCheckSource_WithLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(`{"MenuID":"M","label":"Legacy","Fields":[]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := formcheck.NewLoader(document.WithMaxBytes(1024))
	result, err := formcheck.CheckSource(testsupport.Context(), document.SourceFromFile(path), true, orchestrator.WithLoader(loader))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Report.IsValid {
		t.Fatalf("lowercase label must be reported")
	}
	if result.Conformance == nil || !result.Conformance.Valid {
		t.Fatalf("repaired document should conform: %+v", result.Conformance)
	}

	out, err := formcheck.RenderReport(testsupport.Context(), document.SourceFromFile(path), render.FormatText)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "INVALID") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCheckDocument(t *testing.T) {
	doc := document.MustNewDocument(document.SourceInline("pasted"), []byte(`{"MenuID":"M","Label":"L","Fields":[]}`))
	result, err := formcheck.CheckDocument(testsupport.Context(), doc, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Location() != "pasted" || !result.Passed(100) {
		t.Fatalf("unexpected result: %s %+v", result.Location(), result.Report)
	}
}
