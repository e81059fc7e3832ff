package document

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDocument_Validation(t *testing.T) {
	if _, err := NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceInline(""), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}

	raw := []byte(`{"MenuID":"A"}`)
	doc, err := NewDocument(SourceFromFile("./forms/../forms/a.json"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	raw[0] = 'x'
	if doc.Raw()[0] != '{' {
		t.Fatalf("document must keep its own copy of the payload")
	}
	if doc.Location() != "forms/a.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if doc.Size() != len(raw) || doc.Format() != FormatJSON {
		t.Fatalf("unexpected size/format %d %s", doc.Size(), doc.Format())
	}
}

func TestParse_JSONAndYAMLAgree(t *testing.T) {
	jsonDoc := []byte(`{"MenuID":"ACCADJ","Fields":[{"Id":"A","Width":32,"Inline":true}]}`)
	yamlDoc := []byte("MenuID: ACCADJ\nFields:\n  - Id: A\n    Width: 32\n    Inline: true\n")

	fromJSON, err := Parse(jsonDoc)
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	fromYAML, err := Parse(yamlDoc)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}

	// JSON numbers decode as float64, YAML integers as int.
	jsonWidth := fromJSON.(map[string]any)["Fields"].([]any)[0].(map[string]any)["Width"]
	yamlWidth := fromYAML.(map[string]any)["Fields"].([]any)[0].(map[string]any)["Width"]
	if jsonWidth != float64(32) || yamlWidth != 32 {
		t.Fatalf("unexpected widths %#v %#v", jsonWidth, yamlWidth)
	}
}

func TestParse_NormalisesNonStringKeys(t *testing.T) {
	out, err := Parse([]byte("Fields:\n  - Id: A\n    OptionValues:\n      1: One\n      2: Two\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	options := out.(map[string]any)["Fields"].([]any)[0].(map[string]any)["OptionValues"]
	want := map[string]any{"1": "One", "2": "Two"}
	if diff := cmp.Diff(want, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format Format
	}{
		{name: "empty", raw: "   "},
		{name: "broken json", raw: `{"MenuID": `, format: FormatJSON},
		{name: "trailing json", raw: `{"a":1} {"b":2}`, format: FormatJSON},
		{name: "broken yaml", raw: "MenuID: [unterminated", format: FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Format != tt.format {
				t.Fatalf("format = %q, want %q", parseErr.Format, tt.format)
			}
		})
	}
}

func TestSourceFromURL_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = SourceFromURL("not a url")
}
