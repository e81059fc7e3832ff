package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const reportTemplate = "templates/report.html.tpl"

// HTML renders a standalone report page from an embedded pongo2 template.
type HTML struct {
	mu       sync.RWMutex
	template *pongo2.Template
}

// NewHTML loads and compiles the report template.
func NewHTML() (*HTML, error) {
	set := pongo2.NewSet("formcheck", pongo2.NewFSLoader(templateFS))
	tmpl, err := set.FromFile(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", reportTemplate, err)
	}
	return &HTML{template: tmpl}, nil
}

func (h *HTML) Name() string        { return string(FormatHTML) }
func (h *HTML) ContentType() string { return "text/html; charset=utf-8" }

func (h *HTML) Render(_ context.Context, report engine.Report, options Options) ([]byte, error) {
	if h == nil || h.template == nil {
		return nil, fmt.Errorf("render: html renderer is not initialised")
	}
	report.FixedDocument = nil

	view, err := toContextValue(report)
	if err != nil {
		return nil, fmt.Errorf("render: convert report: %w", err)
	}

	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = "Form validation report"
	}

	sections := []pongo2.Context{}
	for _, s := range []struct {
		title    string
		severity engine.Severity
		key      string
	}{
		{"Errors", engine.SeverityError, "errors"},
		{"Warnings", engine.SeverityWarning, "warnings"},
		{"Suggestions", engine.SeveritySuggestion, "suggestions"},
	} {
		if s.severity == engine.SeveritySuggestion && options.HideSuggestions {
			continue
		}
		findings, _ := view[s.key].([]any)
		if len(findings) == 0 {
			continue
		}
		sections = append(sections, pongo2.Context{
			"title":    s.title,
			"severity": string(s.severity),
			"findings": findings,
		})
	}

	var buf bytes.Buffer
	h.mu.RLock()
	err = h.template.ExecuteWriter(pongo2.Context{
		"title":    title,
		"location": options.Location,
		"report":   view,
		"sections": sections,
	}, &buf)
	h.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("render: execute template %q: %w", reportTemplate, err)
	}
	return buf.Bytes(), nil
}

// toContextValue exposes a value to templates under its JSON field names.
func toContextValue(value any) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
