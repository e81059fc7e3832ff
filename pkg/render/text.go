package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

// Text renders a plain, terminal-friendly report.
type Text struct{}

func (Text) Name() string        { return string(FormatText) }
func (Text) ContentType() string { return "text/plain; charset=utf-8" }

func (Text) Render(_ context.Context, report engine.Report, options Options) ([]byte, error) {
	var buf bytes.Buffer

	status := "VALID"
	if !report.IsValid {
		status = "INVALID"
	}
	if options.Location != "" {
		fmt.Fprintf(&buf, "%s: ", options.Location)
	}
	fmt.Fprintf(&buf, "%s  score %d/100  complexity %s\n", status, report.Score, report.Complexity)
	fmt.Fprintf(&buf, "fields %d (%d total)  rules %d",
		report.Metrics.FieldCount, report.Metrics.TotalFieldCount, report.Metrics.ValidationCount)
	if report.Metrics.Bytes > 0 {
		fmt.Fprintf(&buf, "  %d bytes", report.Metrics.Bytes)
	}
	buf.WriteByte('\n')

	writeSection(&buf, "Errors", report.Errors)
	writeSection(&buf, "Warnings", report.Warnings)
	if !options.HideSuggestions {
		writeSection(&buf, "Suggestions", report.Suggestions)
	}

	if fixable := report.FixableCount(); fixable > 0 {
		fmt.Fprintf(&buf, "\n%d finding(s) can be fixed automatically.\n", fixable)
	}
	return buf.Bytes(), nil
}

func writeSection(buf *bytes.Buffer, title string, findings []engine.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(buf, "\n%s (%d)\n", title, len(findings))

	width := 0
	for _, f := range findings {
		if len(f.Field) > width {
			width = len(f.Field)
		}
	}
	for _, f := range findings {
		line := fmt.Sprintf("  %-*s  %s", width, f.Field, f.Message)
		if f.AutoFixable {
			line += " [fixable]"
		}
		buf.WriteString(strings.TrimRight(line, " "))
		buf.WriteByte('\n')
		if f.Suggestion != "" {
			fmt.Fprintf(buf, "  %-*s  -> %s\n", width, "", f.Suggestion)
		}
	}
}
