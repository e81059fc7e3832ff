package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

// Format names an output encoding for reports and repaired documents.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// ParseFormat maps user input onto a Format. "yml" is accepted for YAML and
// empty input selects text.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("render: unknown format %q", raw)
	}
}

// Renderer converts a validation report into bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, report engine.Report, options Options) ([]byte, error)
}
