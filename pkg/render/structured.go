package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

// JSON renders the report as indented JSON.
type JSON struct{}

func (JSON) Name() string        { return string(FormatJSON) }
func (JSON) ContentType() string { return "application/json" }

func (JSON) Render(_ context.Context, report engine.Report, options Options) ([]byte, error) {
	if !options.IncludeDocument {
		report.FixedDocument = nil
	}
	return encodeJSON(report)
}

// YAML renders the report as YAML.
type YAML struct{}

func (YAML) Name() string        { return string(FormatYAML) }
func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Render(_ context.Context, report engine.Report, options Options) ([]byte, error) {
	if !options.IncludeDocument {
		report.FixedDocument = nil
	}
	return encodeYAML(report)
}

// WriteDocument encodes a (repaired) form document as JSON or YAML. Text and
// HTML fall back to JSON since documents have no prose rendering.
func WriteDocument(w io.Writer, doc any, format Format) error {
	var (
		payload []byte
		err     error
	)
	switch format {
	case FormatYAML:
		payload, err = encodeYAML(doc)
	default:
		payload, err = encodeJSON(doc)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func encodeJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("render: encode json: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("render: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
