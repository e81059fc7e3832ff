package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format names a supported document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyPayload is returned when a payload contains only whitespace.
var ErrEmptyPayload = errors.New("document: payload is empty")

// ParseError reports a payload that never became a structured value. It is
// the caller's concern, not a validation finding.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return "document: parse failed"
	}
	switch e.Format {
	case FormatJSON:
		return "invalid JSON: " + e.Err.Error()
	case FormatYAML:
		return "invalid YAML: " + e.Err.Error()
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DetectFormat treats payloads opening with '{' or '[' as JSON and anything
// else as YAML.
func DetectFormat(raw []byte) Format {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a JSON or YAML payload into a tree of map[string]any, []any
// and scalars. YAML mappings with non-string keys are rekeyed by their string
// form so every mapping in the result is map[string]any.
func Parse(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ParseError{Err: ErrEmptyPayload}
	}

	format := DetectFormat(trimmed)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		var out any
		if err := dec.Decode(&out); err != nil {
			return nil, &ParseError{Format: format, Err: err}
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, &ParseError{Format: format, Err: errors.New("unexpected data after top-level value")}
		}
		return out, nil
	default:
		var out any
		if err := yaml.Unmarshal(trimmed, &out); err != nil {
			return nil, &ParseError{Format: format, Err: err}
		}
		return normalize(out), nil
	}
}

// ParseDocument parses a Document payload, wrapping failures with the
// document location.
func ParseDocument(doc Document) (any, error) {
	out, err := doc.Parse()
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.Location(), err)
	}
	return out, nil
}

func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, nested := range typed {
			typed[key] = normalize(nested)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			out[fmt.Sprint(key)] = normalize(nested)
		}
		return out
	case []any:
		for i, nested := range typed {
			typed[i] = normalize(nested)
		}
		return typed
	default:
		return value
	}
}
