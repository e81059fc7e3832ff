package conformance

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL identifies the embedded canonical form schema.
const SchemaURL = "formcheck://schemas/form.schema.json"

//go:embed form.schema.json
var formSchema []byte

// Issue is one schema violation. Path is the JSON pointer of the offending
// value; Field renders it the way engine findings do ("Fields[0].Id").
type Issue struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Result captures a conformance check.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Checker validates documents against a compiled schema.
type Checker struct {
	schema *jsonschema.Schema
}

// Option customises a Checker.
type Option func(*config)

type config struct {
	url string
	raw []byte
}

// WithSchema replaces the embedded schema with raw, registered under url.
func WithSchema(url string, raw []byte) Option {
	return func(c *config) {
		if strings.TrimSpace(url) != "" && len(raw) > 0 {
			c.url = url
			c.raw = raw
		}
	}
}

// New compiles the schema and returns a Checker.
func New(opts ...Option) (*Checker, error) {
	cfg := config{url: SchemaURL, raw: formSchema}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(cfg.url, bytes.NewReader(cfg.raw)); err != nil {
		return nil, fmt.Errorf("conformance: add schema %s: %w", cfg.url, err)
	}
	schema, err := compiler.Compile(cfg.url)
	if err != nil {
		return nil, fmt.Errorf("conformance: compile schema %s: %w", cfg.url, err)
	}
	return &Checker{schema: schema}, nil
}

var (
	defaultOnce    sync.Once
	defaultChecker *Checker
	defaultErr     error
)

// Check validates doc against the embedded schema.
func Check(doc any) Result {
	defaultOnce.Do(func() {
		defaultChecker, defaultErr = New()
	})
	if defaultErr != nil {
		return Result{Issues: []Issue{{Message: defaultErr.Error()}}}
	}
	return defaultChecker.Check(doc)
}

// Schema returns a copy of the embedded schema document.
func Schema() []byte {
	return append([]byte(nil), formSchema...)
}

// Check validates doc. Values are re-encoded as JSON first so trees decoded
// from YAML are checked with the same number and key semantics.
func (c *Checker) Check(doc any) Result {
	instance, err := asJSONValue(doc)
	if err != nil {
		return Result{Issues: []Issue{{Message: err.Error()}}}
	}

	err = c.schema.Validate(instance)
	if err == nil {
		return Result{Valid: true}
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return Result{Issues: []Issue{{Message: strings.TrimSpace(err.Error())}}}
	}
	issues := collectIssues(verr, nil)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return Result{Issues: issues}
}

func asJSONValue(doc any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("conformance: encode document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("conformance: decode document: %w", err)
	}
	return out, nil
}

// collectIssues flattens the cause tree, keeping only leaves. Intermediate
// nodes repeat their children's locations with less specific messages.
func collectIssues(verr *jsonschema.ValidationError, out []Issue) []Issue {
	if len(verr.Causes) == 0 {
		return append(out, Issue{
			Path:    verr.InstanceLocation,
			Field:   fieldPathFromPointer(verr.InstanceLocation),
			Message: strings.TrimSpace(verr.Message),
		})
	}
	for _, cause := range verr.Causes {
		out = collectIssues(cause, out)
	}
	return out
}

// fieldPathFromPointer turns "/Fields/0/ChildFields/1/Id" into
// "Fields[0].ChildFields[1].Id". The document root is "document".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return "document"
	}

	var b strings.Builder
	for _, part := range strings.Split(trimmed, "/") {
		segment := strings.ReplaceAll(part, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if isNumeric(segment) && b.Len() > 0 {
			b.WriteString("[" + segment + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}
	return b.String()
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
