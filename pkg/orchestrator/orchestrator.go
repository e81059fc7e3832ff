package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-formcheck/internal/loader"
	"github.com/goliatone/go-formcheck/pkg/conformance"
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/engine"
	"github.com/goliatone/go-formcheck/pkg/render"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultFormat overrides the report format used when a request omits
// one.
func WithDefaultFormat(format render.Format) Option {
	return func(o *Orchestrator) {
		o.defaultFormat = format
	}
}

// WithEngineOptions sets the engine options used when a request carries none.
func WithEngineOptions(opts engine.Options) Option {
	return func(o *Orchestrator) {
		o.engine = opts
	}
}

// WithConformance injects the schema checker used for repaired documents.
func WithConformance(checker *conformance.Checker) Option {
	return func(o *Orchestrator) {
		o.checker = checker
	}
}

// Orchestrator coordinates loading, validation, repair, schema conformance
// and report rendering for one document at a time.
type Orchestrator struct {
	loader          document.Loader
	registry        *render.Registry
	checker         *conformance.Checker
	engine          engine.Options
	defaultFormat   render.Format
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultFormat: render.FormatText}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one check.
type Request struct {
	// Source identifies where the form document lives. Optional when Document
	// is supplied.
	Source document.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *document.Document

	// Engine overrides the orchestrator's engine options.
	Engine *engine.Options

	// Fix runs the repair round and re-validates the corrected document.
	Fix bool

	// Conformance checks the effective document (the repaired one when Fix is
	// set) against the canonical schema.
	Conformance bool
}

// Result is the outcome of Check.
type Result struct {
	Document    document.Document
	Report      engine.Report
	Fix         *engine.FixResult
	Conformance *conformance.Result
}

// Location returns where the checked document came from.
func (r Result) Location() string {
	return r.Document.Location()
}

// Passed reports whether the input is valid and scores at least minScore.
func (r Result) Passed(minScore int) bool {
	return r.Report.IsValid && r.Report.Score >= minScore
}

// Check loads and validates the requested document. Content problems end up
// in the report; only load failures are returned as errors.
func (o *Orchestrator) Check(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Result{}, err
	}

	opts := o.engine
	if req.Engine != nil {
		opts = *req.Engine
	}

	result := Result{Document: doc}
	tree, err := document.ParseDocument(doc)
	if err != nil {
		result.Report = engine.ValidateDocument(doc, opts)
		return result, nil
	}

	effective := tree
	if req.Fix {
		fixed := engine.Fix(tree, opts)
		fixed.Before.Metrics.Bytes = doc.Size()
		result.Fix = &fixed
		result.Report = fixed.Before
		if fixed.Document != nil {
			effective = fixed.Document
		}
	} else {
		result.Report = engine.Validate(tree, opts)
		result.Report.Metrics.Bytes = doc.Size()
	}

	if req.Conformance {
		checked := o.checker.Check(effective)
		result.Conformance = &checked
	}
	return result, nil
}

// Render writes result's report in the requested format. An empty format uses
// the orchestrator default.
func (o *Orchestrator) Render(ctx context.Context, result Result, format render.Format, options render.Options) ([]byte, error) {
	renderer, err := o.rendererFor(format)
	if err != nil {
		return nil, err
	}
	if options.Location == "" {
		options.Location = result.Location()
	}
	output, err := renderer.Render(ctx, result.Report, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (document.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return document.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return document.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(format render.Format) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := format
	if target == "" {
		target = o.defaultFormat
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.loader == nil {
		o.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if o.registry == nil {
		registry, err := render.NewDefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
		o.registry = registry
	}
	if o.checker == nil && o.initialiseErr == nil {
		checker, err := conformance.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: conformance schema: %w", err)
		}
		o.checker = checker
	}
	if o.defaultFormat == "" {
		o.defaultFormat = render.FormatText
	}
	o.defaultsApplied = true
}
