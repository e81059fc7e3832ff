package formcheck

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/render"
)

// Result aliases orchestrator.Result for callers of the root package.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// CheckSource loads the document at source and validates it. When fix is set
// the result carries the repaired document and its conformance check.
func CheckSource(ctx context.Context, source document.Source, fix bool, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Check(ctx, orchestrator.Request{
		Source:      source,
		Fix:         fix,
		Conformance: fix,
	})
}

// CheckDocument validates a pre-loaded document, bypassing the loader stage.
func CheckDocument(ctx context.Context, doc document.Document, fix bool, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Check(ctx, orchestrator.Request{
		Document:    &doc,
		Fix:         fix,
		Conformance: fix,
	})
}

// RenderReport checks source and renders its report in format, the simplest
// entry point for callers that just want output.
func RenderReport(ctx context.Context, source document.Source, format render.Format, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Check(ctx, orchestrator.Request{Source: source})
	if err != nil {
		return nil, err
	}
	return gen.Render(ctx, result, format, render.Options{})
}
