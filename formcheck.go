// Package formcheck validates and repairs declarative form-definition
// documents. The root package re-exports the engine entry points; the
// pipeline pieces live under pkg/.
package formcheck

import (
	"github.com/goliatone/go-formcheck/pkg/engine"
)

type (
	Options   = engine.Options
	Report    = engine.Report
	Finding   = engine.Finding
	FixResult = engine.FixResult
	Mode      = engine.Mode
)

const (
	ModeStandard   = engine.ModeStandard
	ModeStrict     = engine.ModeStrict
	ModePermissive = engine.ModePermissive
)

// Validate checks a decoded document. See engine.Validate.
func Validate(doc any, opts Options) Report {
	return engine.Validate(doc, opts)
}

// ValidateBytes parses and checks a JSON or YAML payload.
func ValidateBytes(raw []byte, opts Options) Report {
	return engine.ValidateBytes(raw, opts)
}

// Fix repairs doc and re-validates the result.
func Fix(doc any, opts Options) FixResult {
	return engine.Fix(doc, opts)
}
