package engine

import (
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/form"
)

// Validate checks a decoded form document and returns its report. The input
// is never modified; when opts.AutoFix is set the report carries an
// independent corrected copy. A root that is not a mapping yields a single
// error with score 0.
//
// Validate holds no shared state and is safe to call concurrently.
func Validate(doc any, opts Options) Report {
	opts = opts.withDefaults()

	root, ok := doc.(map[string]any)
	if !ok {
		return degenerateReport(CodeDocumentNotObject,
			"Document root must be an object, got "+form.KindOf(doc))
	}

	p := newPass(root, opts)
	p.checkDocument()
	p.checkFields()
	p.checkDuplicateIDs()
	p.checkRules()
	p.suggest()
	return p.report()
}

// ValidateBytes parses raw as JSON or YAML and validates the result. Parse
// failures are reported as a degenerate report rather than an error.
func ValidateBytes(raw []byte, opts Options) Report {
	tree, err := document.Parse(raw)
	if err != nil {
		report := degenerateReport(CodeDocumentParse, err.Error())
		report.Metrics.Bytes = len(raw)
		return report
	}
	report := Validate(tree, opts)
	report.Metrics.Bytes = len(raw)
	return report
}

// ValidateDocument validates a loaded document, prefixing parse failures
// with the document location.
func ValidateDocument(doc document.Document, opts Options) Report {
	tree, err := document.ParseDocument(doc)
	if err != nil {
		report := degenerateReport(CodeDocumentParse, err.Error())
		report.Metrics.Bytes = doc.Size()
		return report
	}
	report := Validate(tree, opts)
	report.Metrics.Bytes = doc.Size()
	return report
}

// FixResult captures one round of repair: the report for the input, the
// corrected document, and the report for that corrected document.
type FixResult struct {
	Before   Report
	After    Report
	Document any
}

// Converged reports whether the repaired document no longer carries any
// finding the engine could fix on its own.
func (r FixResult) Converged() bool {
	return r.After.FixableCount() == 0
}

// Changed reports whether repair produced a document different from the
// input, judged by the absence of fixable findings in the first pass.
func (r FixResult) Changed() bool {
	return r.Before.FixableCount() > 0
}

// Fix runs validate, applies the corrected document and validates it again.
// Degenerate inputs come back with a nil Document and After equal to Before.
func Fix(doc any, opts Options) FixResult {
	opts.AutoFix = true
	before := Validate(doc, opts)
	if before.FixedDocument == nil {
		return FixResult{Before: before, After: before}
	}
	after := Validate(before.FixedDocument, Options{
		Mode:              opts.Mode,
		MaxTopLevelFields: opts.MaxTopLevelFields,
		MaxLookupFields:   opts.MaxLookupFields,
		IDs:               opts.IDs,
	})
	return FixResult{
		Before:   before,
		After:    after,
		Document: before.FixedDocument,
	}
}
