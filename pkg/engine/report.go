package engine

// Severity classifies a finding. Severities are report entries, not Go
// errors: the engine never fails on document content.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Finding is one observation about a document. Field holds the dotted and
// indexed path of the offending value, e.g. "Fields[0].ChildFields[1].Type".
type Finding struct {
	Severity    Severity `json:"severity" yaml:"severity"`
	Code        string   `json:"code" yaml:"code"`
	Field       string   `json:"field" yaml:"field"`
	Message     string   `json:"message" yaml:"message"`
	Suggestion  string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	AutoFixable bool     `json:"autoFixable" yaml:"autoFixable"`
}

// Complexity is a coarse size/shape classification of a form.
type Complexity string

const (
	ComplexitySimple      Complexity = "simple"
	ComplexityModerate    Complexity = "moderate"
	ComplexityComplex     Complexity = "complex"
	ComplexityVeryComplex Complexity = "very-complex"
)

// Metrics summarises the size of the validated document.
type Metrics struct {
	FieldCount      int `json:"fieldCount" yaml:"fieldCount"`
	TotalFieldCount int `json:"totalFieldCount" yaml:"totalFieldCount"`
	ValidationCount int `json:"validationCount" yaml:"validationCount"`
	Bytes           int `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

// Report is the outcome of a validation run. IsValid holds exactly when
// Errors is empty; Score is an independent 0-100 quality signal.
// FixedDocument is set only when auto-fix was requested and the input was an
// object.
type Report struct {
	IsValid       bool       `json:"isValid" yaml:"isValid"`
	Errors        []Finding  `json:"errors" yaml:"errors"`
	Warnings      []Finding  `json:"warnings" yaml:"warnings"`
	Suggestions   []Finding  `json:"suggestions" yaml:"suggestions"`
	Score         int        `json:"score" yaml:"score"`
	FixedDocument any        `json:"fixedDocument,omitempty" yaml:"fixedDocument,omitempty"`
	Complexity    Complexity `json:"complexity" yaml:"complexity"`
	Metrics       Metrics    `json:"metrics" yaml:"metrics"`
}

// Findings returns errors, warnings and suggestions in that order.
func (r Report) Findings() []Finding {
	out := make([]Finding, 0, len(r.Errors)+len(r.Warnings)+len(r.Suggestions))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Suggestions...)
	return out
}

// FixableCount returns how many errors and warnings carry AutoFixable.
func (r Report) FixableCount() int {
	count := 0
	for _, f := range r.Errors {
		if f.AutoFixable {
			count++
		}
	}
	for _, f := range r.Warnings {
		if f.AutoFixable {
			count++
		}
	}
	return count
}

// HasCode reports whether any finding carries code.
func (r Report) HasCode(code string) bool {
	for _, f := range r.Findings() {
		if f.Code == code {
			return true
		}
	}
	return false
}

func degenerateReport(code, message string) Report {
	return Report{
		IsValid: false,
		Errors: []Finding{{
			Severity: SeverityError,
			Code:     code,
			Field:    "document",
			Message:  message,
		}},
		Warnings:    []Finding{},
		Suggestions: []Finding{},
		Score:       0,
		Complexity:  ComplexitySimple,
	}
}
