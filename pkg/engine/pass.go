package engine

// pass holds the state of one validation run. The original tree is only
// read; every fix is applied to fixed, a deep copy with the same shape.
type pass struct {
	opts  Options
	root  map[string]any
	fixed map[string]any
	ids   *idAllocator

	errors      []Finding
	warnings    []Finding
	suggestions []Finding
	deductions  int
}

func newPass(root map[string]any, opts Options) *pass {
	return &pass{
		opts:        opts,
		root:        root,
		fixed:       cloneMap(root),
		ids:         newIDAllocator(opts.IDs, root),
		errors:      []Finding{},
		warnings:    []Finding{},
		suggestions: []Finding{},
	}
}

type finding struct {
	code       string
	field      string
	deduction  int
	fixable    bool
	message    string
	suggestion string
}

func (p *pass) fail(f finding) {
	p.errors = append(p.errors, f.build(SeverityError))
	p.deductions += f.deduction
}

func (p *pass) warn(f finding) {
	p.warnings = append(p.warnings, f.build(SeverityWarning))
	p.deductions += f.deduction
}

func (p *pass) hint(f finding) {
	f.fixable = false
	p.suggestions = append(p.suggestions, f.build(SeveritySuggestion))
}

func (p *pass) add(severity Severity, f finding) {
	switch severity {
	case SeverityError:
		p.fail(f)
	case SeverityWarning:
		p.warn(f)
	default:
		p.hint(f)
	}
}

func (f finding) build(severity Severity) Finding {
	return Finding{
		Severity:    severity,
		Code:        f.code,
		Field:       f.field,
		Message:     f.message,
		Suggestion:  f.suggestion,
		AutoFixable: f.fixable,
	}
}

func (p *pass) report() Report {
	score := 100 - p.deductions
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	out := Report{
		IsValid:     len(p.errors) == 0,
		Errors:      p.errors,
		Warnings:    p.warnings,
		Suggestions: p.suggestions,
		Score:       score,
		Complexity:  classify(p.root),
		Metrics:     measure(p.root),
	}
	if p.opts.AutoFix {
		out.FixedDocument = p.fixed
	}
	return out
}
