package engine

import (
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/catalog"
	"github.com/goliatone/go-formcheck/pkg/form"
)

func (p *pass) checkDocument() {
	p.checkHeader(catalog.KeyMenuID, func() any { return p.ids.form() })
	p.checkHeader(catalog.KeyLabel, func() any { return defaultLabel })

	fields, present := p.root[fieldsKey]
	switch {
	case !present || form.IsBlank(fields):
		p.fail(finding{
			code:       CodeDocumentMissing,
			field:      fieldsKey,
			deduction:  20,
			fixable:    true,
			message:    "Required field missing: " + fieldsKey,
			suggestion: "Add an empty Fields list",
		})
		p.fixed[fieldsKey] = []any{}
	case !isSequence(fields):
		p.fail(finding{
			code:       CodeDocumentFieldsType,
			field:      fieldsKey,
			deduction:  15,
			fixable:    true,
			message:    fmt.Sprintf("Fields must be an array, got %s", form.KindOf(fields)),
			suggestion: "Replace Fields with a list of field definitions",
		})
		p.fixed[fieldsKey] = []any{}
	}

	switch rules := p.root[rulesKey]; {
	case form.IsBlank(rules):
		// Absent or empty rules are legal; the repaired copy still carries a list.
		p.fixed[rulesKey] = []any{}
	case !isSequence(rules):
		p.warn(finding{
			code:      CodeDocumentRulesType,
			field:     rulesKey,
			deduction: 5,
			fixable:   true,
			message:   fmt.Sprintf("Validations must be an array, got %s", form.KindOf(rules)),
		})
		p.fixed[rulesKey] = []any{}
	}

	if p.opts.Mode == ModeStrict {
		for _, key := range []string{catalog.KeyFormWidth, catalog.KeyLayout} {
			if form.IsBlank(p.root[key]) {
				p.warn(finding{
					code:       CodeDocumentRecommended,
					field:      key,
					deduction:  3,
					message:    "Recommended field missing: " + key,
					suggestion: "Set " + key + " explicitly",
				})
			}
		}
	}
}

// checkHeader validates one of the string headers (MenuID, Label). A missing
// header costs 20 points (10 as a warning in permissive mode); a present one
// that is not a string costs 5 and is stringified when it is a scalar.
func (p *pass) checkHeader(key string, fallback func() any) {
	value := p.root[key]
	if form.IsBlank(value) {
		severity, deduction := SeverityError, 20
		if p.opts.Mode == ModePermissive {
			severity, deduction = SeverityWarning, 10
		}
		p.add(severity, finding{
			code:       CodeDocumentMissing,
			field:      key,
			deduction:  deduction,
			fixable:    true,
			message:    "Required field missing: " + key,
			suggestion: "Add the " + key + " field",
		})
		p.fixed[key] = fallback()
		return
	}
	if _, ok := value.(string); ok {
		return
	}
	text, scalar := form.Stringify(value)
	p.fail(finding{
		code:      CodeDocumentType,
		field:     key,
		deduction: 5,
		fixable:   scalar,
		message:   fmt.Sprintf("%s must be a string, got %s", key, form.KindOf(value)),
	})
	if scalar {
		p.fixed[key] = text
	}
}

func isSequence(value any) bool {
	_, ok := value.([]any)
	return ok
}
