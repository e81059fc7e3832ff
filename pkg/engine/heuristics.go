package engine

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcheck/pkg/catalog"
	"github.com/goliatone/go-formcheck/pkg/form"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// suggest adds advisory findings. They never change the score.
func (p *pass) suggest() {
	doc := form.FromTree(p.root)

	if n := sequenceLen(p.root[fieldsKey]); n > p.opts.MaxTopLevelFields {
		p.hint(finding{
			code:       CodeHintPagination,
			field:      fieldsKey,
			message:    fmt.Sprintf("Form has %d top-level fields", n),
			suggestion: "Split the form into sections or pages",
		})
	}

	lookups := 0
	doc.Walk(func(f form.Field) bool {
		if f.IsLookup() {
			lookups++
		}
		p.suggestForField(doc, f)
		return true
	})

	if lookups > p.opts.MaxLookupFields {
		p.hint(finding{
			code:       CodeHintLookups,
			field:      fieldsKey,
			message:    fmt.Sprintf("Form has %d lookup fields", lookups),
			suggestion: "Load lookup data lazily to keep the form responsive",
		})
	}

	if len(doc.Validations) == 0 && len(doc.Fields) > 0 {
		p.hint(finding{
			code:       CodeHintNoRules,
			field:      rulesKey,
			message:    "Form has no validation rules",
			suggestion: "Add rules for the fields that need them",
		})
	}
}

func (p *pass) suggestForField(doc form.FormDocument, f form.Field) {
	labelPath := joinPath(f.Path, catalog.KeyLabel)
	switch {
	case strings.TrimSpace(f.Label) == "":
		p.hint(finding{
			code:       CodeHintLabelMissing,
			field:      labelPath,
			message:    "Field has no label",
			suggestion: "Add a label for accessibility",
		})
	case hasMarkup(f.Label):
		p.hint(finding{
			code:       CodeHintLabelMarkup,
			field:      labelPath,
			message:    "Field label contains markup",
			suggestion: "Use plain text labels",
		})
	}

	if f.Required && f.ID != "" &&
		!form.HasNullCheck(doc.Validations, f.ID) &&
		!form.HasNullCheck(f.Validations, f.ID) {
		p.hint(finding{
			code:       CodeHintRequiredRule,
			field:      joinPath(f.Path, catalog.KeyRequired),
			message:    fmt.Sprintf("Required field %s has no empty-value rule", f.ID),
			suggestion: fmt.Sprintf("Add a rule on %s with %s or %s", f.ID, catalog.OperatorIsNull, catalog.OperatorIsEmpty),
		})
	}
}

// hasMarkup reports whether label would change when stripped of HTML.
func hasMarkup(label string) bool {
	if !strings.ContainsAny(label, "<>") {
		return false
	}
	stripped := html.UnescapeString(labelSanitizer().Sanitize(label))
	return stripped != label
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
