package engine

import (
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/catalog"
	"github.com/goliatone/go-formcheck/pkg/form"
)

// checkRules validates the document-level Validations sequence. Rules nested
// in fields are only consulted by the heuristics.
func (p *pass) checkRules() {
	rules, ok := p.root[rulesKey].([]any)
	if !ok {
		return
	}
	fixed, _ := p.fixed[rulesKey].([]any)
	for idx, item := range rules {
		path := indexPath(rulesKey, idx)
		raw, ok := item.(map[string]any)
		if !ok {
			p.fail(finding{
				code:      CodeRuleNotObject,
				field:     path,
				deduction: 3,
				message:   fmt.Sprintf("Validation rule must be an object, got %s", form.KindOf(item)),
			})
			continue
		}
		fx, _ := fixed[idx].(map[string]any)
		p.checkRule(raw, fx, path)
	}
}

func (p *pass) checkRule(raw, fx map[string]any, path string) {
	if form.IsBlank(raw[catalog.KeyID]) {
		// Rule ids may be referenced from outside the document, so one is
		// never invented.
		p.warn(finding{
			code:       CodeRuleIDMissing,
			field:      joinPath(path, catalog.KeyID),
			deduction:  2,
			message:    "Validation rule ID missing",
			suggestion: "Assign an Id that matches how the rule is referenced",
		})
	}

	ruleType := raw[catalog.KeyType]
	switch tag, isString := ruleType.(string); {
	case form.IsBlank(ruleType):
		p.fail(finding{
			code:       CodeRuleTypeMissing,
			field:      joinPath(path, catalog.KeyType),
			deduction:  3,
			fixable:    true,
			message:    "Validation rule type missing",
			suggestion: fmt.Sprintf("Use %s, %s or %s", catalog.RuleTypeError, catalog.RuleTypeWarning, catalog.RuleTypeInfo),
		})
		fx[catalog.KeyType] = string(catalog.RuleTypeError)
	case !isString || !catalog.IsRuleType(tag):
		p.fail(finding{
			code:       CodeRuleTypeInvalid,
			field:      joinPath(path, catalog.KeyType),
			deduction:  3,
			message:    fmt.Sprintf("Invalid validation rule type: %v", ruleType),
			suggestion: fmt.Sprintf("Use %s, %s or %s", catalog.RuleTypeError, catalog.RuleTypeWarning, catalog.RuleTypeInfo),
		})
	}

	if !form.IsBlank(raw[catalog.KeyConditionExpression]) {
		return
	}
	if !form.IsBlank(raw[catalog.KeyCondExpression]) {
		p.warn(finding{
			code:       CodeRuleExpressionAlias,
			field:      joinPath(path, catalog.KeyCondExpression),
			deduction:  1,
			fixable:    true,
			message:    fmt.Sprintf("Inconsistent naming: %s should be %s", catalog.KeyCondExpression, catalog.KeyConditionExpression),
			suggestion: "Rename " + catalog.KeyCondExpression + " to " + catalog.KeyConditionExpression,
		})
		fx[catalog.KeyConditionExpression] = fx[catalog.KeyCondExpression]
		delete(fx, catalog.KeyCondExpression)
		return
	}
	p.fail(finding{
		code:       CodeRuleExpressionMissing,
		field:      joinPath(path, catalog.KeyConditionExpression),
		deduction:  5,
		message:    "Validation rule has no condition expression",
		suggestion: "Add a ConditionExpression with at least one condition",
	})
}
