package engine

import (
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/catalog"
	"github.com/goliatone/go-formcheck/pkg/form"
)

func (p *pass) checkFields() {
	original, ok := p.root[fieldsKey].([]any)
	if !ok {
		return
	}
	fixed, _ := p.fixed[fieldsKey].([]any)
	p.checkFieldList(original, fixed, fieldsKey)
}

// checkFieldList walks a Fields or ChildFields sequence. fixed is the clone
// of original, index for index.
func (p *pass) checkFieldList(original, fixed []any, base string) {
	for idx, item := range original {
		path := indexPath(base, idx)
		raw, ok := item.(map[string]any)
		if !ok {
			p.fail(finding{
				code:      CodeFieldNotObject,
				field:     path,
				deduction: 5,
				message:   fmt.Sprintf("Field definition must be an object, got %s", form.KindOf(item)),
			})
			continue
		}
		fx, _ := fixed[idx].(map[string]any)
		p.checkField(raw, fx, idx, path)
	}
}

func (p *pass) checkField(raw, fx map[string]any, position int, path string) {
	if form.IsBlank(raw[idKeyName]) {
		p.fail(finding{
			code:       CodeFieldIDMissing,
			field:      joinPath(path, idKeyName),
			deduction:  5,
			fixable:    true,
			message:    "Field ID missing",
			suggestion: "Give every field a unique Id",
		})
		fx[idKeyName] = p.ids.field(position)
	}

	p.checkFieldType(raw, fx, path)
	p.checkAliases(raw, fx, path)

	if rule, ok := p.resolvedRule(raw, path); ok {
		p.checkNested(rule, raw, fx, path)
	}

	p.checkBooleans(raw, fx, path)
	p.checkSizes(raw, fx, path)

	if children, ok := raw[childrenKey].([]any); ok {
		fixedChildren, _ := fx[childrenKey].([]any)
		p.checkFieldList(children, fixedChildren, joinPath(path, childrenKey))
	}
}

func (p *pass) checkFieldType(raw, fx map[string]any, path string) {
	alias := aliasFor(typeKeyName)
	if !form.IsBlank(raw[alias.Canonical]) || !form.IsBlank(raw[alias.Legacy]) {
		return
	}
	p.fail(finding{
		code:       CodeFieldTypeMissing,
		field:      joinPath(path, typeKeyName),
		deduction:  5,
		fixable:    true,
		message:    "Field type missing",
		suggestion: fmt.Sprintf("Set Type, e.g. %q", defaultType),
	})
	fx[typeKeyName] = string(defaultType)
}

// checkAliases flags legacy lower-case keys used without their canonical
// counterpart and renames them in the fixed copy. A legacy key counts when
// present, whatever its value; a blank canonical key only yields to a
// non-blank legacy one.
func (p *pass) checkAliases(raw, fx map[string]any, path string) {
	for _, alias := range catalog.FieldAliases {
		legacy, ok := raw[alias.Legacy]
		if !ok {
			continue
		}
		current, present := raw[alias.Canonical]
		if present && (!form.IsBlank(current) || form.IsBlank(legacy)) {
			continue
		}
		p.warn(finding{
			code:       CodeFieldAlias,
			field:      joinPath(path, alias.Legacy),
			deduction:  alias.Deduction,
			fixable:    true,
			message:    fmt.Sprintf("Inconsistent casing: %q should be %q", alias.Legacy, alias.Canonical),
			suggestion: "Rename " + alias.Legacy + " to " + alias.Canonical,
		})
		// A blank legacy type was already replaced by the default.
		if _, repaired := fx[alias.Canonical]; present || !repaired {
			fx[alias.Canonical] = fx[alias.Legacy]
		}
		delete(fx, alias.Legacy)
	}
}

// resolvedRule looks up the catalog rule for the field's effective type.
// Unknown tags are flagged and left untouched.
func (p *pass) resolvedRule(raw map[string]any, path string) (catalog.Rule, bool) {
	value, _ := resolved(raw, aliasFor(typeKeyName))
	if form.IsBlank(value) {
		return catalog.Rule{}, false
	}
	if tag, ok := value.(string); ok {
		if rule, known := catalog.Lookup(catalog.FieldType(tag)); known {
			return rule, true
		}
	}
	p.warn(finding{
		code:       CodeFieldTypeUnknown,
		field:      joinPath(path, typeKeyName),
		deduction:  2,
		message:    fmt.Sprintf("Unknown field type: %v", value),
		suggestion: "Use one of the supported field types",
	})
	return catalog.Rule{}, false
}

func (p *pass) checkNested(rule catalog.Rule, raw, fx map[string]any, path string) {
	if rule.ReplacedBy != "" {
		p.hint(finding{
			code:       CodeFieldTypeSuperseded,
			field:      joinPath(path, typeKeyName),
			message:    fmt.Sprintf("%s is a legacy alias of %s", rule.Type, rule.ReplacedBy),
			suggestion: fmt.Sprintf("Use %s", rule.ReplacedBy),
		})
	}

	switch {
	case rule.HasOptions():
		p.checkOptions(rule, raw, fx, path)
	case rule.IsLookup():
		p.checkLookup(rule, raw, fx, path)
	case rule.IsContainer():
		if _, ok := raw[childrenKey].([]any); !ok {
			p.fail(finding{
				code:       CodeFieldChildrenMissing,
				field:      joinPath(path, childrenKey),
				deduction:  5,
				fixable:    true,
				message:    fmt.Sprintf("%s field requires a ChildFields array", rule.Type),
				suggestion: "Add ChildFields, even if empty",
			})
			fx[childrenKey], _ = rule.Default(childrenKey)
		}
	}
}

func (p *pass) checkOptions(rule catalog.Rule, raw, fx map[string]any, path string) {
	if !form.IsBlank(raw[rule.Nested]) {
		return
	}
	for _, alt := range rule.Alternates {
		if !form.IsBlank(raw[alt]) {
			return
		}
	}
	p.warn(finding{
		code:       CodeFieldOptionsMissing,
		field:      joinPath(path, rule.Nested),
		deduction:  3,
		fixable:    true,
		message:    fmt.Sprintf("%s field has no OptionValues", rule.Type),
		suggestion: "Add the selectable options",
	})
	fx[rule.Nested], _ = rule.Default(rule.Nested)
}

func (p *pass) checkLookup(rule catalog.Rule, raw, fx map[string]any, path string) {
	for _, key := range rule.Recommended {
		if form.IsBlank(raw[key]) {
			p.warn(finding{
				code:       CodeFieldLookupKey,
				field:      joinPath(path, key),
				deduction:  2,
				message:    fmt.Sprintf("Lookup field has no %s", key),
				suggestion: "Set the column that identifies a row",
			})
		}
	}

	infoPath := joinPath(path, rule.Nested)
	info, ok := raw[rule.Nested].(map[string]any)
	if !ok {
		p.fail(finding{
			code:       CodeFieldLookupMissing,
			field:      infoPath,
			deduction:  5,
			message:    fmt.Sprintf("%s field requires %s", rule.Type, rule.Nested),
			suggestion: "Describe the data model and columns the lookup reads from",
		})
		return
	}
	fixedInfo, _ := fx[rule.Nested].(map[string]any)

	if form.IsBlank(info[catalog.KeyDataModel]) {
		p.fail(finding{
			code:      CodeFieldLookupModel,
			field:     joinPath(infoPath, catalog.KeyDataModel),
			deduction: 3,
			fixable:   true,
			message:   "Lookup data model missing",
		})
		fixedInfo[catalog.KeyDataModel], _ = rule.Default(joinPath(rule.Nested, catalog.KeyDataModel))
	}
	if !isSequence(info[catalog.KeyColumnsDefinition]) {
		p.fail(finding{
			code:      CodeFieldLookupColumns,
			field:     joinPath(infoPath, catalog.KeyColumnsDefinition),
			deduction: 3,
			fixable:   true,
			message:   "Lookup columns definition must be an array",
		})
		fixedInfo[catalog.KeyColumnsDefinition], _ = rule.Default(joinPath(rule.Nested, catalog.KeyColumnsDefinition))
	}
}

func (p *pass) checkBooleans(raw, fx map[string]any, path string) {
	for _, key := range catalog.BooleanAttributes {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if _, isBool := value.(bool); isBool {
			continue
		}
		coerced := form.CoerceBool(value)
		p.fail(finding{
			code:       CodeFieldBoolean,
			field:      joinPath(path, key),
			deduction:  3,
			fixable:    true,
			message:    fmt.Sprintf("%s must be a boolean, got %s", key, form.KindOf(value)),
			suggestion: fmt.Sprintf("Use %t", coerced),
		})
		fx[key] = coerced
	}
}

// checkSizes runs after checkAliases, so a numeric legacy spacing has
// already been moved to Spacing in the fixed copy.
func (p *pass) checkSizes(raw, fx map[string]any, path string) {
	for _, key := range catalog.SizeAttributes {
		value, _ := resolved(raw, aliasFor(key))
		if !form.IsNumber(value) {
			continue
		}
		text, _ := form.Stringify(value)
		p.warn(finding{
			code:       CodeFieldSize,
			field:      joinPath(path, key),
			deduction:  1,
			fixable:    true,
			message:    fmt.Sprintf("%s should be a string, got number", key),
			suggestion: fmt.Sprintf("Use %q", text),
		})
		fx[key] = text
	}
}
