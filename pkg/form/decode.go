package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/catalog"
)

// ErrNotObject is returned when the document root is not a mapping.
var ErrNotObject = errors.New("form: document root must be an object")

// Decode builds the typed view of a parsed document. Only a non-mapping root
// is rejected; malformed entries further down are skipped so the view can be
// built for documents that still carry findings.
func Decode(tree any) (FormDocument, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return FormDocument{}, fmt.Errorf("%w (got %s)", ErrNotObject, KindOf(tree))
	}
	return FromTree(root), nil
}

// FromTree is Decode for a root already known to be a mapping.
func FromTree(root map[string]any) FormDocument {
	doc := FormDocument{
		MenuID:    stringOf(root[catalog.KeyMenuID]),
		Label:     stringOf(root[catalog.KeyLabel]),
		FormWidth: stringOf(root[catalog.KeyFormWidth]),
		Layout:    stringOf(root[catalog.KeyLayout]),
	}
	doc.Fields = decodeFields(root[catalog.KeyFields], catalog.KeyFields)
	doc.Validations = decodeRules(root[catalog.KeyValidations], catalog.KeyValidations)
	return doc
}

func decodeFields(value any, path string) []Field {
	items, _ := value.([]any)
	fields := make([]Field, 0, len(items))
	for idx, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fields = append(fields, decodeField(raw, fmt.Sprintf("%s[%d]", path, idx)))
	}
	return fields
}

func decodeField(raw map[string]any, path string) Field {
	field := Field{
		ID:              stringOf(raw[catalog.KeyID]),
		Type:            catalog.FieldType(stringOf(canonical(raw, catalog.KeyType))),
		Label:           stringOf(canonical(raw, catalog.KeyLabel)),
		Value:           canonical(raw, catalog.KeyValue),
		Inline:          CoerceBool(raw["Inline"]),
		Required:        CoerceBool(raw[catalog.KeyRequired]) || CoerceBool(raw[catalog.KeyRequiredLegacy]),
		Outlined:        CoerceBool(raw["Outlined"]),
		IsGroup:         CoerceBool(raw["isGroup"]),
		ShowDescription: CoerceBool(raw["ShowDescription"]),
		Width:           stringOf(raw[catalog.KeyWidth]),
		Spacing:         stringOf(canonical(raw, catalog.KeySpacing)),
		KeyColumn:       stringOf(raw[catalog.KeyKeyColumn]),
		Path:            path,
	}
	if visible, ok := raw["Visible"]; ok {
		v := CoerceBool(visible)
		field.Visible = &v
	}

	options := raw[catalog.KeyOptionValues]
	if options == nil {
		options = raw[catalog.KeyOptions]
	}
	field.OptionValues = decodeOptions(options)

	if info, ok := raw[catalog.KeyLoadDataInfo].(map[string]any); ok {
		field.LoadDataInfo = &LoadDataInfo{
			DataModel:         stringOf(info[catalog.KeyDataModel]),
			ColumnsDefinition: decodeColumns(info[catalog.KeyColumnsDefinition]),
		}
	}

	field.ChildFields = decodeFields(raw[catalog.KeyChildFields], path+"."+catalog.KeyChildFields)
	if len(field.ChildFields) == 0 {
		field.ChildFields = nil
	}
	field.Validations = decodeRules(raw[catalog.KeyValidations], path+"."+catalog.KeyValidations)
	if len(field.Validations) == 0 {
		field.Validations = nil
	}
	return field
}

func decodeRules(value any, path string) []ValidationRule {
	items, _ := value.([]any)
	rules := make([]ValidationRule, 0, len(items))
	for idx, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rule := ValidationRule{
			ID:   stringOf(raw[catalog.KeyID]),
			Type: catalog.RuleType(stringOf(raw[catalog.KeyType])),
			Path: fmt.Sprintf("%s[%d]", path, idx),
		}
		expr, _ := raw[catalog.KeyConditionExpression].(map[string]any)
		if expr == nil {
			expr, _ = raw[catalog.KeyCondExpression].(map[string]any)
		}
		if expr != nil {
			rule.Expression = decodeExpression(expr)
		}
		rules = append(rules, rule)
	}
	return rules
}

func decodeExpression(raw map[string]any) ConditionExpression {
	expr := ConditionExpression{
		LogicalOperator: catalog.LogicalOperator(stringOf(raw[catalog.KeyLogicalOperator])),
	}
	items, _ := raw[catalog.KeyConditions].([]any)
	for _, item := range items {
		cond, ok := item.(map[string]any)
		if !ok {
			continue
		}
		expr.Conditions = append(expr.Conditions, Condition{
			RightField: stringOf(cond[catalog.KeyRightField]),
			Operator:   stringOf(cond[catalog.KeyOperator]),
			Value:      cond[catalog.KeyValue],
			ValueType:  stringOf(cond[catalog.KeyValueType]),
		})
	}
	return expr
}

func decodeOptions(value any) map[string]string {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]string, len(typed))
		for key, label := range typed {
			out[key] = stringOf(label)
		}
		return out
	case []any:
		// Some exports write options as [{"Value": "A", "Label": "Alpha"}].
		out := make(map[string]string, len(typed))
		for _, item := range typed {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			key := stringOf(canonical(entry, catalog.KeyValue))
			if key == "" {
				continue
			}
			out[key] = stringOf(canonical(entry, catalog.KeyLabel))
		}
		return out
	default:
		return nil
	}
}

func decodeColumns(value any) []ColumnSpec {
	items, _ := value.([]any)
	columns := make([]ColumnSpec, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		columns = append(columns, ColumnSpec{
			DataField: stringOf(raw["DataField"]),
			Caption:   stringOf(raw["Caption"]),
			DataType:  stringOf(raw["DataType"]),
			Visible:   CoerceBool(raw["Visible"]),
		})
	}
	return columns
}

// canonical returns raw[key], falling back to the legacy spelling registered
// in the catalog when the canonical key is blank.
func canonical(raw map[string]any, key string) any {
	if value, ok := raw[key]; ok && !IsBlank(value) {
		return value
	}
	for _, alias := range catalog.FieldAliases {
		if alias.Canonical == key {
			if value, ok := raw[alias.Legacy]; ok {
				return value
			}
		}
	}
	return raw[key]
}

func stringOf(value any) string {
	s, _ := Stringify(value)
	return s
}

// KindOf names the structural kind of a decoded value for messages.
func KindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if IsNumber(value) {
		return "number"
	}
	return fmt.Sprintf("%T", value)
}
