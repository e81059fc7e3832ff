package catalog

import "sort"

// Rule declares the structural requirements of a field type.
type Rule struct {
	Type FieldType
	// Nested is the key of the mandatory nested block, empty when the type
	// carries no nested configuration.
	Nested string
	// Alternates are keys accepted in place of Nested.
	Alternates []string
	// NestedRequired lists keys that must exist inside the Nested block.
	NestedRequired []string
	// Recommended lists sibling keys that should be set but cannot be
	// synthesised.
	Recommended []string
	// ReplacedBy names the current tag when Type is a superseded alias.
	ReplacedBy FieldType

	defaults map[string]any
}

// Default returns a fresh copy of the value synthesised for key on auto-fix.
// Keys address either the nested block itself or one of its required
// entries ("LoadDataInfo.DataModel").
func (r Rule) Default(key string) (any, bool) {
	value, ok := r.defaults[key]
	if !ok {
		return nil, false
	}
	return copyDefault(value), true
}

// IsLookup reports whether the type reads its values from a data model.
func (r Rule) IsLookup() bool {
	return r.Nested == KeyLoadDataInfo
}

// IsContainer reports whether the type owns child fields.
func (r Rule) IsContainer() bool {
	return r.Nested == KeyChildFields
}

// HasOptions reports whether the type needs a fixed option list.
func (r Rule) HasOptions() bool {
	return r.Nested == KeyOptionValues
}

func optionRule(t FieldType) Rule {
	return Rule{
		Type:       t,
		Nested:     KeyOptionValues,
		Alternates: []string{KeyOptions},
		defaults: map[string]any{
			KeyOptionValues: map[string]any{
				"option1": "Option 1",
				"option2": "Option 2",
			},
		},
	}
}

func lookupRule(t FieldType) Rule {
	return Rule{
		Type:           t,
		Nested:         KeyLoadDataInfo,
		NestedRequired: []string{KeyDataModel, KeyColumnsDefinition},
		Recommended:    []string{KeyKeyColumn},
		defaults: map[string]any{
			KeyLoadDataInfo + "." + KeyDataModel:         "DefaultModel",
			KeyLoadDataInfo + "." + KeyColumnsDefinition: []any{},
		},
	}
}

var rules = map[FieldType]Rule{
	FieldTypeText:        {Type: FieldTypeText},
	FieldTypeTextArea:    {Type: FieldTypeTextArea},
	FieldTypeNumber:      {Type: FieldTypeNumber},
	FieldTypeEmail:       {Type: FieldTypeEmail},
	FieldTypePassword:    {Type: FieldTypePassword},
	FieldTypeDate:        {Type: FieldTypeDate},
	FieldTypeDatePicker:  {Type: FieldTypeDatePicker},
	FieldTypeDatePkr:     {Type: FieldTypeDatePkr, ReplacedBy: FieldTypeDatePicker},
	FieldTypeSelect:      optionRule(FieldTypeSelect),
	FieldTypeMultiSelect: {Type: FieldTypeMultiSelect},
	FieldTypeRadio:       {Type: FieldTypeRadio},
	FieldTypeRadioGroup:  optionRule(FieldTypeRadioGroup),
	FieldTypeCheckbox:    {Type: FieldTypeCheckbox},
	FieldTypeSwitch:      {Type: FieldTypeSwitch},
	FieldTypeFile:        {Type: FieldTypeFile},
	FieldTypeImage:       {Type: FieldTypeImage},
	FieldTypeGrid:        {Type: FieldTypeGrid},
	FieldTypeGridLookup:  lookupRule(FieldTypeGridLookup),
	FieldTypeListLookup:  lookupRule(FieldTypeListLookup),
	FieldTypeGroup: {
		Type:     FieldTypeGroup,
		Nested:   KeyChildFields,
		defaults: map[string]any{KeyChildFields: []any{}},
	},
	FieldTypeLabel:  {Type: FieldTypeLabel},
	FieldTypeButton: {Type: FieldTypeButton},
}

// Lookup returns the rule registered for t.
func Lookup(t FieldType) (Rule, bool) {
	rule, ok := rules[t]
	return rule, ok
}

// Known reports whether value names a catalogued field type.
func Known(value string) bool {
	_, ok := rules[FieldType(value)]
	return ok
}

// Types returns the catalogued field types in lexical order.
func Types() []FieldType {
	out := make([]FieldType, 0, len(rules))
	for t := range rules {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func copyDefault(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = copyDefault(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = copyDefault(v)
		}
		return out
	default:
		return value
	}
}
