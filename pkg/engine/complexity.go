package engine

import (
	"github.com/goliatone/go-formcheck/pkg/catalog"
	"github.com/goliatone/go-formcheck/pkg/form"
)

// classify grades a form by its top-level shape:
//
//	very-complex  more than 100 fields, or nesting with more than 50
//	complex       more than 50 fields, or rules and lookups with more than 20
//	moderate      more than 20 fields, or any rules, or any lookup data
//	simple        everything else
func classify(root map[string]any) Complexity {
	fields, _ := root[fieldsKey].([]any)
	count := len(fields)

	var nested, lookups bool
	for _, item := range fields {
		field, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if sequenceLen(field[childrenKey]) > 0 {
			nested = true
		}
		if form.Truthy(field[catalog.KeyLoadDataInfo]) {
			lookups = true
		}
	}
	rules := sequenceLen(root[rulesKey]) > 0

	switch {
	case count > 100 || (nested && count > 50):
		return ComplexityVeryComplex
	case count > 50 || (rules && lookups && count > 20):
		return ComplexityComplex
	case count > 20 || rules || lookups:
		return ComplexityModerate
	default:
		return ComplexitySimple
	}
}

func measure(root map[string]any) Metrics {
	total := 0
	walkFieldMaps(root[fieldsKey], func(map[string]any, int) { total++ })
	return Metrics{
		FieldCount:      sequenceLen(root[fieldsKey]),
		TotalFieldCount: total,
		ValidationCount: sequenceLen(root[rulesKey]),
	}
}
