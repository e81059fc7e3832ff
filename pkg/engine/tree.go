package engine

import (
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/catalog"
	"github.com/goliatone/go-formcheck/pkg/form"
)

const (
	fieldsKey    = catalog.KeyFields
	childrenKey  = catalog.KeyChildFields
	idKeyName    = catalog.KeyID
	rulesKey     = catalog.KeyValidations
	typeKeyName  = catalog.KeyType
	defaultType  = catalog.FieldTypeText
	defaultLabel = "New Form"
)

// clone deep-copies the mapping/sequence skeleton of a decoded tree. Scalars
// are immutable and shared.
func clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = clone(item)
		}
		return out
	default:
		return value
	}
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = clone(value)
	}
	return out
}

// walkFieldMaps visits every field mapping reachable from a Fields sequence,
// descending into ChildFields. Non-mapping entries are skipped.
func walkFieldMaps(value any, fn func(field map[string]any, position int)) {
	items, _ := value.([]any)
	for idx, item := range items {
		field, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fn(field, idx)
		walkFieldMaps(field[childrenKey], fn)
	}
}

// resolved returns the value of an aliased key the way decoding folds it:
// the canonical key wins unless blank, then the legacy spelling if present.
func resolved(raw map[string]any, alias catalog.Alias) (any, bool) {
	if value, ok := raw[alias.Canonical]; ok && !form.IsBlank(value) {
		return value, true
	}
	if alias.Legacy != "" {
		if value, ok := raw[alias.Legacy]; ok {
			return value, true
		}
	}
	value, ok := raw[alias.Canonical]
	return value, ok
}

func aliasFor(canonical string) catalog.Alias {
	for _, alias := range catalog.FieldAliases {
		if alias.Canonical == canonical {
			return alias
		}
	}
	return catalog.Alias{Canonical: canonical}
}

func indexPath(base string, idx int) string {
	return fmt.Sprintf("%s[%d]", base, idx)
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func sequenceLen(value any) int {
	items, _ := value.([]any)
	return len(items)
}
