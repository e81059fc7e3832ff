package engine

import (
	"fmt"
	"sort"
	"strings"
)

// checkDuplicateIDs reports ids used by more than one field anywhere in the
// tree. All duplicates share one finding; the fix gives every holder of a
// duplicated id a fresh one.
func (p *pass) checkDuplicateIDs() {
	counts := make(map[string]int)
	walkFieldMaps(p.root[fieldsKey], func(field map[string]any, _ int) {
		if key, ok := idKey(field[idKeyName]); ok {
			counts[key]++
		}
	})

	var dups []string
	for key, n := range counts {
		if n > 1 {
			dups = append(dups, key)
		}
	}
	if len(dups) == 0 {
		return
	}
	sort.Strings(dups)

	p.fail(finding{
		code:       CodeFieldsDuplicateID,
		field:      fieldsKey,
		deduction:  10,
		fixable:    true,
		message:    fmt.Sprintf("Duplicate field IDs: %s", strings.Join(dups, ", ")),
		suggestion: "Every field Id must be unique across the form, nested fields included",
	})

	duplicated := make(map[string]struct{}, len(dups))
	for _, key := range dups {
		duplicated[key] = struct{}{}
	}
	walkFieldMaps(p.fixed[fieldsKey], func(field map[string]any, position int) {
		key, ok := idKey(field[idKeyName])
		if !ok {
			return
		}
		if _, dup := duplicated[key]; dup {
			field[idKeyName] = p.ids.field(position)
		}
	})
}
