package engine

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func suggestionCodes(r Report) []string {
	var out []string
	for _, f := range r.Suggestions {
		out = append(out, f.Code+" "+f.Field)
	}
	return out
}

func textFields(n int) []any {
	fields := make([]any, n)
	for i := range fields {
		fields[i] = map[string]any{"Id": fmt.Sprintf("f%d", i), "Type": "TEXT", "Label": fmt.Sprintf("F%d", i)}
	}
	return fields
}

func nullRule(fieldID, operator string) map[string]any {
	return map[string]any{
		"Id":   "r-" + fieldID,
		"Type": "ERROR",
		"ConditionExpression": map[string]any{
			"Conditions": []any{map[string]any{"RightField": fieldID, "Operator": operator}},
		},
	}
}

func TestSuggestions(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		opts Options
		want []string
	}{
		{
			name: "missing labels everywhere in the tree",
			doc: map[string]any{
				"MenuID": "M", "Label": "L",
				"Fields": []any{
					map[string]any{"Id": "g", "Type": "GROUP", "Label": "G", "ChildFields": []any{
						map[string]any{"Id": "c", "Type": "TEXT", "Label": "  "},
					}},
				},
				"Validations": []any{nullRule("x", "ISN")},
			},
			want: []string{"hint.label.missing Fields[0].ChildFields[0].Label"},
		},
		{
			name: "markup in label",
			doc: map[string]any{
				"MenuID": "M", "Label": "L",
				"Fields": []any{
					map[string]any{"Id": "a", "Type": "TEXT", "Label": "<b>Amount</b>"},
					map[string]any{"Id": "b", "Type": "TEXT", "Label": "Cost < Price"},
				},
				"Validations": []any{nullRule("x", "ISN")},
			},
			want: []string{"hint.label.markup Fields[0].Label"},
		},
		{
			name: "required without empty check",
			doc: map[string]any{
				"MenuID": "M", "Label": "L",
				"Fields": []any{
					map[string]any{"Id": "a", "Type": "TEXT", "Label": "A", "Required": true},
					map[string]any{"Id": "b", "Type": "TEXT", "Label": "B", "required": true},
					map[string]any{"Id": "c", "Type": "TEXT", "Label": "C", "Required": true,
						"Validations": []any{nullRule("c", "ISEMPTY")}},
				},
				"Validations": []any{nullRule("a", "ISN"), nullRule("b", "ISNN")},
			},
			want: []string{"hint.required.rule Fields[1].Required"},
		},
		{
			name: "no rules",
			doc:  formWith(map[string]any{"Id": "a", "Type": "TEXT", "Label": "A"}),
			want: []string{"hint.rules.none Validations"},
		},
		{
			name: "pagination above the threshold",
			doc: map[string]any{
				"MenuID": "M", "Label": "L",
				"Fields":      textFields(11),
				"Validations": []any{nullRule("x", "ISN")},
			},
			opts: Options{MaxTopLevelFields: 10},
			want: []string{"hint.pagination Fields"},
		},
		{
			name: "default pagination threshold",
			doc: map[string]any{
				"MenuID": "M", "Label": "L",
				"Fields":      textFields(50),
				"Validations": []any{nullRule("x", "ISN")},
			},
		},
		{
			name: "many lookups",
			doc: map[string]any{
				"MenuID": "M", "Label": "L",
				"Fields": func() []any {
					fields := make([]any, 3)
					for i := range fields {
						fields[i] = map[string]any{
							"Id": fmt.Sprintf("l%d", i), "Type": "LSTLKP", "Label": "L", "KeyColumn": "k",
							"LoadDataInfo": map[string]any{"DataModel": "m", "ColumnsDefinition": []any{}},
						}
					}
					return fields
				}(),
				"Validations": []any{nullRule("x", "ISN")},
			},
			opts: Options{MaxLookupFields: 2},
			want: []string{"hint.lookups Fields"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.doc, tt.opts)
			if diff := cmp.Diff(tt.want, suggestionCodes(report)); diff != "" {
				t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
			}
			if report.Score != 100 {
				t.Fatalf("suggestions must not affect score, got %d (%v)", report.Score, summarize(report))
			}
		})
	}
}

func TestHasMarkup(t *testing.T) {
	cases := map[string]bool{
		"Plain":                  false,
		"A < B":                  false,
		"x > 0 & y":              false,
		"<i>Italic</i>":          true,
		"Name<script>x</script>": true,
	}
	for label, want := range cases {
		if got := hasMarkup(label); got != want {
			t.Fatalf("hasMarkup(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestComplexity(t *testing.T) {
	withChild := func(fields []any) []any {
		fields[0] = map[string]any{"Id": "g", "Type": "GROUP", "Label": "G", "ChildFields": []any{
			map[string]any{"Id": "c", "Type": "TEXT", "Label": "C"},
		}}
		return fields
	}
	withLookup := func(fields []any) []any {
		fields[0] = map[string]any{"Id": "l", "Type": "LSTLKP", "Label": "L", "KeyColumn": "k",
			"LoadDataInfo": map[string]any{"DataModel": "m", "ColumnsDefinition": []any{}}}
		return fields
	}
	rules := []any{nullRule("x", "ISN")}

	tests := []struct {
		name string
		doc  map[string]any
		want Complexity
	}{
		{"empty", map[string]any{}, ComplexitySimple},
		{"twenty fields", map[string]any{"Fields": textFields(20)}, ComplexitySimple},
		{"twenty one fields", map[string]any{"Fields": textFields(21)}, ComplexityModerate},
		{"rules only", map[string]any{"Fields": textFields(1), "Validations": rules}, ComplexityModerate},
		{"lookup only", map[string]any{"Fields": withLookup(textFields(1))}, ComplexityModerate},
		{"rules and lookups", map[string]any{"Fields": withLookup(textFields(21)), "Validations": rules}, ComplexityComplex},
		{"fifty one fields", map[string]any{"Fields": textFields(51)}, ComplexityComplex},
		{"nested and large", map[string]any{"Fields": withChild(textFields(51))}, ComplexityVeryComplex},
		{"over a hundred", map[string]any{"Fields": textFields(101)}, ComplexityVeryComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.doc, Options{}).Complexity; got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	doc := formWith(
		map[string]any{"Id": "g", "Type": "GROUP", "Label": "G", "ChildFields": []any{
			map[string]any{"Id": "c1", "Type": "TEXT", "Label": "C"},
			map[string]any{"Id": "c2", "Type": "TEXT", "Label": "C"},
		}},
		map[string]any{"Id": "t", "Type": "TEXT", "Label": "T"},
		"stray",
	)
	doc["Validations"] = []any{nullRule("t", "ISN"), nullRule("c1", "ISN")}

	want := Metrics{FieldCount: 3, TotalFieldCount: 4, ValidationCount: 2}
	if diff := cmp.Diff(want, Validate(doc, Options{}).Metrics); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}
