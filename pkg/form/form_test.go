package form

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/catalog"
)

func TestDecode_FoldsAliases(t *testing.T) {
	tree := map[string]any{
		"MenuID": "ACCADJ",
		"Label":  "Accrual adjustment",
		"Fields": []any{
			map[string]any{
				"Id":        "FundID",
				"label":     "FUND",
				"type":      "GRIDLKP",
				"Inline":    "yes",
				"Width":     32,
				"KeyColumn": "fund",
				"LoadDataInfo": map[string]any{
					"DataModel": "Fndmas",
					"ColumnsDefinition": []any{
						map[string]any{"DataField": "fund", "Caption": "Fund ID", "Visible": true},
					},
				},
			},
			"not a field",
			map[string]any{
				"Id":   "Grp",
				"Type": "GROUP",
				"ChildFields": []any{
					map[string]any{"Id": "Child", "Type": "SELECT", "options": map[string]any{"a": "A"}},
				},
			},
		},
		"Validations": []any{
			map[string]any{
				"Id":   "1",
				"Type": "ERROR",
				"CondExpression": map[string]any{
					"LogicalOperator": "AND",
					"Conditions": []any{
						map[string]any{"RightField": "FundID", "Operator": "ISN"},
					},
				},
			},
		},
	}

	doc, err := Decode(tree)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(doc.Fields) != 2 {
		t.Fatalf("expected non-object entries to be skipped, got %d fields", len(doc.Fields))
	}
	fund := doc.Fields[0]
	if fund.Type != catalog.FieldTypeGridLookup || fund.Label != "FUND" || !fund.Inline || fund.Width != "32" {
		t.Fatalf("unexpected lookup field: %+v", fund)
	}
	if !fund.IsLookup() || fund.LoadDataInfo == nil || fund.LoadDataInfo.DataModel != "Fndmas" {
		t.Fatalf("expected lookup metadata, got %+v", fund.LoadDataInfo)
	}
	if fund.Path != "Fields[0]" {
		t.Fatalf("unexpected path %q", fund.Path)
	}

	child := doc.Fields[1].ChildFields[0]
	if child.Path != "Fields[2].ChildFields[0]" {
		t.Fatalf("unexpected child path %q", child.Path)
	}
	if diff := cmp.Diff(map[string]string{"a": "A"}, child.OptionValues); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if got := doc.FieldCount(); got != 3 {
		t.Fatalf("expected 3 fields in tree, got %d", got)
	}
	if _, ok := doc.FieldByID("Child"); !ok {
		t.Fatalf("expected nested field lookup to succeed")
	}
	if len(doc.Validations) != 1 || doc.Validations[0].Expression.LogicalOperator != catalog.LogicalAnd {
		t.Fatalf("expected alias expression to decode, got %+v", doc.Validations)
	}
	if !HasNullCheck(doc.Validations, "FundID") || HasNullCheck(doc.Validations, "Child") {
		t.Fatalf("unexpected null-check detection")
	}
}

func TestDecode_RejectsNonObjectRoot(t *testing.T) {
	_, err := Decode([]any{})
	if !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestDecode_EmptyDocumentHasSequences(t *testing.T) {
	doc, err := Decode(map[string]any{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Fields == nil || doc.Validations == nil {
		t.Fatalf("fields and validations must never be nil: %+v", doc)
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{float64(1), true},
		{"1", true},
		{"true", true},
		{"YES", true},
		{" no ", false},
		{"0", false},
		{"false", false},
		{0, false},
		{float64(3), true},
		{-1, true},
		{"", false},
		{"maybe", true},
		{nil, false},
		{math.NaN(), false},
		{map[string]any{}, true},
	}
	for _, tt := range tests {
		if got := CoerceBool(tt.in); got != tt.want {
			t.Fatalf("CoerceBool(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{32, "32", true},
		{float64(32), "32", true},
		{12.5, "12.5", true},
		{"700px", "700px", true},
		{true, "true", true},
		{[]any{}, "", false},
	}
	for _, tt := range tests {
		got, ok := Stringify(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Stringify(%#v) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != "null" || KindOf([]any{}) != "array" || KindOf(3) != "number" || KindOf(map[string]any{}) != "object" {
		t.Fatalf("unexpected kinds")
	}
}
