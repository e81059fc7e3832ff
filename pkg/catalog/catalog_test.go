package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypes_ClosedVocabulary(t *testing.T) {
	got := Types()
	if len(got) != 22 {
		t.Fatalf("expected 22 field types, got %d: %v", len(got), got)
	}
	for _, ft := range got {
		if !Known(string(ft)) {
			t.Fatalf("type %s not reported as known", ft)
		}
	}
	if Known("text") {
		t.Fatalf("lowercase tags must not be known")
	}
}

func TestLookup_NestedRequirements(t *testing.T) {
	tests := []struct {
		ft        FieldType
		nested    string
		lookup    bool
		container bool
		options   bool
	}{
		{FieldTypeSelect, KeyOptionValues, false, false, true},
		{FieldTypeRadioGroup, KeyOptionValues, false, false, true},
		{FieldTypeGridLookup, KeyLoadDataInfo, true, false, false},
		{FieldTypeListLookup, KeyLoadDataInfo, true, false, false},
		{FieldTypeGroup, KeyChildFields, false, true, false},
		{FieldTypeText, "", false, false, false},
	}
	for _, tt := range tests {
		rule, ok := Lookup(tt.ft)
		if !ok {
			t.Fatalf("%s: missing rule", tt.ft)
		}
		if rule.Nested != tt.nested {
			t.Fatalf("%s: nested = %q, want %q", tt.ft, rule.Nested, tt.nested)
		}
		if rule.IsLookup() != tt.lookup || rule.IsContainer() != tt.container || rule.HasOptions() != tt.options {
			t.Fatalf("%s: unexpected classification %+v", tt.ft, rule)
		}
	}
}

func TestRuleDefault_ReturnsFreshCopies(t *testing.T) {
	rule, _ := Lookup(FieldTypeSelect)
	first, ok := rule.Default(KeyOptionValues)
	if !ok {
		t.Fatalf("expected option defaults")
	}
	first.(map[string]any)["option1"] = "mutated"

	second, _ := rule.Default(KeyOptionValues)
	want := map[string]any{"option1": "Option 1", "option2": "Option 2"}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Fatalf("defaults mutated through copy (-want +got):\n%s", diff)
	}

	lookup, _ := Lookup(FieldTypeGridLookup)
	model, ok := lookup.Default(KeyLoadDataInfo + "." + KeyDataModel)
	if !ok || model != "DefaultModel" {
		t.Fatalf("unexpected data model default %v", model)
	}
}

func TestDatePkrIsSuperseded(t *testing.T) {
	rule, _ := Lookup(FieldTypeDatePkr)
	if rule.ReplacedBy != FieldTypeDatePicker {
		t.Fatalf("expected DATEPKR to point at DATEPICKER, got %q", rule.ReplacedBy)
	}
}

func TestRuleVocabulary(t *testing.T) {
	for _, v := range []string{"ERROR", "WARNING", "INFO"} {
		if !IsRuleType(v) {
			t.Fatalf("%s should be a rule type", v)
		}
	}
	if IsRuleType("error") {
		t.Fatalf("rule types are case sensitive")
	}
	if !IsNullCheck(OperatorIsNull) || !IsNullCheck(OperatorIsEmpty) || IsNullCheck(OperatorIsNotNull) {
		t.Fatalf("unexpected null-check classification")
	}
}
