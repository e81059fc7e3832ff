package form

import "github.com/goliatone/go-formcheck/pkg/catalog"

// FormDocument is the typed view of a form definition. Case variants found on
// the wire are folded into the canonical fields while decoding, so nothing
// downstream needs to know about them.
type FormDocument struct {
	MenuID      string           `json:"MenuID"`
	Label       string           `json:"Label"`
	FormWidth   string           `json:"FormWidth,omitempty"`
	Layout      string           `json:"Layout,omitempty"`
	Fields      []Field          `json:"Fields"`
	Validations []ValidationRule `json:"Validations"`
}

// Field models one control of the form.
type Field struct {
	ID              string            `json:"Id"`
	Type            catalog.FieldType `json:"Type"`
	Label           string            `json:"Label,omitempty"`
	Value           any               `json:"Value,omitempty"`
	Inline          bool              `json:"Inline,omitempty"`
	Required        bool              `json:"Required,omitempty"`
	Outlined        bool              `json:"Outlined,omitempty"`
	IsGroup         bool              `json:"isGroup,omitempty"`
	ShowDescription bool              `json:"ShowDescription,omitempty"`
	Visible         *bool             `json:"Visible,omitempty"`
	Width           string            `json:"Width,omitempty"`
	Spacing         string            `json:"Spacing,omitempty"`
	OptionValues    map[string]string `json:"OptionValues,omitempty"`
	KeyColumn       string            `json:"KeyColumn,omitempty"`
	LoadDataInfo    *LoadDataInfo     `json:"LoadDataInfo,omitempty"`
	ChildFields     []Field           `json:"ChildFields,omitempty"`
	Validations     []ValidationRule  `json:"Validations,omitempty"`

	// Path locates the field inside the source document, e.g.
	// "Fields[2].ChildFields[0]".
	Path string `json:"-"`
}

// LoadDataInfo describes where a lookup field reads its rows from.
type LoadDataInfo struct {
	DataModel         string       `json:"DataModel"`
	ColumnsDefinition []ColumnSpec `json:"ColumnsDefinition"`
}

// ColumnSpec is one column of a lookup grid.
type ColumnSpec struct {
	DataField string `json:"DataField"`
	Caption   string `json:"Caption,omitempty"`
	DataType  string `json:"DataType,omitempty"`
	Visible   bool   `json:"Visible"`
}

// ValidationRule is a document-level (or field-level) business rule.
type ValidationRule struct {
	ID         string              `json:"Id"`
	Type       catalog.RuleType    `json:"Type"`
	Expression ConditionExpression `json:"ConditionExpression"`

	Path string `json:"-"`
}

// ConditionExpression combines conditions with a logical operator.
type ConditionExpression struct {
	LogicalOperator catalog.LogicalOperator `json:"LogicalOperator,omitempty"`
	Conditions      []Condition             `json:"Conditions"`
}

// Condition compares the field named by RightField.
type Condition struct {
	RightField string `json:"RightField"`
	Operator   string `json:"Operator"`
	Value      any    `json:"Value,omitempty"`
	ValueType  string `json:"ValueType,omitempty"`
}

// IsLookup reports whether the field type reads from a data model.
func (f Field) IsLookup() bool {
	rule, ok := catalog.Lookup(f.Type)
	return ok && rule.IsLookup()
}

// Walk visits every field of the document depth-first, parents before
// children. Returning false from fn stops the walk.
func (d FormDocument) Walk(fn func(Field) bool) {
	walkFields(d.Fields, fn)
}

func walkFields(fields []Field, fn func(Field) bool) bool {
	for _, field := range fields {
		if !fn(field) {
			return false
		}
		if !walkFields(field.ChildFields, fn) {
			return false
		}
	}
	return true
}

// FieldCount returns the number of fields in the tree, nested ones included.
func (d FormDocument) FieldCount() int {
	count := 0
	d.Walk(func(Field) bool {
		count++
		return true
	})
	return count
}

// FieldByID returns the first field in walk order carrying id.
func (d FormDocument) FieldByID(id string) (Field, bool) {
	var (
		found Field
		ok    bool
	)
	d.Walk(func(f Field) bool {
		if f.ID == id {
			found, ok = f, true
			return false
		}
		return true
	})
	return found, ok
}

// HasNullCheck reports whether any of rules inspects fieldID with an is-null
// or is-empty operator.
func HasNullCheck(rules []ValidationRule, fieldID string) bool {
	for _, rule := range rules {
		for _, cond := range rule.Expression.Conditions {
			if cond.RightField == fieldID && catalog.IsNullCheck(cond.Operator) {
				return true
			}
		}
	}
	return false
}
