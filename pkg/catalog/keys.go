package catalog

// Document-level keys.
const (
	KeyMenuID      = "MenuID"
	KeyLabel       = "Label"
	KeyFields      = "Fields"
	KeyValidations = "Validations"
	KeyFormWidth   = "FormWidth"
	KeyLayout      = "Layout"
)

// Field-level keys.
const (
	KeyID                = "Id"
	KeyType              = "Type"
	KeyValue             = "Value"
	KeySpacing           = "Spacing"
	KeyWidth             = "Width"
	KeyRequired          = "Required"
	KeyRequiredLegacy    = "required"
	KeyOptionValues      = "OptionValues"
	KeyOptions           = "options"
	KeyKeyColumn         = "KeyColumn"
	KeyLoadDataInfo      = "LoadDataInfo"
	KeyDataModel         = "DataModel"
	KeyColumnsDefinition = "ColumnsDefinition"
	KeyChildFields       = "ChildFields"
)

// Validation rule keys.
const (
	KeyConditionExpression = "ConditionExpression"
	KeyCondExpression      = "CondExpression"
	KeyLogicalOperator     = "LogicalOperator"
	KeyConditions          = "Conditions"
	KeyRightField          = "RightField"
	KeyOperator            = "Operator"
	KeyValueType           = "ValueType"
)

// Alias pairs a canonical field key with the legacy spelling older exports
// still produce. Deduction is the score cost of finding only the legacy key.
type Alias struct {
	Canonical string
	Legacy    string
	Deduction int
}

// FieldAliases lists the case variants folded into canonical keys, in the
// order they are checked.
var FieldAliases = []Alias{
	{Canonical: KeyType, Legacy: "type", Deduction: 2},
	{Canonical: KeyLabel, Legacy: "label", Deduction: 1},
	{Canonical: KeyValue, Legacy: "value", Deduction: 1},
	{Canonical: KeySpacing, Legacy: "spacing", Deduction: 1},
}

// BooleanAttributes must hold real booleans. Both spellings of required are
// in circulation and neither is renamed.
var BooleanAttributes = []string{
	"Inline",
	KeyRequired,
	KeyRequiredLegacy,
	"Outlined",
	"isGroup",
	"ShowDescription",
	"Visible",
}

// SizeAttributes must be strings ("32", "700px").
var SizeAttributes = []string{KeyWidth, KeySpacing}
