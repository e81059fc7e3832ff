package catalog

// FieldType is the closed vocabulary of control tags understood by the legacy
// form runtime.
type FieldType string

const (
	FieldTypeText        FieldType = "TEXT"
	FieldTypeTextArea    FieldType = "TEXTAREA"
	FieldTypeNumber      FieldType = "NUMBER"
	FieldTypeEmail       FieldType = "EMAIL"
	FieldTypePassword    FieldType = "PASSWORD"
	FieldTypeDate        FieldType = "DATE"
	FieldTypeDatePicker  FieldType = "DATEPICKER"
	FieldTypeDatePkr     FieldType = "DATEPKR"
	FieldTypeSelect      FieldType = "SELECT"
	FieldTypeMultiSelect FieldType = "MULTISELECT"
	FieldTypeRadio       FieldType = "RADIO"
	FieldTypeRadioGroup  FieldType = "RADIOGRP"
	FieldTypeCheckbox    FieldType = "CHECKBOX"
	FieldTypeSwitch      FieldType = "SWITCH"
	FieldTypeFile        FieldType = "FILE"
	FieldTypeImage       FieldType = "IMAGE"
	FieldTypeGrid        FieldType = "GRID"
	FieldTypeGridLookup  FieldType = "GRIDLKP"
	FieldTypeListLookup  FieldType = "LSTLKP"
	FieldTypeGroup       FieldType = "GROUP"
	FieldTypeLabel       FieldType = "LABEL"
	FieldTypeButton      FieldType = "BUTTON"
)

// RuleType classifies a document-level validation rule.
type RuleType string

const (
	RuleTypeError   RuleType = "ERROR"
	RuleTypeWarning RuleType = "WARNING"
	RuleTypeInfo    RuleType = "INFO"
)

// LogicalOperator joins the conditions of a rule expression.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

// Condition operators used by rule expressions.
const (
	OperatorEqual      = "EQ"
	OperatorNotEqual   = "NEQ"
	OperatorGreater    = "GT"
	OperatorGreaterEq  = "GTE"
	OperatorLess       = "LT"
	OperatorLessEq     = "LTE"
	OperatorIsNull     = "ISN"
	OperatorIsNotNull  = "ISNN"
	OperatorIsTrue     = "IST"
	OperatorIsFalse    = "ISF"
	OperatorIsEmpty    = "ISEMPTY"
	OperatorContains   = "CONTAINS"
	OperatorStartsWith = "STARTSWITH"
)

var ruleTypes = map[RuleType]struct{}{
	RuleTypeError:   {},
	RuleTypeWarning: {},
	RuleTypeInfo:    {},
}

// IsRuleType reports whether value is one of ERROR, WARNING or INFO.
func IsRuleType(value string) bool {
	_, ok := ruleTypes[RuleType(value)]
	return ok
}

// IsNullCheck reports whether operator tests a field for absence of a value.
func IsNullCheck(operator string) bool {
	return operator == OperatorIsNull || operator == OperatorIsEmpty
}
