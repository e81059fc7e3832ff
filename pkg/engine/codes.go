package engine

// Finding codes. They are stable identifiers for filtering and tests; the
// human-readable text lives in Finding.Message.
const (
	CodeDocumentParse         = "document.parse"
	CodeDocumentNotObject     = "document.not_object"
	CodeDocumentMissing       = "document.missing"
	CodeDocumentType          = "document.type"
	CodeDocumentFieldsType    = "document.fields.type"
	CodeDocumentRulesType     = "document.validations.type"
	CodeDocumentRecommended   = "document.recommended"
	CodeFieldNotObject        = "field.not_object"
	CodeFieldIDMissing        = "field.id.missing"
	CodeFieldTypeMissing      = "field.type.missing"
	CodeFieldTypeUnknown      = "field.type.unknown"
	CodeFieldTypeSuperseded   = "field.type.superseded"
	CodeFieldAlias            = "field.alias"
	CodeFieldOptionsMissing   = "field.options.missing"
	CodeFieldLookupMissing    = "field.lookup.missing"
	CodeFieldLookupModel      = "field.lookup.model"
	CodeFieldLookupColumns    = "field.lookup.columns"
	CodeFieldLookupKey        = "field.lookup.key"
	CodeFieldChildrenMissing  = "field.children.missing"
	CodeFieldBoolean          = "field.boolean"
	CodeFieldSize             = "field.size"
	CodeFieldsDuplicateID     = "fields.duplicate_id"
	CodeRuleNotObject         = "rule.not_object"
	CodeRuleIDMissing         = "rule.id.missing"
	CodeRuleTypeMissing       = "rule.type.missing"
	CodeRuleTypeInvalid       = "rule.type.invalid"
	CodeRuleExpressionAlias   = "rule.expression.alias"
	CodeRuleExpressionMissing = "rule.expression.missing"
	CodeHintPagination        = "hint.pagination"
	CodeHintLabelMissing      = "hint.label.missing"
	CodeHintLabelMarkup       = "hint.label.markup"
	CodeHintRequiredRule      = "hint.required.rule"
	CodeHintLookups           = "hint.lookups"
	CodeHintNoRules           = "hint.rules.none"
)
