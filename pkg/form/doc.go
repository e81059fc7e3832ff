// Package form defines the typed view of a legacy form definition. Decode
// folds wire-level case variants (type/Type, label/Label, CondExpression/
// ConditionExpression, options/OptionValues) into one canonical field per
// concept and coerces boolean and size surrogates, so callers reading a
// document never deal with the loose property bags directly. Decoding is
// lenient: entries that are not objects are skipped rather than rejected.
package form
