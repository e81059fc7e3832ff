// Package engine validates legacy form definitions and repairs them.
//
// Validate walks a decoded document (the map/slice tree produced by
// pkg/document) and accumulates findings in four passes: document headers,
// fields (recursively through ChildFields), duplicate ids across the whole
// tree, and document-level validation rules. Each error or warning deducts a
// fixed number of points from a score that starts at 100. A final heuristic
// pass adds suggestions that never affect the score.
//
// Repair happens in the same walk. The engine keeps a deep copy of the input
// and applies every fix it can derive from local data to that copy; with
// Options.AutoFix the copy is returned in Report.FixedDocument. Findings that
// need outside knowledge (an unknown field type, lookup metadata, a rule id)
// are reported with AutoFixable false and left alone. Nothing is ever
// removed except a legacy key renamed to its canonical spelling.
package engine
