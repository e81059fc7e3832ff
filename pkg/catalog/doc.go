// Package catalog holds the static field rule table for legacy form
// definitions: the closed FieldType vocabulary, the wire keys (including the
// case variants older exports emit), and for every type the nested blocks it
// requires plus the defaults synthesised when a document is repaired.
//
// The package is pure data. The engine in pkg/engine consults it; nothing here
// inspects documents.
package catalog
