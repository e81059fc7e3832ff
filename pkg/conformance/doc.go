// Package conformance checks form definitions against the canonical JSON
// Schema (draft 2020-12) embedded in the package. The engine reports legacy
// encodings as findings and repairs them; this package answers a narrower
// question, whether a document already has the canonical shape, and is
// typically run on a repaired document before it is written out.
package conformance
