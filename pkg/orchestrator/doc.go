// Package orchestrator wires the loader → engine → conformance → renderer
// pipeline so commands and servers can check a document with one call.
package orchestrator
