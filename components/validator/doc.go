// Package validator exposes the form-schema engine over net/http.
//
// The handler accepts POST requests carrying a JSON or YAML form document and
// answers with the validation report. Query parameters select auto-fix
// (autofix=1), the validation mode (mode=strict) and the response format
// (format=json|yaml|text|html). Reports are cached by payload digest and
// request metrics are exported through Prometheus collectors.
package validator
