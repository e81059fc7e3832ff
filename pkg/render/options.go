package render

// Options describe per-call presentation settings. Renderers ignore what
// they cannot express.
type Options struct {
	// Location names the validated document in headings (a path or URL).
	Location string
	// Title overrides the HTML page title.
	Title string
	// HideSuggestions drops advisory findings from text and HTML output.
	HideSuggestions bool
	// IncludeDocument keeps Report.FixedDocument in structured output. It is
	// omitted by default so reports stay small.
	IncludeDocument bool
}
