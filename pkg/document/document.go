package document

import "errors"

var (
	errSourceRequired = errors.New("document: source is required")
	errEmptyDocument  = errors.New("document: raw document is empty")
)

// Document wraps a raw form-definition payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errSourceRequired
	}
	if len(raw) == 0 {
		return Document{}, errEmptyDocument
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Size returns the payload length in bytes.
func (d Document) Size() int {
	return len(d.raw)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format reports the encoding detected for the payload.
func (d Document) Format() Format {
	return DetectFormat(d.raw)
}

// Parse decodes the payload into a generic tree (see Parse).
func (d Document) Parse() (any, error) {
	return Parse(d.raw)
}
