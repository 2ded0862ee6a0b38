// Package document defines the open-document data model (spec.md §3
// "Document"): a URI-keyed language identifier plus its mutable Text Buffer.
package document

import "github.com/bastiangx/scls-go/pkg/buffer"

// Document is one open text buffer, keyed externally by its URI string.
type Document struct {
	URI      string
	Language string
	Buffer   *buffer.Buffer
}

// New creates a Document over the given initial text.
func New(uri, language, text string) *Document {
	return &Document{
		URI:      uri,
		Language: language,
		Buffer:   buffer.New(text),
	}
}

// Replace resynchronizes the document to newText, discarding the old buffer.
// Used for full-document changes and didSave resync (spec.md §4.9); a reopen
// builds a fresh Document with New instead.
func (d *Document) Replace(newText string) {
	d.Buffer = buffer.New(newText)
}
