// Package completion defines the provider-agnostic completion item shape
// assembled by pkg/engine's merge policy (spec.md §4.9) and translated to
// LSP wire types at the boundary (pkg/lspserver).
package completion

// Kind classifies a completion item the way an LSP CompletionItemKind would,
// kept provider-agnostic so pkg/snippet, pkg/wordsearch, pkg/unicodeinput,
// pkg/pathcomplete, and pkg/citation don't depend on the LSP boundary.
type Kind int

const (
	KindText Kind = iota
	KindSnippet
	KindFile
	KindFolder
	KindReference
)

// Item is one completion candidate plus enough positional information for
// the LSP boundary to build a TextEdit.
type Item struct {
	Label           string
	InsertText      string
	IsSnippetFormat bool
	Kind            Kind
	FilterText      string
	// ReplaceStart/ReplaceEnd are character offsets (not byte offsets) into
	// the document buffer, spanning the text this item replaces.
	ReplaceStart  int
	ReplaceEnd    int
	Documentation string
	// SortText, when non-empty, overrides client-side default ordering
	// (used by the unicode-input provider to preserve emission order).
	SortText string
}
