// Package engine implements the single-consumer request loop and backend
// state machine (spec.md §4.9, component C9).
package engine

import (
	"github.com/bastiangx/scls-go/pkg/completion"
	"github.com/bastiangx/scls-go/pkg/config"
	"github.com/bastiangx/scls-go/pkg/prefix"
)

// Message is the sum type accepted by Engine.Submit. Each concrete type
// below is one of the five message kinds spec.md §4.9 names.
type Message interface{ isMessage() }

// NewDoc inserts or replaces the document at URI with a freshly built buffer.
type NewDoc struct {
	URI      string
	Language string
	Text     string
}

// SaveDoc replaces the buffer with Text if non-nil, otherwise rereads the
// file at the URI's path and rebuilds the buffer. A missing document is
// logged as an error, not reported back (there is no reply channel).
type SaveDoc struct {
	URI  string
	Text *string
}

// Range is a half-open span in line/character coordinates. A nil *Range on
// a ChangeEvent means "replace the whole document".
type Range struct {
	Start, End prefix.Position
}

// ChangeEvent is one incremental edit (spec.md §4.9 ChangeDoc).
type ChangeEvent struct {
	Range *Range
	Text  string
}

// ChangeDoc applies a sequence of incremental edits, in order, to the
// document at URI.
type ChangeDoc struct {
	URI     string
	Changes []ChangeEvent
	// Encoding is the position encoding the edits' Range values are
	// expressed in, negotiated once at initialize time (spec.md §9).
	Encoding prefix.Encoding
}

// ChangeConfiguration merges a partial settings payload into the current
// settings and recompiles derived state (the citation regex).
type ChangeConfiguration struct {
	Partial *config.PartialSettings
}

// CompletionReply carries the result of a CompletionRequest back through its
// one-shot reply channel.
type CompletionReply struct {
	Items []completion.Item
	Err   error
}

// CompletionRequest runs the full provider pipeline for one cursor position
// and replies on Reply exactly once.
type CompletionRequest struct {
	URI      string
	Position prefix.Position
	Encoding prefix.Encoding
	Reply    chan CompletionReply
}

func (NewDoc) isMessage()              {}
func (SaveDoc) isMessage()             {}
func (ChangeDoc) isMessage()           {}
func (ChangeConfiguration) isMessage() {}
func (CompletionRequest) isMessage()   {}
