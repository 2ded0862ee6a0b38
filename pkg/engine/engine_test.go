package engine

import (
	"testing"

	"github.com/bastiangx/scls-go/pkg/config"
	"github.com/bastiangx/scls-go/pkg/prefix"
	"github.com/bastiangx/scls-go/pkg/snippet"
)

func newTestEngine() *Engine {
	settings := config.Default()
	settings.FeatureWords = true
	settings.FeatureSnippets = true
	settings.FeatureUnicodeInput = false
	settings.FeaturePaths = false
	snippets := snippet.NewTable([]snippet.Snippet{
		{Prefix: "main", Body: "def main(): pass"},
	})
	return New(settings, snippets, nil)
}

func TestCompleteMergeOrderSnippetsLast(t *testing.T) {
	e := newTestEngine()
	e.Submit(NewDoc{URI: "file:///a.py", Language: "python", Text: "mainloop\nmai"})
	done := make(chan struct{})
	go func() { e.Run(); close(done) }()

	reply := make(chan CompletionReply, 1)
	e.Submit(CompletionRequest{
		URI:      "file:///a.py",
		Position: prefix.Position{Line: 1, Column: 3},
		Encoding: prefix.EncodingUTF32,
		Reply:    reply,
	})
	r := <-reply
	e.Close()
	<-done

	if r.Err != nil {
		t.Fatalf("complete() error = %v", r.Err)
	}
	if len(r.Items) == 0 {
		t.Fatalf("expected at least one completion item")
	}
	// snippets_first defaults to false, so the word match should precede
	// the snippet in the merged array.
	if r.Items[0].InsertText != "mainloop" {
		t.Errorf("Items[0].InsertText = %q, want the word match first", r.Items[0].InsertText)
	}
}

func TestCompleteEmptyCharPrefixShortCircuits(t *testing.T) {
	e := newTestEngine()
	e.Submit(NewDoc{URI: "file:///a.py", Language: "python", Text: "\n"})
	done := make(chan struct{})
	go func() { e.Run(); close(done) }()

	reply := make(chan CompletionReply, 1)
	e.Submit(CompletionRequest{
		URI:      "file:///a.py",
		Position: prefix.Position{Line: 1, Column: 0},
		Encoding: prefix.EncodingUTF32,
		Reply:    reply,
	})
	r := <-reply
	e.Close()
	<-done

	if r.Err != nil {
		t.Fatalf("complete() error = %v", r.Err)
	}
	if len(r.Items) != 0 {
		t.Errorf("expected empty completion array for empty char_prefix, got %+v", r.Items)
	}
}

func TestCompleteUnknownDocumentErrors(t *testing.T) {
	e := newTestEngine()
	done := make(chan struct{})
	go func() { e.Run(); close(done) }()

	reply := make(chan CompletionReply, 1)
	e.Submit(CompletionRequest{
		URI:      "file:///missing.py",
		Position: prefix.Position{Line: 0, Column: 0},
		Encoding: prefix.EncodingUTF32,
		Reply:    reply,
	})
	r := <-reply
	e.Close()
	<-done

	if r.Err == nil {
		t.Fatalf("expected an error for a completion request against an unknown document")
	}
}

func TestChangeConfigurationIsIdempotent(t *testing.T) {
	e := newTestEngine()
	done := make(chan struct{})
	go func() { e.Run(); close(done) }()

	maxItems := 5
	e.Submit(ChangeConfiguration{Partial: &config.PartialSettings{MaxCompletionItems: &maxItems}})
	e.Submit(ChangeConfiguration{Partial: &config.PartialSettings{}})
	e.Close()
	<-done

	if e.settings.MaxCompletionItems != 5 {
		t.Errorf("MaxCompletionItems = %d, want 5", e.settings.MaxCompletionItems)
	}
}
