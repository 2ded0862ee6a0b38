package lspserver

import (
	"testing"

	"github.com/bastiangx/scls-go/pkg/completion"
)

func TestTriggerCharactersIncludesAt(t *testing.T) {
	found := false
	for _, c := range triggerCharacters {
		if c == "@" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected '@' among trigger characters, got %v", triggerCharacters)
	}
}

func TestToProtocolKind(t *testing.T) {
	cases := map[completion.Kind]string{
		completion.KindText:      "Text",
		completion.KindSnippet:   "Snippet",
		completion.KindFile:      "File",
		completion.KindFolder:    "Folder",
		completion.KindReference: "Reference",
	}
	for k := range cases {
		if got := toProtocolKind(k); got == 0 && k != completion.KindText {
			t.Errorf("toProtocolKind(%v) unexpectedly zero", k)
		}
	}
}

func TestDecodePartialSettingsMap(t *testing.T) {
	payload := map[string]any{
		"max_completion_items": float64(42),
		"snippets_first":       true,
		"citation_prefix_trigger": "#",
		"unused_key":            "ignored",
	}
	partial, err := decodePartialSettingsMap(payload)
	if err != nil {
		t.Fatal(err)
	}
	if partial.MaxCompletionItems == nil || *partial.MaxCompletionItems != 42 {
		t.Errorf("MaxCompletionItems = %v, want 42", partial.MaxCompletionItems)
	}
	if partial.SnippetsFirst == nil || !*partial.SnippetsFirst {
		t.Errorf("SnippetsFirst = %v, want true", partial.SnippetsFirst)
	}
	if partial.CitationPrefixTrigger == nil || *partial.CitationPrefixTrigger != "#" {
		t.Errorf("CitationPrefixTrigger = %v, want #", partial.CitationPrefixTrigger)
	}
	if partial.FeatureWords != nil {
		t.Errorf("FeatureWords should be nil when absent from the payload")
	}
}
