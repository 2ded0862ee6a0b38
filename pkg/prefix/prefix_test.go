package prefix

import (
	"testing"

	"github.com/bastiangx/scls-go/pkg/document"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		line, col  int
		wantWord   string
		wantChar   string
	}{
		{"s1 word prefix", "hello\nhe", 1, 2, "he", "he"},
		{"s2 no match prefix still extracted", "hello\nel", 1, 2, "el", "el"},
		{"empty prefix at line start", "hello\n", 1, 0, "", ""},
		{"char prefix stops at space", "foo bar", 0, 7, "bar", "bar"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := document.New("file:///t.py", "python", tc.text)
			got, err := Extract(doc, Position{Line: tc.line, Column: tc.col}, EncodingUTF32, 64)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.WordPrefix != tc.wantWord {
				t.Errorf("WordPrefix = %q, want %q", got.WordPrefix, tc.wantWord)
			}
			if got.CharPrefix != tc.wantChar {
				t.Errorf("CharPrefix = %q, want %q", got.CharPrefix, tc.wantChar)
			}
		})
	}
}

func TestExtractBoundsError(t *testing.T) {
	doc := document.New("file:///t.py", "python", "hi")
	if _, err := Extract(doc, Position{Line: 5, Column: 0}, EncodingUTF32, 64); err == nil {
		t.Fatal("expected bounds error for out-of-range line")
	}
}

func TestExtractMaxCharsPrefixLen(t *testing.T) {
	doc := document.New("file:///t.py", "python", "abcdefghij")
	got, err := Extract(doc, Position{Line: 0, Column: 10}, EncodingUTF32, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CharPrefix != "hij" {
		t.Errorf("CharPrefix = %q, want %q", got.CharPrefix, "hij")
	}
}
