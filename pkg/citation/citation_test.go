package citation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/coregex"
)

const defaultCitationRegexp = `bibliography:\s*['"\[]*([~\w\./\\-]*)['"\]]*`

const sampleBib = `
@article{bellman1957dynamic,
  author = {Richard Bellman},
  title  = {Dynamic Programming},
  date   = {1957},
}

@book{brassard2008algorithmics,
  author = {Gilles Brassard and Paul Bratley},
  title  = {Fundamentals of Algorithmics},
  year   = {1996},
}

@misc{anderson1990,
  title = {Something Else},
}
`

func TestTriggered(t *testing.T) {
	if !Triggered("@b", "@") {
		t.Errorf("expected trigger to be detected in char_prefix containing it")
	}
	if Triggered("plain", "@") {
		t.Errorf("expected no trigger without '@' present")
	}
}

func TestExtractBibPaths(t *testing.T) {
	re := coregex.MustCompile(defaultCitationRegexp)
	text := "---\nbibliography: \"/tmp/b.bib\"\n---\n# doc\n"
	paths := ExtractBibPaths(text, re)
	if len(paths) != 1 || paths[0] != "/tmp/b.bib" {
		t.Fatalf("ExtractBibPaths() = %v, want [/tmp/b.bib]", paths)
	}
}

func TestParseAndCompleteS6(t *testing.T) {
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "b.bib")
	if err := os.WriteFile(bibPath, []byte(sampleBib), 0o644); err != nil {
		t.Fatal(err)
	}

	entries := LoadEntries([]string{bibPath}, dir)
	if len(entries) != 3 {
		t.Fatalf("LoadEntries() = %d entries, want 3", len(entries))
	}

	items := Complete(entries, "b", 2, 100)
	if len(items) != 2 {
		t.Fatalf("Complete() = %d items, want 2: %+v", len(items), items)
	}
	for _, it := range items {
		if it.Label[0] != '@' {
			t.Errorf("label %q should be prefixed with @", it.Label)
		}
		if it.InsertText[0] == '@' {
			t.Errorf("insertion text %q should not include the trigger", it.InsertText)
		}
	}
}

func TestParseFieldsWithNestedBraces(t *testing.T) {
	entries, err := Parse(`@article{k1, title = {A {Nested} Title}, year = {2020}}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Fields["title"] != "A {Nested} Title" {
		t.Errorf("title = %q, want %q", entries[0].Fields["title"], "A {Nested} Title")
	}
}
