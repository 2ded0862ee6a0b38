package snippet

import "testing"

func TestCompleteByWordPrefixS3(t *testing.T) {
	snippets := []Snippet{
		{Scope: []string{"python"}, Prefix: "ma", Body: "def main(): pass"},
		{Scope: []string{"c"}, Prefix: "ma", Body: "malloc"},
	}
	table := NewTable(snippets)

	items := table.CompleteByWordPrefix("ma", 2, "python", false)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].InsertText != "def main(): pass" {
		t.Errorf("InsertText = %q, want %q", items[0].InsertText, "def main(): pass")
	}
}

func TestCompleteByWordPrefixExactMode(t *testing.T) {
	snippets := []Snippet{
		{Prefix: "main", Body: "def main(): pass"},
		{Prefix: "mainloop", Body: "while True: pass"},
	}
	table := NewTable(snippets)

	exact := table.CompleteByWordPrefix("main", 4, "python", true)
	if len(exact) != 1 || exact[0].InsertText != "def main(): pass" {
		t.Fatalf("exact mode = %+v, want exactly the 'main' snippet", exact)
	}

	nonExact := table.CompleteByWordPrefix("main", 4, "python", false)
	if len(nonExact) != 2 {
		t.Fatalf("non-exact mode = %d items, want 2", len(nonExact))
	}
}

func TestCompleteByWordTail(t *testing.T) {
	snippets := []Snippet{
		{Prefix: "bar", Body: "BAR_BODY"},
	}
	table := NewTable(snippets)
	items := table.CompleteByWordTail("foobar", 6, "python", 2, 64, 10)
	if len(items) != 1 || items[0].InsertText != "BAR_BODY" {
		t.Fatalf("CompleteByWordTail = %+v, want one BAR_BODY match", items)
	}
	if items[0].ReplaceStart != 3 || items[0].ReplaceEnd != 6 {
		t.Errorf("replace range = [%d,%d), want [3,6)", items[0].ReplaceStart, items[0].ReplaceEnd)
	}
}

func TestScopeFiltering(t *testing.T) {
	snippets := []Snippet{{Scope: []string{"go"}, Prefix: "ma", Body: "x"}}
	table := NewTable(snippets)
	if items := table.CompleteByWordPrefix("ma", 2, "python", false); len(items) != 0 {
		t.Fatalf("expected no items for out-of-scope language, got %+v", items)
	}
}
