package pathcomplete

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/scls-go/pkg/completion"
)

func TestCompleteS5(t *testing.T) {
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, "scls-test", "sub-folder"), 0o755); err != nil {
		t.Fatal(err)
	}
	docDir := t.TempDir()

	charPrefix := "~" + string(filepath.Separator) + "scls-test" + string(filepath.Separator) + "su"
	items := Complete("", charPrefix, len([]rune(charPrefix)), docDir, home, 100)

	want := "~" + string(filepath.Separator) + "scls-test" + string(filepath.Separator) + "sub-folder"
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].Label != want {
		t.Errorf("Label = %q, want %q", items[0].Label, want)
	}
	if items[0].Kind != completion.KindFolder {
		t.Errorf("Kind = %v, want KindFolder", items[0].Kind)
	}
	if items[0].ReplaceStart != 0 || items[0].ReplaceEnd != len([]rune(charPrefix)) {
		t.Errorf("replace range = [%d,%d), want [0,%d)", items[0].ReplaceStart, items[0].ReplaceEnd, len([]rune(charPrefix)))
	}
}

func TestCompleteNotActivatedWithoutSeparator(t *testing.T) {
	items := Complete("", "plainword", 9, t.TempDir(), t.TempDir(), 100)
	if items != nil {
		t.Fatalf("expected nil when charPrefix has no separator, got %+v", items)
	}
}

func TestCompleteRelativeMode(t *testing.T) {
	docDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(docDir, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	charPrefix := "." + string(filepath.Separator) + "as"
	items := Complete("", charPrefix, len([]rune(charPrefix)), docDir, t.TempDir(), 100)
	want := "." + string(filepath.Separator) + "assets"
	if len(items) != 1 || items[0].Label != want {
		t.Fatalf("got %+v, want one item labeled %q", items, want)
	}
}

func TestCompleteTrimsLeadingPunctuation(t *testing.T) {
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := "\"~" + string(filepath.Separator) + "no"
	cursor := len([]rune(raw))
	items := Complete("", raw, cursor, t.TempDir(), home, 100)
	want := "~" + string(filepath.Separator) + "notes"
	if len(items) != 1 || items[0].Label != want {
		t.Fatalf("got %+v, want one item labeled %q", items, want)
	}
	trimmed := cursor - 1 // the leading quote is stripped
	if items[0].ReplaceStart != cursor-trimmed {
		t.Errorf("ReplaceStart = %d, should only cover the trimmed prefix", items[0].ReplaceStart)
	}
}
