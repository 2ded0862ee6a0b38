package unicodeinput

import "testing"

func TestCompleteS4(t *testing.T) {
	table := NewTable(SortDescending([]Item{
		{Trigger: "alpha", Body: "α"},
		{Trigger: "betta", Body: "β"},
	}))

	// text "α+bet", cursor at (0,5); char_prefix runs back to whitespace, so
	// it is the whole "α+bet", and its "bet" tail matches "betta".
	items := table.Complete("", "α+bet", 5, 2, 64, 100)
	var found bool
	for _, it := range items {
		if it.InsertText == "β" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Complete() = %+v, want an item with InsertText \"β\"", items)
	}
}

func TestSortDescending(t *testing.T) {
	sorted := SortDescending([]Item{
		{Trigger: "a"},
		{Trigger: "abc"},
		{Trigger: "ab"},
	})
	got := []string{sorted[0].Trigger, sorted[1].Trigger, sorted[2].Trigger}
	want := []string{"abc", "ab", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortDescending() = %v, want %v", got, want)
		}
	}
}

func TestCompleteOrderingSortText(t *testing.T) {
	table := NewTable(SortDescending([]Item{
		{Trigger: "ab", Body: "X"},
		{Trigger: "b", Body: "Y"},
	}))
	items := table.Complete("", "ab", 2, 1, 64, 100)
	if len(items) < 2 {
		t.Fatalf("expected at least 2 items, got %+v", items)
	}
	if items[0].SortText >= items[1].SortText {
		t.Errorf("SortText not monotonically increasing: %q then %q", items[0].SortText, items[1].SortText)
	}
}
