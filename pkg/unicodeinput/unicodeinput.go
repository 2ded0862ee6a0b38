// Package unicodeinput implements the unicode-input tail-matching provider
// (spec.md §4.6, §6.4, component C6): a prefix -> glyph table matched
// against progressively shorter suffixes of char_prefix.
package unicodeinput

import (
	"fmt"
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/scls-go/internal/wordutil"
	"github.com/bastiangx/scls-go/pkg/completion"
)

// Item is one trigger -> replacement-glyph pair (spec.md §3).
type Item struct {
	Trigger string
	Body    string
}

// Table is the read-only, built-once lookup table (spec.md §3.9.5: "stored
// sorted by descending prefix length").
type Table struct {
	items []Item
	trie  *patricia.Trie // lowercased trigger -> []int indices into items
}

// NewTable builds a Table from items already sorted by SortDescending.
func NewTable(items []Item) *Table {
	trie := patricia.NewTrie()
	for i, it := range items {
		key := patricia.Prefix(wordutil.ToLower(it.Trigger))
		if existing := trie.Get(key); existing != nil {
			trie.Insert(key, append(existing.([]int), i))
		} else {
			trie.Insert(key, []int{i})
		}
	}
	return &Table{items: items, trie: trie}
}

// SortDescending sorts items by descending (length, lexicographic) trigger,
// mirroring the Rust sort_unstable_by + .reverse() in load_unicode_input_from_path.
func SortDescending(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return less(out[j], out[i]) })
	return out
}

// less reports whether a sorts before b under the (len, lexicographic)
// ascending order later reversed by SortDescending.
func less(a, b Item) bool {
	if len(a.Trigger) != len(b.Trigger) {
		return len(a.Trigger) < len(b.Trigger)
	}
	return a.Trigger < b.Trigger
}

// Complete implements spec.md §4.6: walk suffixes of charPrefix from the
// longest permitted down to minLen, collecting every entry whose trigger
// starts with the suffix case-insensitively, until maxItems is reached.
// wordPrefix is word_prefix, concatenated with each match's trigger to
// build the filter text the editor needs to keep the candidate visible.
func (t *Table) Complete(wordPrefix, charPrefix string, cursorChar, minLen, maxLen, maxItems int) []completion.Item {
	if t == nil || charPrefix == "" {
		return nil
	}
	var items []completion.Item
	emitIdx := 0

	for _, suffix := range wordutil.TailSuffixes(charPrefix, minLen, maxLen) {
		lower := wordutil.ToLower(suffix)
		start := cursorChar - len([]rune(suffix))
		var stop bool
		_ = t.trie.VisitSubtree(patricia.Prefix(lower), func(_ patricia.Prefix, item patricia.Item) error {
			for _, idx := range item.([]int) {
				entry := t.items[idx]
				items = append(items, completion.Item{
					Label:        entry.Body,
					InsertText:   entry.Body,
					Kind:         completion.KindText,
					FilterText:   wordPrefix + entry.Trigger,
					ReplaceStart: start,
					ReplaceEnd:   cursorChar,
					SortText:     fmt.Sprintf("%06d", emitIdx),
				})
				emitIdx++
				if len(items) >= maxItems {
					stop = true
					break
				}
			}
			return nil
		})
		if stop {
			return items[:maxItems]
		}
	}
	return items
}
