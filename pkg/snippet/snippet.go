// Package snippet implements the Snippet data model, its TOML/VSCode-JSON
// loaders, and the by-prefix/by-tail completion provider (spec.md §4.5,
// §6.3, component C5), following the teacher's patricia-trie completion
// pattern (pkg/suggest/trie.go SearchTrie / VisitSubtree).
package snippet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/scls-go/internal/wordutil"
	"github.com/bastiangx/scls-go/pkg/completion"
)

// Snippet is an immutable loaded snippet record (spec.md §3).
type Snippet struct {
	Scope       []string
	Prefix      string
	Body        string
	Description string
}

// inScope reports whether snippet s is eligible for languageID: empty scope
// means all languages.
func (s Snippet) inScope(languageID string) bool {
	if len(s.Scope) == 0 {
		return true
	}
	for _, sc := range s.Scope {
		if sc == languageID {
			return true
		}
	}
	return false
}

// Table is the read-only, built-once lookup structure a backend holds for
// its whole lifetime (spec.md §3 Backend State, §5 "immutable after
// construction and may be shared by reference").
type Table struct {
	snippets []Snippet
	trie     *patricia.Trie // lowercased trigger -> []int indices into snippets
}

// NewTable builds a Table over snippets, indexing by lowercased trigger.
func NewTable(snippets []Snippet) *Table {
	trie := patricia.NewTrie()
	for i, s := range snippets {
		key := patricia.Prefix(wordutil.ToLower(s.Prefix))
		if existing := trie.Get(key); existing != nil {
			idxs := existing.([]int)
			trie.Insert(key, append(idxs, i))
		} else {
			trie.Insert(key, []int{i})
		}
	}
	return &Table{snippets: snippets, trie: trie}
}

// CompleteByWordPrefix implements spec.md §4.5 "by word prefix" mode. exact
// selects trigger-equality matching (used when snippets_first places
// snippets ahead of word completions) versus trigger-starts-with matching.
func (t *Table) CompleteByWordPrefix(wordPrefix string, cursorChar int, languageID string, exact bool) []completion.Item {
	if t == nil || wordPrefix == "" {
		return nil
	}
	lower := wordutil.ToLower(wordPrefix)
	start := cursorChar - len([]rune(wordPrefix))

	var items []completion.Item
	seen := make(map[int]struct{})
	add := func(idx int) {
		if _, ok := seen[idx]; ok {
			return
		}
		s := t.snippets[idx]
		if !s.inScope(languageID) {
			return
		}
		seen[idx] = struct{}{}
		items = append(items, buildItem(s, languageID, start, cursorChar))
	}

	if exact {
		if v := t.trie.Get(patricia.Prefix(lower)); v != nil {
			for _, idx := range v.([]int) {
				add(idx)
			}
		}
		return items
	}

	_ = t.trie.VisitSubtree(patricia.Prefix(lower), func(_ patricia.Prefix, item patricia.Item) error {
		for _, idx := range item.([]int) {
			add(idx)
		}
		return nil
	})
	return items
}

// CompleteByWordTail implements spec.md §4.5 "by word tail" mode: walk
// suffixes of charPrefix from longest to shortest, collecting snippets whose
// trigger starts with the suffix, stopping at maxItems.
func (t *Table) CompleteByWordTail(charPrefix string, cursorChar int, languageID string, minLen, maxLen, maxItems int) []completion.Item {
	if t == nil || charPrefix == "" {
		return nil
	}
	var items []completion.Item
	seen := make(map[int]struct{})

	for _, suffix := range wordutil.TailSuffixes(charPrefix, minLen, maxLen) {
		lower := wordutil.ToLower(suffix)
		start := cursorChar - len([]rune(suffix))
		_ = t.trie.VisitSubtree(patricia.Prefix(lower), func(_ patricia.Prefix, item patricia.Item) error {
			for _, idx := range item.([]int) {
				if _, ok := seen[idx]; ok {
					continue
				}
				s := t.snippets[idx]
				if !s.inScope(languageID) {
					continue
				}
				seen[idx] = struct{}{}
				items = append(items, buildItem(s, languageID, start, cursorChar))
			}
			return nil
		})
		if len(items) >= maxItems {
			return items[:maxItems]
		}
	}
	return items
}

func buildItem(s Snippet, languageID string, start, end int) completion.Item {
	var doc strings.Builder
	if s.Description != "" {
		doc.WriteString(s.Description)
		doc.WriteString("\n\n")
	}
	fmt.Fprintf(&doc, "```%s\n%s\n```", languageID, s.Body)

	return completion.Item{
		Label:           s.Prefix,
		InsertText:      s.Body,
		IsSnippetFormat: true,
		Kind:            completion.KindSnippet,
		FilterText:      s.Prefix,
		ReplaceStart:    start,
		ReplaceEnd:      end,
		Documentation:   doc.String(),
	}
}

// SortedByPrefix returns a copy of snippets sorted by trigger prefix. The
// loaders and cmd/scls do not call it; their tables keep load order.
func SortedByPrefix(snippets []Snippet) []Snippet {
	out := make([]Snippet, len(snippets))
	copy(out, snippets)
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}
