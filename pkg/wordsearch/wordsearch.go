// Package wordsearch implements the streaming, case-insensitive full-word
// search across open buffers (spec.md §4.4, component C4).
package wordsearch

import (
	"sort"

	"github.com/itgcl/ahocorasick"

	"github.com/bastiangx/scls-go/internal/wordutil"
	"github.com/bastiangx/scls-go/pkg/buffer"
	"github.com/bastiangx/scls-go/pkg/document"
)

// Search builds a case-insensitive Aho-Corasick automaton for the single
// pattern wordPrefix and streams every open document (cursor's document
// first) looking for full words that start with wordPrefix at a word
// boundary. Results are deduplicated across buffers and capped at maxItems.
//
// The chunk reader guarantees a word run never spans two emitted chunks
// (pkg/buffer.ChunkReader), so each chunk can be scanned for complete word
// runs independently — no cross-chunk state is needed here.
func Search(wordPrefix string, docs map[string]*document.Document, cursorURI string, maxItems int) []string {
	if wordPrefix == "" || maxItems <= 0 {
		return nil
	}
	matcher := ahocorasick.NewStringMatcher([]string{wordutil.ToLower(wordPrefix)})

	seen := make(map[string]struct{})
	var results []string

	for _, uri := range searchOrder(docs, cursorURI) {
		doc := docs[uri]
		if doc == nil || doc.Buffer == nil {
			continue
		}
		reader := buffer.NewChunkReader(doc.Buffer)
		for {
			chunk, ok := reader.Next()
			if !ok {
				break
			}
			scanChunk(string(chunk), wordPrefix, matcher, seen, &results)
			if len(results) >= maxItems {
				return results[:maxItems]
			}
		}
	}
	return results
}

// searchOrder returns document URIs with cursorURI first, the rest sorted
// for a deterministic scan order.
func searchOrder(docs map[string]*document.Document, cursorURI string) []string {
	order := make([]string, 0, len(docs))
	if _, ok := docs[cursorURI]; ok {
		order = append(order, cursorURI)
	}
	rest := make([]string, 0, len(docs))
	for uri := range docs {
		if uri == cursorURI {
			continue
		}
		rest = append(rest, uri)
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// scanChunk finds every maximal word run in chunk, keeping those that case
// folding-match wordPrefix (and excluding the byte-exact prefix itself).
func scanChunk(chunk, wordPrefix string, matcher *ahocorasick.Matcher, seen map[string]struct{}, results *[]string) {
	if !matcher.ContainsString(wordutil.ToLower(chunk)) {
		return
	}
	runes := []rune(chunk)
	i := 0
	for i < len(runes) {
		if !wordutil.IsWordChar(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && wordutil.IsWordChar(runes[i]) {
			i++
		}
		candidate := string(runes[start:i])
		if candidate == wordPrefix {
			continue
		}
		if !wordutil.HasPrefixFold(candidate, wordPrefix) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		*results = append(*results, candidate)
	}
}
