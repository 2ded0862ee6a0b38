// Package citation implements the BibLaTeX citation-key completion provider
// (spec.md §4.8, component C8, optional feature).
package citation

import (
	"fmt"
	"os"
	"strings"

	"github.com/coregx/coregex"

	"github.com/bastiangx/scls-go/internal/logger"
	"github.com/bastiangx/scls-go/internal/wordutil"
	"github.com/bastiangx/scls-go/pkg/completion"
)

var log = logger.New("citation")

// Entry is one parsed BibLaTeX @entry.
type Entry struct {
	Key       string
	Type      string
	Fields    map[string]string
	RawSource string
}

// Triggered reports whether trigger appears anywhere in charPrefix
// (spec.md §4.8: "Activated when the configured citation trigger ... appears
// anywhere in char_prefix").
func Triggered(charPrefix, trigger string) bool {
	return trigger != "" && strings.Contains(charPrefix, trigger)
}

// ExtractBibPaths applies re over the full buffer text and returns capture
// group 1 of every match (spec.md §4.8 step 1). coregex has no
// FindAllStringSubmatch, so this walks FindStringSubmatchIndex by hand,
// advancing past each match the same way (*regexp.Regexp).FindAllString
// would.
func ExtractBibPaths(bufferText string, re *coregex.Regex) []string {
	var paths []string
	pos := 0
	for pos <= len(bufferText) {
		idx := re.FindStringSubmatchIndex(bufferText[pos:])
		if idx == nil {
			break
		}
		if len(idx) >= 4 && idx[2] >= 0 && idx[3] >= 0 {
			path := bufferText[pos+idx[2] : pos+idx[3]]
			if path != "" {
				paths = append(paths, path)
			}
		}
		end := pos + idx[1]
		if end > pos {
			pos = end
		} else {
			pos++
		}
	}
	return paths
}

// expandHome expands a leading "~" to homeDir.
func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return homeDir + path[1:]
	}
	return path
}

// LoadEntries reads and parses every bib file named by paths (with "~"
// expanded against homeDir), logging and skipping any file that cannot be
// read or parsed (spec.md §4.8 step 2).
func LoadEntries(paths []string, homeDir string) []Entry {
	var entries []Entry
	for _, p := range paths {
		full := expandHome(p, homeDir)
		data, err := os.ReadFile(full)
		if err != nil {
			log.Errorf("failed to read bibliography %s: %v", full, err)
			continue
		}
		parsed, err := Parse(string(data))
		if err != nil {
			log.Errorf("failed to parse bibliography %s: %v", full, err)
			continue
		}
		entries = append(entries, parsed...)
	}
	return entries
}

// Complete implements spec.md §4.8 step 3: entries whose key starts with
// wordPrefix case-insensitively become completions, bounded by maxItems
// across all bibliography files combined.
func Complete(entries []Entry, wordPrefix string, cursorChar, maxItems int) []completion.Item {
	start := cursorChar - len([]rune(wordPrefix))
	var items []completion.Item
	for _, e := range entries {
		if !wordutil.HasPrefixFold(e.Key, wordPrefix) {
			continue
		}
		items = append(items, completion.Item{
			Label:        "@" + e.Key,
			InsertText:   e.Key,
			Kind:         completion.KindReference,
			FilterText:   wordPrefix,
			ReplaceStart: start,
			ReplaceEnd:   cursorChar,
			Documentation: documentationFor(e),
		})
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

func documentationFor(e Entry) string {
	var b strings.Builder
	title, hasTitle := e.Fields["title"]
	if hasTitle {
		fmt.Fprintf(&b, "**%s**\n\n", title)
	}
	if authors, ok := e.Fields["author"]; ok {
		fmt.Fprintf(&b, "*%s*\n\n", authors)
	}
	fmt.Fprintf(&b, "- type: `%s`\n", e.Type)
	if date, ok := e.Fields["date"]; ok {
		fmt.Fprintf(&b, "- date: %s\n", date)
	} else if year, ok := e.Fields["year"]; ok {
		fmt.Fprintf(&b, "- year: %s\n", year)
	}
	if !hasTitle {
		b.WriteString("\n```bibtex\n")
		b.WriteString(e.RawSource)
		b.WriteString("\n```\n")
	}
	return b.String()
}
