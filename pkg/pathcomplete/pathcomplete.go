// Package pathcomplete implements the filesystem path completion provider
// (spec.md §4.7, component C7).
package pathcomplete

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bastiangx/scls-go/internal/logger"
	"github.com/bastiangx/scls-go/internal/wordutil"
	"github.com/bastiangx/scls-go/pkg/completion"
)

var log = logger.New("pathcomplete")

type expansionMode int

const (
	modeAbsolute expansionMode = iota
	modeTilde
	modeRelative
	modeParent
)

// Complete implements spec.md §4.7. docDir is the directory containing the
// current document (used for "./" and "../" expansion); homeDir is $HOME
// (used for "~/" expansion). Returns nil when charPrefix does not contain
// the platform path separator — the provider is not activated.
func Complete(wordPrefix, charPrefix string, cursorChar int, docDir, homeDir string, maxItems int) []completion.Item {
	sepStr := string(filepath.Separator)
	if !strings.Contains(charPrefix, sepStr) {
		return nil
	}

	trimmed := trimLeading(charPrefix)
	mode, rest := detectMode(trimmed, sepStr)

	var absPath string
	switch mode {
	case modeTilde:
		absPath = filepath.Join(homeDir, rest)
	case modeRelative:
		absPath = filepath.Join(docDir, rest)
	case modeParent:
		absPath = filepath.Join(filepath.Dir(docDir), rest)
	default:
		absPath = rest
	}

	parentDir, partialName := splitPath(absPath, trimmed, sepStr)

	entries, err := os.ReadDir(parentDir)
	if err != nil {
		log.Errorf("failed to read directory %s: %v", parentDir, err)
		return nil
	}

	lowerPartial := wordutil.ToLower(partialName)
	start := cursorChar - len([]rune(trimmed))

	var items []completion.Item
	for _, e := range entries {
		name := e.Name()
		if !wordutil.HasPrefixFold(name, lowerPartial) && !strings.HasPrefix(wordutil.ToLower(name), lowerPartial) {
			continue
		}
		full := filepath.Join(parentDir, name)
		folded := fold(mode, full, homeDir, docDir, sepStr)

		kind := completion.KindFile
		if e.IsDir() {
			kind = completion.KindFolder
		}

		items = append(items, completion.Item{
			Label:        folded,
			InsertText:   folded,
			Kind:         kind,
			FilterText:   wordPrefix + folded,
			ReplaceStart: start,
			ReplaceEnd:   cursorChar,
		})
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

// trimLeading strips one leading character if it is not alphabetic, not the
// platform separator, not '~', and not '.' (spec.md §4.7 step 1).
func trimLeading(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	r := runes[0]
	if unicode.IsLetter(r) || r == filepath.Separator || r == '~' || r == '.' {
		return s
	}
	return string(runes[1:])
}

func detectMode(trimmed, sepStr string) (expansionMode, string) {
	switch {
	case strings.HasPrefix(trimmed, "~"+sepStr):
		return modeTilde, strings.TrimPrefix(trimmed, "~"+sepStr)
	case strings.HasPrefix(trimmed, ".."+sepStr):
		return modeParent, strings.TrimPrefix(trimmed, ".."+sepStr)
	case strings.HasPrefix(trimmed, "."+sepStr):
		return modeRelative, strings.TrimPrefix(trimmed, "."+sepStr)
	default:
		return modeAbsolute, trimmed
	}
}

func splitPath(absPath, trimmed, sepStr string) (parentDir, partialName string) {
	if strings.HasSuffix(trimmed, sepStr) {
		return absPath, ""
	}
	return filepath.Dir(absPath), filepath.Base(absPath)
}

// fold re-applies the inverse of the expansion mode so the label keeps the
// user's original shorthand (spec.md §4.7 step 5: "~/... stays ~/...").
func fold(mode expansionMode, full, homeDir, docDir, sepStr string) string {
	switch mode {
	case modeTilde:
		if rel, err := filepath.Rel(homeDir, full); err == nil {
			return "~" + sepStr + rel
		}
	case modeRelative:
		if rel, err := filepath.Rel(docDir, full); err == nil {
			return "." + sepStr + rel
		}
	case modeParent:
		if rel, err := filepath.Rel(filepath.Dir(docDir), full); err == nil {
			return ".." + sepStr + rel
		}
	}
	return full
}
