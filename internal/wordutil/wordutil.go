// Package wordutil implements the character classification rules shared by
// the prefix extractor, word search, and the tail-matching providers.
package wordutil

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var foldCaser = cases.Fold()

// IsWordChar reports whether r is a "word character": any Unicode
// alphanumeric, plus '_' and '-' (spec.md GLOSSARY).
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// IsCharPrefixStop reports whether r terminates a char-prefix run: space,
// tab, newline, or carriage return (spec.md §4.3).
func IsCharPrefixStop(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// EqualFold reports whether a and b are equal under Unicode caseless
// matching. strings.EqualFold only performs simple case folding; we route
// through golang.org/x/text/cases for the full Unicode fold used to verify
// word-search candidates (spec.md §4.4 step 4: "Aho-Corasick is
// case-insensitive but Unicode case folding is coarse; verify with a
// Unicode caseless comparison").
func EqualFold(a, b string) bool {
	return foldCaser.String(a) == foldCaser.String(b)
}

// HasPrefixFold reports whether s starts with prefix under Unicode caseless
// matching.
func HasPrefixFold(s, prefix string) bool {
	folded := foldCaser.String(s)
	foldedPrefix := foldCaser.String(prefix)
	if len(foldedPrefix) > len(folded) {
		return false
	}
	return folded[:len(foldedPrefix)] == foldedPrefix
}

// ToLower lowercases s with golang.org/x/text/cases' Lower caser. This is
// not the full case fold EqualFold and HasPrefixFold use, so for some runes
// (e.g. 'ß', which folds to "ss") its output differs from theirs.
func ToLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// TailSuffixes returns suffixes of s, longest first, starting at min(maxLen,
// len(s)) runes and shrinking down to minLen runes inclusive. Used by the
// snippet and unicode-input tail-matching providers to walk char_prefix from
// longest to shortest suffix (spec.md §4.5, §4.6). Returns nil if even the
// longest permitted suffix is shorter than minLen.
func TailSuffixes(s string, minLen, maxLen int) []string {
	runes := []rune(s)
	n := len(runes)
	longest := maxLen
	if longest > n {
		longest = n
	}
	if longest < minLen {
		return nil
	}
	out := make([]string, 0, longest-minLen+1)
	for l := longest; l >= minLen; l-- {
		out = append(out, string(runes[n-l:]))
	}
	return out
}
