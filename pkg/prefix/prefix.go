// Package prefix computes the (word_prefix, char_prefix) pair left of a
// cursor position (spec.md §4.3, component C3).
package prefix

import (
	"github.com/bastiangx/scls-go/internal/wordutil"
	"github.com/bastiangx/scls-go/pkg/buffer"
	"github.com/bastiangx/scls-go/pkg/document"
	"github.com/bastiangx/scls-go/pkg/scerr"
)

// Position is a cursor location in line/column coordinates. Column is in
// whichever unit the client negotiated at initialize — UTF-32 (Unicode
// scalar values) when supported, UTF-16 code units otherwise (spec.md §9).
// Encoding tells Extract which unit Column is in.
type Position struct {
	Line   int
	Column int
}

// Encoding selects the code-unit width of Position.Column.
type Encoding int

const (
	// EncodingUTF32 treats Column as a Unicode-scalar-value offset.
	EncodingUTF32 Encoding = iota
	// EncodingUTF16 treats Column as a UTF-16 code-unit offset.
	EncodingUTF16
)

// Extracted holds the derived prefixes plus the document they were cut from.
type Extracted struct {
	WordPrefix string
	CharPrefix string
	Document   *document.Document
}

// Extract derives word_prefix and char_prefix immediately left of pos in doc
// (spec.md §4.3). maxCharsPrefixLen bounds char_prefix's length. Returns a
// scerr.KindBounds error if pos does not map into doc's buffer.
func Extract(doc *document.Document, pos Position, encoding Encoding, maxCharsPrefixLen int) (*Extracted, error) {
	if doc == nil {
		return nil, scerr.Bounds("nil document")
	}
	buf := doc.Buffer

	lineStartChar, err := buf.LineToChar(pos.Line)
	if err != nil {
		return nil, scerr.Bounds("line out of range")
	}

	col := pos.Column
	if encoding == EncodingUTF16 {
		col, err = utf16ColumnToCharOffset(buf, lineStartChar, pos.Column)
		if err != nil {
			return nil, err
		}
	}

	cursorChar := lineStartChar + col
	if cursorChar < lineStartChar {
		return nil, scerr.Bounds("negative column")
	}
	if cursorChar > buf.TotalChars() {
		return nil, scerr.Bounds("column past end of buffer")
	}

	wordStart := cursorChar
	for wordStart > lineStartChar {
		r, err := runeBefore(buf, wordStart)
		if err != nil {
			return nil, err
		}
		if !wordutil.IsWordChar(r) {
			break
		}
		wordStart--
	}
	wordPrefix := ""
	if wordStart < cursorChar {
		wordPrefix, err = buf.Slice(wordStart, cursorChar)
		if err != nil {
			return nil, err
		}
	}

	charStart := cursorChar
	minCharStart := cursorChar - maxCharsPrefixLen
	if minCharStart < 0 {
		minCharStart = 0
	}
	for charStart > minCharStart {
		r, err := runeBefore(buf, charStart)
		if err != nil {
			return nil, err
		}
		if wordutil.IsCharPrefixStop(r) {
			break
		}
		charStart--
	}
	charPrefix := ""
	if charStart < cursorChar {
		charPrefix, err = buf.Slice(charStart, cursorChar)
		if err != nil {
			return nil, err
		}
	}

	return &Extracted{WordPrefix: wordPrefix, CharPrefix: charPrefix, Document: doc}, nil
}

// ColumnToCharOffset converts a line-relative column in the given encoding
// into an absolute char index, for callers outside Extract that need the
// same line/column resolution (e.g. engine's ChangeDoc range handling).
func ColumnToCharOffset(buf *buffer.Buffer, lineStartChar, column int, encoding Encoding) (int, error) {
	if encoding == EncodingUTF16 {
		col, err := utf16ColumnToCharOffset(buf, lineStartChar, column)
		if err != nil {
			return 0, err
		}
		return lineStartChar + col, nil
	}
	charIdx := lineStartChar + column
	if charIdx > buf.TotalChars() {
		return 0, scerr.Bounds("column past end of buffer")
	}
	return charIdx, nil
}

// runeBefore returns the rune immediately left of char index charIdx.
func runeBefore(buf *buffer.Buffer, charIdx int) (rune, error) {
	s, err := buf.Slice(charIdx-1, charIdx)
	if err != nil {
		return 0, scerr.Bounds("rune before bounds")
	}
	for _, r := range s {
		return r, nil
	}
	return 0, scerr.Bounds("empty slice")
}

// utf16ColumnToCharOffset converts a UTF-16 code-unit column on the line
// starting at lineStartChar into a Unicode-scalar-value char offset, by
// walking the line counting 1 unit per BMP rune and 2 per astral rune.
func utf16ColumnToCharOffset(buf *buffer.Buffer, lineStartChar, utf16Col int) (int, error) {
	if utf16Col == 0 {
		return 0, nil
	}
	total := buf.TotalChars()
	remaining := utf16Col
	charOffset := 0
	for lineStartChar+charOffset < total {
		s, err := buf.Slice(lineStartChar+charOffset, lineStartChar+charOffset+1)
		if err != nil {
			return 0, scerr.Bounds("utf16 column out of range")
		}
		var r rune
		for _, rr := range s {
			r = rr
		}
		if r == '\n' {
			break
		}
		units := 1
		if r > 0xFFFF {
			units = 2
		}
		if remaining < units {
			break
		}
		remaining -= units
		charOffset++
		if remaining == 0 {
			break
		}
	}
	return charOffset, nil
}
