package engine

import (
	"github.com/bastiangx/scls-go/pkg/document"
	"github.com/bastiangx/scls-go/pkg/prefix"
)

// charOffset resolves a Position to an absolute char index in doc's buffer,
// honoring the negotiated position encoding (spec.md §9).
func charOffset(doc *document.Document, pos prefix.Position, encoding prefix.Encoding) (int, error) {
	lineStart, err := doc.Buffer.LineToChar(pos.Line)
	if err != nil {
		return 0, err
	}
	return prefix.ColumnToCharOffset(doc.Buffer, lineStart, pos.Column, encoding)
}

func cursorCharOffset(doc *document.Document, pos prefix.Position, encoding prefix.Encoding) (int, error) {
	return charOffset(doc, pos, encoding)
}

// applyChange applies one incremental edit to doc (spec.md §4.9 ChangeDoc):
// missing range means full-document replace; if the start resolves but the
// end does not, remove from start to end-of-buffer and insert; if neither
// resolves, replace the whole document; if both resolve, remove the span
// and insert the text.
func applyChange(doc *document.Document, ch ChangeEvent, encoding prefix.Encoding) error {
	if ch.Range == nil {
		doc.Replace(ch.Text)
		return nil
	}

	start, startErr := charOffset(doc, ch.Range.Start, encoding)
	end, endErr := charOffset(doc, ch.Range.End, encoding)

	switch {
	case startErr == nil && endErr == nil:
		if err := doc.Buffer.Remove(start, end); err != nil {
			return err
		}
		return doc.Buffer.Insert(start, ch.Text)
	case startErr == nil && endErr != nil:
		total := doc.Buffer.TotalChars()
		if err := doc.Buffer.Remove(start, total); err != nil {
			return err
		}
		return doc.Buffer.Insert(start, ch.Text)
	default:
		doc.Replace(ch.Text)
		return nil
	}
}
